package common

import (
	"encoding/json"
	"errors"
	"testing"
)

type level struct {
	Price  string
	Amount string
	Orders int64
}

func (l *level) fields() []Field {
	return []Field{Pos("price", &l.Price), Pos("amount", &l.Amount), Pos("orders", &l.Orders)}
}

func (l *level) UnmarshalJSON(data []byte) error {
	return UnmarshalPositional(data, "level", l.fields()...)
}

func (l level) MarshalJSON() ([]byte, error) {
	return MarshalPositional(l.fields()...)
}

func TestUnmarshalPositional(t *testing.T) {
	var l level
	if err := json.Unmarshal([]byte(`["1.5","0.25",3]`), &l); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := level{Price: "1.5", Amount: "0.25", Orders: 3}
	if l != want {
		t.Errorf("got %+v, want %+v", l, want)
	}
}

func TestUnmarshalPositionalMissingField(t *testing.T) {
	tests := []struct {
		name  string
		input string
		field string
	}{
		{"empty", `[]`, "price"},
		{"one", `["1.5"]`, "amount"},
		{"two", `["1.5","0.25"]`, "orders"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l level
			err := json.Unmarshal([]byte(tt.input), &l)
			var missing *MissingFieldError
			if !errors.As(err, &missing) {
				t.Fatalf("expected MissingFieldError, got %v", err)
			}
			if missing.Field != tt.field {
				t.Errorf("field = %q, want %q", missing.Field, tt.field)
			}
		})
	}
}

func TestUnmarshalPositionalIgnoresTrailing(t *testing.T) {
	var l level
	if err := json.Unmarshal([]byte(`["1.5","0.25",3,"extra",{"x":1}]`), &l); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if l.Orders != 3 {
		t.Errorf("orders = %d, want 3", l.Orders)
	}
}

func TestUnmarshalPositionalWrongType(t *testing.T) {
	invalids := []string{
		`[1.5,"0.25",3]`,
		`["1.5","0.25","3"]`,
		`["1.5",null,3]`,
		`{"price":"1.5"}`,
	}
	for _, in := range invalids {
		var l level
		if err := json.Unmarshal([]byte(in), &l); err == nil {
			t.Errorf("expected error for %s", in)
		}
	}
}

func TestUnmarshalPositionalNullRecord(t *testing.T) {
	var l level
	err := json.Unmarshal([]byte(`null`), &l)
	if err == nil {
		t.Fatal("expected error for null record")
	}
	var missing *MissingFieldError
	if errors.As(err, &missing) {
		t.Fatalf("null record reported as missing field %q", missing.Field)
	}
	if err.Error() != "level: unexpected null, expected array" {
		t.Errorf("error = %q", err)
	}

	var levels []level
	if err := json.Unmarshal([]byte(`[["1","2",3],null]`), &levels); err == nil {
		t.Fatal("expected error for null element")
	}
}

func TestPositionalRoundTrip(t *testing.T) {
	values := []level{
		{},
		{Price: "21000.5", Amount: "0.01", Orders: 1},
		{Price: "0.000000001", Amount: "123456789.123", Orders: 42},
	}
	for _, v := range values {
		data, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var got level
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if got != v {
			t.Errorf("round trip %s: got %+v, want %+v", data, got, v)
		}
	}
}

func TestMarshalPositionalOrder(t *testing.T) {
	data, err := json.Marshal(level{Price: "2", Amount: "3", Orders: 4})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `["2","3",4]` {
		t.Errorf("got %s", data)
	}
}
