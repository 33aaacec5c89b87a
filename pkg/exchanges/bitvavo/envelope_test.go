package bitvavo

import (
	"errors"
	"strings"
	"testing"

	"bitvavo-api/pkg/exchanges/common"
)

func TestDecodeResponseSuccess(t *testing.T) {
	var b Balance
	err := decodeResponse(200, []byte(`{"symbol":"BTC","available":"1.5","inOrder":"0.25"}`), &b)
	if err != nil {
		t.Fatalf("decodeResponse: %v", err)
	}
	if b != (Balance{Symbol: "BTC", Available: "1.5", InOrder: "0.25"}) {
		t.Fatalf("got %+v", b)
	}
}

func TestDecodeResponseExchangeError(t *testing.T) {
	var b Balance
	err := decodeResponse(400, []byte(`{"errorCode":205,"error":"Invalid parameter value."}`), &b)

	var ex *ExchangeError
	if !errors.As(err, &ex) {
		t.Fatalf("expected ExchangeError, got %T %v", err, err)
	}
	if ex.Code != 205 || ex.Message != "Invalid parameter value." || ex.Status != 400 {
		t.Fatalf("got %+v", ex)
	}
	if !IsExchangeError(err, 205) || IsExchangeError(err, 110) {
		t.Fatal("IsExchangeError mismatch")
	}
}

func TestDecodeResponseErrorShapeOnSuccessStatus(t *testing.T) {
	// A 2xx body shaped like an error envelope is not a balance.
	var b Balance
	err := decodeResponse(200, []byte(`{"errorCode":205,"error":"Invalid parameter value."}`), &b)

	var codec *CodecError
	if !errors.As(err, &codec) {
		t.Fatalf("expected CodecError, got %T %v", err, err)
	}
	var ex *ExchangeError
	if errors.As(err, &ex) {
		t.Fatal("2xx response must never become an ExchangeError")
	}
	var missing *common.MissingFieldError
	if !errors.As(err, &missing) || missing.Field != "symbol" {
		t.Fatalf("expected missing symbol, got %v", err)
	}
}

func TestDecodeResponseMalformed(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"success not json", 200, `<html>`},
		{"success wrong type", 200, `{"symbol":1,"available":"1","inOrder":"0"}`},
		{"error not json", 500, `Internal Server Error`},
		{"error missing code", 403, `{"error":"Forbidden"}`},
		{"error missing message", 403, `{"errorCode":105}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b Balance
			err := decodeResponse(tt.status, []byte(tt.body), &b)
			var codec *CodecError
			if !errors.As(err, &codec) {
				t.Fatalf("expected CodecError, got %T %v", err, err)
			}
		})
	}
}

func TestDecodeResponseEnumFailure(t *testing.T) {
	var m Market
	body := `{"market":"BTC-EUR","status":"bogus","base":"BTC","quote":"EUR","pricePrecision":5,
		"minOrderInBaseAsset":"0.0001","minOrderInQuoteAsset":"5","maxOrderInBaseAsset":"1000",
		"maxOrderInQuoteAsset":"1000000","orderTypes":["market","limit"]}`
	err := decodeResponse(200, []byte(body), &m)

	var inv *common.InvalidValueError
	if !errors.As(err, &inv) || inv.Value != "bogus" {
		t.Fatalf("expected invalid value bogus, got %v", err)
	}
}

func TestDecodeResponseOptionalFields(t *testing.T) {
	var tp TickerPrice
	if err := decodeResponse(200, []byte(`{"market":"NEW-EUR"}`), &tp); err != nil {
		t.Fatalf("decodeResponse: %v", err)
	}
	if tp.Price != nil {
		t.Fatalf("price = %v, want nil", *tp.Price)
	}
}

func TestDecodeResponseRejectsNull(t *testing.T) {
	tests := []struct {
		name string
		body string
		out  any
		want string
	}{
		{"required field", `{"symbol":"BTC","available":null,"inOrder":"0"}`, &Balance{}, "field available: unexpected null"},
		{"list element field", `[{"symbol":"BTC","available":"1","inOrder":null}]`, &[]Balance{}, "field inOrder: unexpected null"},
		{"list body", `null`, &[]Market{}, "unexpected null"},
		{"object body", `null`, &Balance{}, "unexpected null"},
		{"book level", `{"market":"BTC-EUR","nonce":1,"bids":[],"asks":[null]}`, &OrderBook{}, "quote: unexpected null"},
		{"candle", `[null]`, &[]OHLCV{}, "candle: unexpected null"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := decodeResponse(200, []byte(tt.body), tt.out)
			var codec *CodecError
			if !errors.As(err, &codec) {
				t.Fatalf("expected CodecError, got %T %v", err, err)
			}
			var missing *common.MissingFieldError
			if errors.As(err, &missing) {
				t.Fatalf("null reported as missing field %q", missing.Field)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not contain %q", err, tt.want)
			}
		})
	}
}
