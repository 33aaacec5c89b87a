package common

import (
	"encoding/json"
	"fmt"
)

// Field binds one position of a JSON array to a destination pointer.
type Field struct {
	Name string
	Ptr  any
}

// Pos is shorthand for a Field.
func Pos(name string, ptr any) Field {
	return Field{Name: name, Ptr: ptr}
}

var jsonNull = []byte("null")

// UnmarshalPositional decodes a JSON array into the fields of record by
// position. Each element is decoded as the type its destination expects. A
// null record is a type error; a short array fails with a MissingFieldError
// naming the first absent field; elements beyond len(fields) are ignored.
func UnmarshalPositional(data []byte, record string, fields ...Field) error {
	if isNull(data) {
		return fmt.Errorf("%s: unexpected null, expected array", record)
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for i, f := range fields {
		if i >= len(raw) {
			return &MissingFieldError{Field: f.Name}
		}
		if isNull(raw[i]) {
			return fmt.Errorf("field %s: unexpected null", f.Name)
		}
		if err := json.Unmarshal(raw[i], f.Ptr); err != nil {
			return fmt.Errorf("field %s: %w", f.Name, err)
		}
	}
	return nil
}

// MarshalPositional encodes fields as a JSON array in the given order.
func MarshalPositional(fields ...Field) ([]byte, error) {
	values := make([]any, len(fields))
	for i, f := range fields {
		values[i] = f.Ptr
	}
	return json.Marshal(values)
}
