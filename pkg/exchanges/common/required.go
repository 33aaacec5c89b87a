package common

import (
	"bytes"
	"encoding"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

var (
	jsonUnmarshalerType = reflect.TypeOf((*json.Unmarshaler)(nil)).Elem()
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

// CheckRequired walks data alongside the Go type of v and reports the first
// required object key that is missing. encoding/json zero-fills absent keys,
// so this is what turns an unexpected object shape into a decode failure.
//
// A struct field is optional when its type is a pointer or its json tag
// carries omitempty. A null value counts as present only for optional fields
// and pointer elements. Types with their own UnmarshalJSON or UnmarshalText
// are trusted to validate themselves.
func CheckRequired(data []byte, v any) error {
	t := reflect.TypeOf(v)
	if t != nil && isNull(data) {
		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		return fmt.Errorf("unexpected null, expected %s", t)
	}
	return checkRequired(data, t)
}

func isNull(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), jsonNull)
}

func checkRequired(data []byte, t reflect.Type) error {
	if t == nil {
		return nil
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	pt := reflect.PointerTo(t)
	if pt.Implements(jsonUnmarshalerType) || pt.Implements(textUnmarshalerType) {
		return nil
	}

	switch t.Kind() {
	case reflect.Slice:
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		for i, item := range items {
			if isNull(item) {
				if t.Elem().Kind() == reflect.Pointer {
					continue
				}
				return fmt.Errorf("element %d: unexpected null", i)
			}
			if err := checkRequired(item, t.Elem()); err != nil {
				return err
			}
		}
	case reflect.Struct:
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			name, opts, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				continue
			}
			if name == "" {
				name = f.Name
			}
			optional := f.Type.Kind() == reflect.Pointer || hasOption(opts, "omitempty")
			raw, ok := obj[name]
			if !ok {
				if optional {
					continue
				}
				return &MissingFieldError{Field: name}
			}
			if isNull(raw) {
				if optional {
					continue
				}
				return fmt.Errorf("field %s: unexpected null", name)
			}
			if err := checkRequired(raw, f.Type); err != nil {
				return err
			}
		}
	}
	return nil
}

func hasOption(opts, want string) bool {
	for opts != "" {
		var o string
		o, opts, _ = strings.Cut(opts, ",")
		if o == want {
			return true
		}
	}
	return false
}
