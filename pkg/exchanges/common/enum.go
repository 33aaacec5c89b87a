package common

import "encoding/json"

// Enum is the closed set of wire tokens accepted for a string-backed
// enumeration. Matching is exact and case-sensitive.
type Enum[T ~string] []T

// NewEnum builds the accepted set in the order it should be reported.
func NewEnum[T ~string](members ...T) Enum[T] {
	return Enum[T](members)
}

// Parse maps a wire token to its member.
func (e Enum[T]) Parse(s string) (T, error) {
	for _, m := range e {
		if string(m) == s {
			return m, nil
		}
	}
	var zero T
	return zero, &InvalidValueError{Value: s, Expected: e.Strings()}
}

// Contains reports whether v is a member of the set.
func (e Enum[T]) Contains(v T) bool {
	for _, m := range e {
		if m == v {
			return true
		}
	}
	return false
}

// Strings returns the accepted tokens.
func (e Enum[T]) Strings() []string {
	out := make([]string, len(e))
	for i, m := range e {
		out[i] = string(m)
	}
	return out
}

// Unmarshal decodes a JSON string into dst, rejecting tokens outside the set.
func (e Enum[T]) Unmarshal(data []byte, dst *T) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := e.Parse(s)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

// Marshal encodes v as a JSON string. Values that are not members are refused
// so that only fixed tokens ever reach the wire.
func (e Enum[T]) Marshal(v T) ([]byte, error) {
	if !e.Contains(v) {
		return nil, &InvalidValueError{Value: string(v), Expected: e.Strings()}
	}
	return json.Marshal(string(v))
}
