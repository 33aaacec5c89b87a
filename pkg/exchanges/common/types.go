package common

import (
	"fmt"
	"strings"
)

// MissingFieldError reports a required field absent from a decoded payload,
// either a JSON object key or a position in a positional array.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field `%s`", e.Field)
}

// InvalidValueError reports a wire token outside a closed set.
type InvalidValueError struct {
	Value    string
	Expected []string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value: %q, expected one of [%s]", e.Value, strings.Join(e.Expected, ", "))
}
