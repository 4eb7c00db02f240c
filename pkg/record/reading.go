package record

import (
	"strconv"
	"strings"
)

// Reading is a single scalar value as it appeared in the source text.
type Reading string

// Str creates a Reading from a string, trimming surrounding whitespace.
func Str(v string) Reading {
	return Reading(strings.TrimSpace(v))
}

// String returns the raw value.
func (r Reading) String() string {
	return string(r)
}

// Any returns the value as an untyped string.
func (r Reading) Any() any {
	return string(r)
}

// Int parses the reading as a base 10 integer.
func (r Reading) Int() (int64, error) {
	return strconv.ParseInt(string(r), 10, 64)
}

// Float parses the reading as a decimal number.
func (r Reading) Float() (float64, error) {
	return strconv.ParseFloat(string(r), 64)
}

// Bool parses the reading as a boolean ("true", "1", "yes" and their negations).
func (r Reading) Bool() (bool, error) {
	switch strings.ToLower(string(r)) {
	case "yes", "y", "on":
		return true, nil
	case "no", "n", "off":
		return false, nil
	}
	return strconv.ParseBool(string(r))
}

// IsNumeric reports whether the reading parses as a number.
func (r Reading) IsNumeric() bool {
	_, err := r.Float()
	return err == nil
}
