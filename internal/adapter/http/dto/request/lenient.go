package request

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

// Number is a form-friendly float. It accepts JSON numbers, numeric strings,
// booleans (1/0) and null. null and "" read as 0; any other non-numeric or
// out-of-range value reads as NaN so the costing core can flag or reject it.
type Number float64

func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*n = 0
	case bytes.Equal(b, []byte("true")):
		*n = 1
	case bytes.Equal(b, []byte("false")):
		*n = 0
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = Number(parseLenient(s))
	case b[0] == '{' || b[0] == '[':
		*n = Number(math.NaN())
	default:
		v, err := strconv.ParseFloat(string(b), 64)
		if errors.Is(err, strconv.ErrRange) {
			v = math.NaN()
		} else if err != nil {
			return err
		}
		*n = Number(v)
	}
	return nil
}

func (n Number) Float() float64 { return float64(n) }

func parseLenient(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) {
		return math.NaN()
	}
	return v
}

// Flag is a boolean that also accepts numbers (non-zero is true) and strings
// understood by strconv.ParseBool. Anything else reads as false.
type Flag bool

func (f *Flag) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*f = false
	case bytes.Equal(b, []byte("true")):
		*f = true
	case bytes.Equal(b, []byte("false")):
		*f = false
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := strconv.ParseBool(strings.TrimSpace(s))
		*f = Flag(err == nil && v)
	case b[0] == '{' || b[0] == '[':
		*f = false
	default:
		v, err := strconv.ParseFloat(string(b), 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return err
		}
		*f = Flag(v != 0)
	}
	return nil
}
