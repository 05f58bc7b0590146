package feature

import (
	"encoding/json"
	"strconv"
	"strings"

	"botlens/internal/model"
)

// SafeInt leniently coerces a raw value to a non-negative-by-default int:
// nil and blank strings become 0, numeric strings parse through float and
// truncate, anything unparseable becomes 0. Never fails.
func SafeInt(v any) int {
	switch t := v.(type) {
	case nil:
		return 0
	case bool:
		if t {
			return 1
		}
		return 0
	case float64:
		return int(t)
	case int:
		return t
	case int64:
		return int(t)
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return int(n)
		}
		f, err := t.Float64()
		if err != nil {
			return 0
		}
		return int(f)
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return int(f)
	}
	return 0
}

// SafeIntDefault is SafeInt with a caller-chosen fallback, and with the
// CSV null spellings ("NULL", "None", "NaN") treated as absent.
func SafeIntDefault(v any, def int) int {
	switch t := v.(type) {
	case nil:
		return def
	case string:
		s := strings.TrimSpace(t)
		switch s {
		case "", "NULL", "None", "NaN":
			return def
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return def
		}
		return int(f)
	}
	return SafeInt(v)
}

// SafeDiv divides a by b, yielding 0.0 when either operand is
// unparseable or the divisor is not positive. Never fails.
func SafeDiv(a, b any) float64 {
	fa, ok := toFloat(a)
	if !ok {
		return 0.0
	}
	fb, ok := toFloat(b)
	if !ok || fb <= 0 {
		return 0.0
	}
	return fa / fb
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case nil:
		return 0, true
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

var (
	truthyWords = map[string]bool{"1": true, "true": true, "yes": true, "y": true, "t": true}
	falsyWords  = map[string]bool{"0": true, "false": true, "no": true, "n": true, "f": true}
)

// ParseBool resolves a raw value to a tri-state boolean: true, false, or
// nil when the value is absent or not recognizably boolean.
func ParseBool(v any) *bool {
	if v == nil {
		return nil
	}
	s := strings.ToLower(strings.TrimSpace(model.Stringify(v)))
	if truthyWords[s] {
		b := true
		return &b
	}
	if falsyWords[s] {
		b := false
		return &b
	}
	return nil
}

// StrictBool collapses the tri-state parse to a plain boolean: only the
// truthy spellings count, everything else is false. This is the CSV-path
// divergence from the JSON path's three-way outcome.
func StrictBool(s string) bool {
	return truthyWords[strings.ToLower(strings.TrimSpace(s))]
}
