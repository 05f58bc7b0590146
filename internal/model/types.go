package model

import (
	"encoding/json"
	"strconv"
)

// RawRecord is one untyped user or tweet object, as decoded from JSON or
// synthesized from a CSV row. Extractors read it, never mutate it.
type RawRecord map[string]any

// Get returns the raw value for key, nil when absent.
func (r RawRecord) Get(key string) any { return r[key] }

// String returns the field rendered as a string, "" when absent.
func (r RawRecord) String(key string) string { return Stringify(r[key]) }

// EntityURLs walks entities.<section>.urls, returning nil when any hop
// is absent or of an unexpected shape.
func (r RawRecord) EntityURLs(section string) any {
	entities, ok := r["entities"].(map[string]any)
	if !ok {
		return nil
	}
	sec, ok := entities[section].(map[string]any)
	if !ok {
		return nil
	}
	return sec["urls"]
}

// Stringify renders a decoded JSON scalar the way the source datasets
// spell it: numbers without a trailing ".0", booleans as true/false.
// json.Number passes through verbatim so snowflake IDs wider than a
// float64 mantissa keep every digit.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return "false"
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	}
	return ""
}

// Truthy mirrors the presence test used on raw profile fields: nil, false,
// zero, empty string and empty containers all read as absent.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	case float64:
		return t != 0
	case int:
		return t != 0
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	}
	return true
}
