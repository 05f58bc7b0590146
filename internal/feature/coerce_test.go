package feature

import (
	"encoding/json"
	"testing"
)

func TestSafeInt(t *testing.T) {
	cases := []struct {
		in   any
		want int
	}{
		{nil, 0},
		{"", 0},
		{"  ", 0},
		{"42", 42},
		{"3.9", 3},
		{"-2.9", -2},
		{float64(7), 7},
		{true, 1},
		{false, 0},
		{"garbage", 0},
		{"1e3", 1000},
		{json.Number("42"), 42},
		{json.Number("3.9"), 3},
		{json.Number("1234567890123456789"), 1234567890123456789},
	}
	for _, c := range cases {
		if got := SafeInt(c.in); got != c.want {
			t.Fatalf("SafeInt(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestSafeIntDefault(t *testing.T) {
	if got := SafeIntDefault("NULL", 5); got != 5 {
		t.Fatalf("NULL should fall back: got %d", got)
	}
	if got := SafeIntDefault("None", 3); got != 3 {
		t.Fatalf("None should fall back: got %d", got)
	}
	if got := SafeIntDefault(nil, 9); got != 9 {
		t.Fatalf("nil should fall back: got %d", got)
	}
	if got := SafeIntDefault("12", 9); got != 12 {
		t.Fatalf("numeric string should parse: got %d", got)
	}
	if got := SafeIntDefault(float64(4), 9); got != 4 {
		t.Fatalf("float should pass through: got %d", got)
	}
}

func TestSafeDiv(t *testing.T) {
	if got := SafeDiv(10, 4); got != 2.5 {
		t.Fatalf("10/4 = %v", got)
	}
	if got := SafeDiv(10, 0); got != 0.0 {
		t.Fatalf("zero divisor must yield 0.0, got %v", got)
	}
	if got := SafeDiv(10, -2); got != 0.0 {
		t.Fatalf("negative divisor must yield 0.0, got %v", got)
	}
	if got := SafeDiv("x", 2); got != 0.0 {
		t.Fatalf("unparseable dividend must yield 0.0, got %v", got)
	}
	if got := SafeDiv("9", "3"); got != 3.0 {
		t.Fatalf("string operands should parse: got %v", got)
	}
	if got := SafeDiv(json.Number("10"), json.Number("4")); got != 2.5 {
		t.Fatalf("json.Number operands should parse: got %v", got)
	}
}

func TestParseBool(t *testing.T) {
	truthy := []any{"1", "true", "YES", "y", "T", true, float64(1)}
	for _, v := range truthy {
		b := ParseBool(v)
		if b == nil || !*b {
			t.Fatalf("ParseBool(%v) should be true", v)
		}
	}
	falsy := []any{"0", "false", "No", "n", "F", false, float64(0)}
	for _, v := range falsy {
		b := ParseBool(v)
		if b == nil || *b {
			t.Fatalf("ParseBool(%v) should be false", v)
		}
	}
	unresolved := []any{nil, "", "maybe", "2", "truthiness"}
	for _, v := range unresolved {
		if b := ParseBool(v); b != nil {
			t.Fatalf("ParseBool(%v) should be nil, got %v", v, *b)
		}
	}
}

func TestStrictBool(t *testing.T) {
	if !StrictBool("True") || !StrictBool("1") {
		t.Fatal("truthy spellings must resolve true")
	}
	for _, s := range []string{"", "NULL", "maybe", "false", "0"} {
		if StrictBool(s) {
			t.Fatalf("StrictBool(%q) should be false", s)
		}
	}
}
