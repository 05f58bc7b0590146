package text

import "testing"

func TestClean(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", ""},
		{"  hello   world ", "hello world"},
		{"tab\tand\nnewline", "tab and newline"},
		{"ctrl\x01char", "ctrl char"},
	}
	for _, c := range cases {
		if got := Clean(c.in); got != c.want {
			t.Fatalf("Clean(%q) = %q, want %q", c.in, got, c.want)
		}
	}
	// idempotent
	if got := Clean(Clean("a \x00 b")); got != "a b" {
		t.Fatalf("double clean: %q", got)
	}
}

func TestCleanTweet(t *testing.T) {
	if got := CleanTweet("fish &amp; chips"); got != "fish & chips" {
		t.Fatalf("entities: %q", got)
	}
	if got := CleanTweet("zero​width"); got != "zerowidth" {
		t.Fatalf("zwsp: %q", got)
	}
	if got := CleanTweet(""); got != "" {
		t.Fatalf("empty: %q", got)
	}
}

func TestStripTags(t *testing.T) {
	if got := StripTags(`<a href="http://x.com" rel="nofollow">Twitter for iPhone</a>`); got != "Twitter for iPhone" {
		t.Fatalf("got %q", got)
	}
	if got := StripTags("plain"); got != "plain" {
		t.Fatalf("got %q", got)
	}
}

func TestParseSource(t *testing.T) {
	if got := ParseSource(`<a href="http://x.com">web</a>`); got != "web" {
		t.Fatalf("got %q", got)
	}
	if got := ParseSource(""); got != "Unknown" {
		t.Fatalf("got %q", got)
	}
	if got := ParseSource("<b></b>"); got != "Unknown" {
		t.Fatalf("got %q", got)
	}
}

func TestHasCJK(t *testing.T) {
	if !HasCJK("合作 welcome") {
		t.Fatal("should detect cjk")
	}
	if HasCJK("plain ascii") {
		t.Fatal("no cjk here")
	}
}

func TestContainsAnyFold(t *testing.T) {
	if !ContainsAnyFold("Open for BUSINESS inquiries", []string{"business", "promo"}) {
		t.Fatal("case-insensitive match expected")
	}
	if ContainsAnyFold("nothing here", []string{"promo"}) {
		t.Fatal("no match expected")
	}
}
