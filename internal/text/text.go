package text

import (
	"html"
	"regexp"
	"strings"

	xhtml "golang.org/x/net/html"
)

var (
	controlChars = regexp.MustCompile(`[\x00-\x1f\x7f]`)
	whitespace   = regexp.MustCompile(`\s+`)
)

// Clean replaces ASCII control characters with a space, collapses whitespace
// runs to a single space and trims. Idempotent; empty input stays empty.
func Clean(s string) string {
	if s == "" {
		return ""
	}
	s = controlChars.ReplaceAllString(s, " ")
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}

// CleanTweet prepares raw tweet text for feature extraction: HTML entities
// are unescaped, zero-width spaces removed, whitespace collapsed.
func CleanTweet(s string) string {
	if s == "" {
		return ""
	}
	s = html.UnescapeString(s)
	s = strings.ReplaceAll(s, "​", "")
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}

// StripTags removes HTML markup and returns the visible text. The tweet
// "source" field is typically an anchor tag wrapping the client name.
func StripTags(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	tok := xhtml.NewTokenizer(strings.NewReader(s))
	for {
		switch tok.Next() {
		case xhtml.ErrorToken:
			return b.String()
		case xhtml.TextToken:
			b.Write(tok.Text())
		}
	}
}

// ParseSource extracts the client name from a tweet source field,
// defaulting to "Unknown" when nothing remains after tag stripping.
func ParseSource(s string) string {
	pure := strings.TrimSpace(StripTags(s))
	if pure == "" {
		return "Unknown"
	}
	return pure
}

// HasCJK reports whether s contains any CJK unified ideograph.
func HasCJK(s string) bool {
	for _, r := range s {
		if r >= 0x4e00 && r <= 0x9fff {
			return true
		}
	}
	return false
}

// ContainsAnyFold returns true if text contains any of the needles
// (case-insensitive).
func ContainsAnyFold(text string, needles []string) bool {
	lt := strings.ToLower(text)
	for _, n := range needles {
		if strings.Contains(lt, strings.ToLower(n)) {
			return true
		}
	}
	return false
}
