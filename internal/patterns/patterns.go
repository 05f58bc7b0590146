package patterns

import "regexp"

// Compiled once at init; shared by both extractors. Never mutated.
var (
	Email = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	Phone = regexp.MustCompile(`(?:(?:\+?\d{1,3})?[-.\s]?)?(?:\(?\d{2,4}\)?[-.\s]?)?\d{3,4}[-.\s]?\d{4}`)
	URL   = regexp.MustCompile(`https?://\S+`)
	// Mention handles and hashtags use Unicode word characters, so CJK
	// names and tags match.
	Mention = regexp.MustCompile(`@[\p{L}\p{N}_]+`)
	Hashtag = regexp.MustCompile(`#[\p{L}\p{N}_]+`)
	// MentionWord is the tweet-body mention counter; same rune class.
	MentionWord = Mention
)

// emojiRanges covers emoticons, misc symbols and pictographs, transport and
// map symbols, regional indicators, dingbats, and enclosed alphanumerics.
var emojiRanges = [][2]rune{
	{0x1F600, 0x1F64F},
	{0x1F300, 0x1F5FF},
	{0x1F680, 0x1F6FF},
	{0x1F1E0, 0x1F1FF},
	{0x2702, 0x27B0},
	{0x24C2, 0x1F251},
}

// IsEmoji reports whether r falls in any of the emoji code point ranges.
func IsEmoji(r rune) bool {
	for _, rg := range emojiRanges {
		if r >= rg[0] && r <= rg[1] {
			return true
		}
	}
	return false
}

// CountEmoji counts emoji runes in s. Adjacent emoji count individually.
func CountEmoji(s string) int {
	n := 0
	for _, r := range s {
		if IsEmoji(r) {
			n++
		}
	}
	return n
}
