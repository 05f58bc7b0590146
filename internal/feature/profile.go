// Package feature turns raw user and tweet records into the fixed feature
// schema used for bot-detection training sets. All coercions are total:
// a malformed record produces sentinel values, never an error.
package feature

import (
	"encoding/json"
	"strconv"
	"strings"
	"unicode"

	"botlens/internal/model"
	"botlens/internal/patterns"
	"botlens/internal/text"
	"botlens/internal/urlclass"
)

// promoKeywords flag commercial intent in profile descriptions. The two
// Chinese terms are "cooperation" and "business".
var promoKeywords = []string{"business", "advertising", "promo", "dm", "合作", "商务"}

// genericLocations are non-geographic placeholder location strings.
var genericLocations = map[string]bool{
	"earth":          true,
	"world":          true,
	"peaceful world": true,
	"somewhere":      true,
	"everywhere":     true,
}

// indiaOffsets are the UTC offsets (seconds) used by the narrow
// language/timezone mismatch rule: IST and Nepal time.
var indiaOffsets = map[int]bool{19800: true, 20700: true}

// ExtractProfile computes the full feature record and its parallel
// missingness record from one raw user object. Pure function: same input,
// byte-identical output.
func ExtractProfile(user model.RawRecord) (model.ProfileFeatures, model.ProfileMissing) {
	followers := SafeInt(user.Get("followers_count"))
	friends := SafeInt(user.Get("friends_count"))
	statuses := SafeInt(user.Get("statuses_count"))
	favourites := SafeInt(user.Get("favourites_count"))
	listed := SafeInt(user.Get("listed_count"))
	ffRatio := SafeDiv(followers, friends)

	verified := ParseBool(user.Get("verified"))
	protected := ParseBool(user.Get("protected"))
	defaultImage := ParseBool(user.Get("default_profile_image"))
	defaultProfile := ParseBool(user.Get("default_profile"))
	geoEnabled := ParseBool(user.Get("geo_enabled"))

	description := text.Clean(user.String("description"))
	hasDesc := description != ""

	descURLs := user.EntityURLs("description")
	descPresent := urlclass.EntityPresent(descURLs)

	var descLength, emojiCount int
	var hasURLInDesc, hasMentionInDesc, hasHashtagInDesc bool
	var hasEmailInDesc, hasPhoneInDesc, hasPromoKeywordInDesc bool
	if hasDesc {
		descLength = len([]rune(description))
		emojiCount = patterns.CountEmoji(description)
		hasURLInDesc = descPresent
		hasMentionInDesc = patterns.Mention.MatchString(description)
		hasHashtagInDesc = patterns.Hashtag.MatchString(description)
		hasEmailInDesc = patterns.Email.MatchString(description)
		hasPhoneInDesc = patterns.Phone.MatchString(description)
		hasPromoKeywordInDesc = text.ContainsAnyFold(description, promoKeywords)
	}
	urlCategoryDesc := []string{}
	if descPresent {
		urlCategoryDesc = urlclass.Categories(descURLs)
	}

	bioURLs := user.EntityURLs("url")
	bioPresent := urlclass.EntityPresent(bioURLs)
	urlCategoryBio := []string{}
	if bioPresent {
		urlCategoryBio = urlclass.Categories(bioURLs)
	}

	createdAt := user.Get("created_at")

	name := user.String("name")
	nameLength, nameDigitRatio, nameSpecialRatio := nameStats(name)
	screenName := user.String("screen_name")
	snLength, snDigitRatio, snUnderscoreRatio := screenNameStats(screenName)
	similarity := 0.0
	if name != "" && screenName != "" {
		similarity = Similarity(name, screenName)
	}

	langHint := langHintFrom(user.Get("lang"), description)

	locationPresent := fieldPresent(user.Get("location"))
	bannerPresent := fieldPresent(user.Get("profile_banner_url"))
	useBackground := fieldPresent(user.Get("profile_use_background_image"))
	backgroundTile := fieldPresent(user.Get("profile_background_tile"))
	timeZonePresent := fieldPresent(user.Get("time_zone"))
	utcOffsetPresent := utcOffsetSet(user.Get("utc_offset"))
	mismatch := langTimezoneMismatch(user.String("lang"), user.String("time_zone"), user.Get("utc_offset"))

	locationGeneric := false
	if locationPresent {
		loc := strings.ToLower(strings.TrimSpace(user.String("location")))
		locationGeneric = genericLocations[loc]
	}

	features := model.ProfileFeatures{
		FollowersCount:  followers,
		FriendsCount:    friends,
		StatusesCount:   statuses,
		FavouritesCount: favourites,
		ListedCount:     listed,

		Verified:            verified,
		Protected:           protected,
		DefaultProfileImage: defaultImage,
		DefaultProfile:      defaultProfile,
		GeoEnabled:          geoEnabled,

		LangHint:  langHint,
		CreatedAt: createdAt,

		LocationPresent:           locationPresent,
		ProfileBannerURLPresent:   bannerPresent,
		ProfileUseBackgroundImage: useBackground,
		ProfileBackgroundTile:     backgroundTile,
		TimeZonePresent:           timeZonePresent,
		UTCOffsetPresent:          utcOffsetPresent,

		FFRatio:               ffRatio,
		DescLength:            descLength,
		EmojiCount:            emojiCount,
		HasURLInDesc:          hasURLInDesc,
		HasMentionInDesc:      hasMentionInDesc,
		HasHashtagInDesc:      hasHashtagInDesc,
		HasEmailInDesc:        hasEmailInDesc,
		HasPhoneInDesc:        hasPhoneInDesc,
		HasPromoKeywordInDesc: hasPromoKeywordInDesc,
		URLCategoryDesc:       urlCategoryDesc,
		HasURLInBio:           bioPresent,
		URLCategoryBio:        urlCategoryBio,

		NameLength:                nameLength,
		NameDigitRatio:            nameDigitRatio,
		NameSpecialCharRatio:      nameSpecialRatio,
		ScreenNameLength:          snLength,
		ScreenNameDigitRatio:      snDigitRatio,
		ScreenNameUnderscoreRatio: snUnderscoreRatio,
		NameScreenNameSimilarity:  similarity,

		LangTimezoneMismatch: mismatch,
		LocationGenericFlag:  locationGeneric,
	}

	// The missingness predicates intentionally read computed zeros and
	// falses as absent; a genuine zero-follower account flags as missing.
	missing := model.ProfileMissing{
		FollowersCount:  followers == 0,
		FriendsCount:    friends == 0,
		StatusesCount:   statuses == 0,
		FavouritesCount: favourites == 0,
		ListedCount:     listed == 0,
		FFRatio:         followers == 0 || friends == 0,

		Verified:            verified == nil,
		Protected:           protected == nil,
		DefaultProfileImage: defaultImage == nil,
		DefaultProfile:      defaultProfile == nil,
		GeoEnabled:          geoEnabled == nil,

		DescLength:            descLength == 0,
		EmojiCount:            emojiCount == 0,
		HasURLInDesc:          !hasURLInDesc,
		HasMentionInDesc:      !hasMentionInDesc,
		HasHashtagInDesc:      !hasHashtagInDesc,
		HasEmailInDesc:        !hasEmailInDesc,
		HasPhoneInDesc:        !hasPhoneInDesc,
		HasPromoKeywordInDesc: !hasPromoKeywordInDesc,
		URLCategoryDesc:       len(urlCategoryDesc) == 0,

		HasURLInBio:    !bioPresent,
		URLCategoryBio: len(urlCategoryBio) == 0,
		LangHint:       langHint == "",
		CreatedAt:      createdAt == nil,

		NameLength:                nameLength == 0,
		NameDigitRatio:            nameDigitRatio == 0,
		NameSpecialCharRatio:      nameSpecialRatio == 0,
		ScreenNameLength:          snLength == 0,
		ScreenNameDigitRatio:      snDigitRatio == 0,
		ScreenNameUnderscoreRatio: snUnderscoreRatio == 0,
		NameScreenNameSimilarity:  snLength == 0 || nameLength == 0,

		LocationPresent:           !locationPresent,
		ProfileBannerURLPresent:   !bannerPresent,
		ProfileUseBackgroundImage: !useBackground,
		ProfileBackgroundTile:     !backgroundTile,
		TimeZonePresent:           !timeZonePresent,
		UTCOffsetPresent:          !utcOffsetPresent,
		LangTimezoneMismatch:      mismatch,
		LocationGenericFlag:       !locationGeneric,
	}

	return features, missing
}

// nameStats returns (length, digit ratio, special-char ratio) over the
// cleaned display name. Special characters are anything that is neither
// alphanumeric nor whitespace.
func nameStats(s string) (int, float64, float64) {
	runes := []rune(text.Clean(s))
	if len(runes) == 0 {
		return 0, 0.0, 0.0
	}
	digits, specials := 0, 0
	for _, r := range runes {
		switch {
		case unicode.IsDigit(r):
			digits++
		case !unicode.IsLetter(r) && !unicode.IsNumber(r) && !unicode.IsSpace(r):
			specials++
		}
	}
	n := float64(len(runes))
	return len(runes), float64(digits) / n, float64(specials) / n
}

// screenNameStats returns (length, digit ratio, underscore ratio).
func screenNameStats(s string) (int, float64, float64) {
	runes := []rune(text.Clean(s))
	if len(runes) == 0 {
		return 0, 0.0, 0.0
	}
	digits, underscores := 0, 0
	for _, r := range runes {
		if unicode.IsDigit(r) {
			digits++
		}
		if r == '_' {
			underscores++
		}
	}
	n := float64(len(runes))
	return len(runes), float64(digits) / n, float64(underscores) / n
}

// Similarity is the case-insensitive Jaccard similarity over the two
// strings' character sets; 0.0 when either string is empty.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0.0
	}
	sa := runeSet(strings.ToLower(a))
	sb := runeSet(strings.ToLower(b))
	inter, union := 0, len(sa)
	for r := range sb {
		if sa[r] {
			inter++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0.0
	}
	return float64(inter) / float64(union)
}

func runeSet(s string) map[rune]bool {
	set := make(map[rune]bool, len(s))
	for _, r := range s {
		set[r] = true
	}
	return set
}

// langHintFrom prefers the explicit profile language field; otherwise CJK
// content in the description hints "zh", and everything else defaults to
// "en".
func langHintFrom(langField any, description string) string {
	if s := strings.TrimSpace(model.Stringify(langField)); s != "" {
		return strings.ToLower(s)
	}
	if text.HasCJK(description) {
		return "zh"
	}
	return "en"
}

// langTimezoneMismatch flags the one explainable inconsistency tracked:
// an "en" profile sitting in an India/Nepal timezone.
func langTimezoneMismatch(lang, timeZone string, utcOffset any) bool {
	if strings.ToLower(strings.TrimSpace(lang)) != "en" {
		return false
	}
	if strings.Contains(strings.ToLower(timeZone), "delhi") {
		return true
	}
	if off, ok := offsetSeconds(utcOffset); ok && indiaOffsets[off] {
		return true
	}
	return false
}

func offsetSeconds(v any) (int, bool) {
	switch t := v.(type) {
	case float64:
		return int(t), true
	case int:
		return t, true
	case json.Number:
		n, err := t.Int64()
		if err != nil {
			return 0, false
		}
		return int(n), true
	case string:
		s := strings.TrimSpace(t)
		if s == "" || s == "nan" || s == "NaN" {
			return 0, false
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// fieldPresent is the raw presence test: set, truthy, and non-blank.
func fieldPresent(v any) bool {
	return model.Truthy(v) && strings.TrimSpace(model.Stringify(v)) != ""
}

// utcOffsetSet additionally treats the literal "nan"/"NaN" as absent.
func utcOffsetSet(v any) bool {
	if v == nil {
		return false
	}
	s := model.Stringify(v)
	return s != "" && s != "nan" && s != "NaN"
}
