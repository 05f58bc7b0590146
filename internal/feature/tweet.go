package feature

import (
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"botlens/internal/model"
	"botlens/internal/patterns"
	"botlens/internal/text"
)

// timestampLayouts are tried in order; the first that parses wins.
var timestampLayouts = []string{
	"Mon Jan 2 15:04:05 -0700 2006", // Sun Apr 21 10:43:18 +0000 2013
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
}

// ParseTimestamp parses the first candidate that matches one of the known
// layouts, returning ISO-8601 text, hour of day and abbreviated weekday.
// All three are nil when nothing parses; a bad timestamp never fails a
// record.
func ParseTimestamp(candidates ...string) (*string, *int, *string) {
	for _, s := range candidates {
		if s == "" {
			continue
		}
		for _, layout := range timestampLayouts {
			t, err := time.Parse(layout, s)
			if err != nil {
				continue
			}
			iso := t.Format("2006-01-02T15:04:05")
			if strings.Contains(layout, "-0700") || strings.Contains(layout, "Z07:00") {
				iso = t.Format("2006-01-02T15:04:05-07:00")
			}
			hour := t.Hour()
			dow := t.Format("Mon")
			return &iso, &hour, &dow
		}
	}
	return nil, nil, nil
}

// ExtractURLDomains finds URLs in cleaned tweet text and derives their
// lower-cased hostnames. Hosts that fail to parse are dropped silently.
func ExtractURLDomains(s string) ([]string, []string) {
	urls := patterns.URL.FindAllString(s, -1)
	var domains []string
	for _, u := range urls {
		parsed, err := url.Parse(u)
		if err != nil {
			continue
		}
		if host := strings.ToLower(parsed.Host); host != "" {
			domains = append(domains, host)
		}
	}
	return urls, domains
}

// TweetFromCSVRow builds a TweetEvent from one header-mapped tweets CSV
// row (the Twibot/cresci column layout). keepText controls whether the
// cleaned tweet body is retained in the event.
func TweetFromCSVRow(row map[string]string, keepText bool) *model.TweetEvent {
	body := text.CleanTweet(row["text"])

	rtRef := strings.TrimSpace(row["retweeted_status_id"])
	isRetweet := rtRef != "" && strings.ToUpper(rtRef) != "NULL"
	isReply := replyRef(row["in_reply_to_status_id"]) || replyRef(row["in_reply_to_user_id"])

	urls, domains := ExtractURLDomains(body)
	iso, hour, dow := ParseTimestamp(row["created_at"], row["timestamp"])

	ev := &model.TweetEvent{
		TweetID:       row["id"],
		CreatedAtISO:  iso,
		HourOfDay:     hour,
		DayOfWeek:     dow,
		ClientSource:  text.ParseSource(row["source"]),
		IsRetweet:     isRetweet,
		IsReply:       isReply,
		LenChars:      utf8.RuneCountInString(body),
		NumHashtags:   SafeIntDefault(row["num_hashtags"], len(patterns.Hashtag.FindAllString(body, -1))),
		NumURLs:       SafeIntDefault(row["num_urls"], len(urls)),
		NumMentions:   SafeIntDefault(row["num_mentions"], len(patterns.MentionWord.FindAllString(body, -1))),
		RetweetCount:  SafeIntDefault(row["retweet_count"], 0),
		ReplyCount:    SafeIntDefault(row["reply_count"], 0),
		FavoriteCount: SafeIntDefault(row["favorite_count"], 0),
		URLs:          urls,
		URLDomains:    domains,
	}
	if keepText {
		ev.Text = body
	}
	return ev
}

// replyRef reports whether an in_reply_to reference is meaningfully set.
func replyRef(v string) bool {
	s := strings.TrimSpace(v)
	return s != "" && s != "0" && s != "NULL"
}

// TweetFromJSON builds a TweetEvent from an embedded JSON tweet object
// (the fox8 shape): element counts come from the entities lists and the
// retweet/reply references may be objects rather than IDs.
func TweetFromJSON(tweet model.RawRecord, keepText bool) *model.TweetEvent {
	body := text.CleanTweet(tweet.String("text"))

	isRetweet := model.Truthy(tweet.Get("retweeted_status_id")) || model.Truthy(tweet.Get("retweeted_status"))
	isReply := model.Truthy(tweet.Get("in_reply_to_status_id")) || model.Truthy(tweet.Get("in_reply_to_user_id"))

	urls, domains := ExtractURLDomains(body)
	iso, hour, dow := ParseTimestamp(tweet.String("created_at"))

	ev := &model.TweetEvent{
		TweetID:       tweet.String("id"),
		CreatedAtISO:  iso,
		HourOfDay:     hour,
		DayOfWeek:     dow,
		ClientSource:  text.ParseSource(tweet.String("source")),
		IsRetweet:     isRetweet,
		IsReply:       isReply,
		LenChars:      utf8.RuneCountInString(body),
		NumHashtags:   entityLen(tweet, "hashtags"),
		NumURLs:       entityLen(tweet, "urls"),
		NumMentions:   entityLen(tweet, "user_mentions"),
		RetweetCount:  SafeInt(tweet.Get("retweet_count")),
		FavoriteCount: SafeInt(tweet.Get("favorite_count")),
		URLs:          urls,
		URLDomains:    domains,
	}
	if keepText {
		ev.Text = body
	}
	return ev
}

func entityLen(tweet model.RawRecord, key string) int {
	entities, ok := tweet["entities"].(map[string]any)
	if !ok {
		return 0
	}
	list, ok := entities[key].([]any)
	if !ok {
		return 0
	}
	return len(list)
}
