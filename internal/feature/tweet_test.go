package feature

import (
	"testing"

	"botlens/internal/model"
)

func TestParseTimestampLayouts(t *testing.T) {
	iso, hour, dow := ParseTimestamp("Sun Apr 21 10:43:18 +0000 2013")
	if iso == nil || *iso != "2013-04-21T10:43:18+00:00" {
		t.Fatalf("twitter layout: got %v", iso)
	}
	if *hour != 10 || *dow != "Sun" {
		t.Fatalf("hour/dow: %d %s", *hour, *dow)
	}

	iso, hour, dow = ParseTimestamp("2015-02-14 09:30:00")
	if iso == nil || *iso != "2015-02-14T09:30:00" {
		t.Fatalf("sql layout: got %v", iso)
	}
	if *hour != 9 || *dow != "Sat" {
		t.Fatalf("hour/dow: %d %s", *hour, *dow)
	}

	iso, _, _ = ParseTimestamp("", "2020-01-02T03:04:05")
	if iso == nil || *iso != "2020-01-02T03:04:05" {
		t.Fatalf("blank candidates skip: got %v", iso)
	}

	iso, hour, dow = ParseTimestamp("not a date")
	if iso != nil || hour != nil || dow != nil {
		t.Fatal("garbage timestamp must yield nils")
	}
}

func TestExtractURLDomains(t *testing.T) {
	urls, domains := ExtractURLDomains("see https://Example.COM/page and http://t.co/x")
	if len(urls) != 2 {
		t.Fatalf("urls: %v", urls)
	}
	if len(domains) != 2 || domains[0] != "example.com" || domains[1] != "t.co" {
		t.Fatalf("domains: %v", domains)
	}
}

func TestTweetFromCSVRow(t *testing.T) {
	row := map[string]string{
		"id":                    "555",
		"text":                  "RT check https://bit.ly/x #go @bob",
		"created_at":            "Sun Apr 21 10:43:18 +0000 2013",
		"source":                `<a href="http://twitter.com">Twitter Web</a>`,
		"retweeted_status_id":   "1234",
		"in_reply_to_status_id": "NULL",
		"in_reply_to_user_id":   "0",
		"retweet_count":         "3",
		"num_hashtags":          "NULL",
	}
	ev := TweetFromCSVRow(row, true)
	if ev.TweetID != "555" {
		t.Fatalf("id: %s", ev.TweetID)
	}
	if !ev.IsRetweet {
		t.Fatal("retweeted_status_id set means retweet")
	}
	if ev.IsReply {
		t.Fatal("NULL and 0 reply refs should not count")
	}
	if ev.NumHashtags != 1 {
		t.Fatalf("hashtag fallback count: %d", ev.NumHashtags)
	}
	if ev.NumMentions != 1 {
		t.Fatalf("mention fallback count: %d", ev.NumMentions)
	}
	if ev.RetweetCount != 3 {
		t.Fatalf("retweet count: %d", ev.RetweetCount)
	}
	if ev.Text == "" {
		t.Fatal("keepText should retain the body")
	}

	ev = TweetFromCSVRow(row, false)
	if ev.Text != "" {
		t.Fatal("dropText should clear the body")
	}
}

func TestTweetFromJSON(t *testing.T) {
	tweet := model.RawRecord{
		"id":         "77",
		"text":       "hello &amp; welcome",
		"created_at": "2023-05-01 12:00:00",
		"entities": map[string]any{
			"hashtags":      []any{map[string]any{}, map[string]any{}},
			"urls":          []any{},
			"user_mentions": []any{map[string]any{}},
		},
		"retweeted_status": map[string]any{"id": "x"},
		"retweet_count":    float64(8),
		"favorite_count":   "2",
	}
	ev := TweetFromJSON(tweet, true)
	if ev.Text != "hello & welcome" {
		t.Fatalf("html entities should decode: %q", ev.Text)
	}
	if !ev.IsRetweet {
		t.Fatal("retweeted_status object means retweet")
	}
	if ev.IsReply {
		t.Fatal("no reply refs set")
	}
	if ev.NumHashtags != 2 || ev.NumURLs != 0 || ev.NumMentions != 1 {
		t.Fatalf("entity counts: %d %d %d", ev.NumHashtags, ev.NumURLs, ev.NumMentions)
	}
	if ev.RetweetCount != 8 || ev.FavoriteCount != 2 {
		t.Fatalf("counts: %d %d", ev.RetweetCount, ev.FavoriteCount)
	}
}
