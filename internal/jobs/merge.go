package jobs

import (
	"io"
	"os"
	"strings"
	"time"

	"botlens/internal/dataset"
	"botlens/internal/feature"
	"botlens/internal/logging"
	"botlens/internal/metrics"
)

// MergeTweets reads a tweets CSV and appends one tweet event per row to
// the matching user in an existing keyed users JSON, creating users on
// demand. Events keep input encounter order. Unknown keys already present
// on a user pass through untouched. Returns the number of rows merged.
func MergeTweets(tweetsCSV, usersJSON, outJSON string, keepText bool) (int, error) {
	start := time.Now()
	defer metrics.ObserveRunDuration(start)

	users, err := dataset.ReadKeyedJSON(usersJSON)
	if err != nil {
		return 0, err
	}

	f, err := os.Open(tweetsCSV)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	r, err := dataset.NewDictReader(f)
	if err != nil {
		return 0, err
	}

	merged := 0
	for {
		row, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			metrics.TweetErrors.Inc()
			logging.Warn("tweet_row_error", map[string]any{"error": err.Error()})
			continue
		}
		userID := strings.TrimSpace(row["user_id"])
		if userID == "" {
			metrics.TweetErrors.Inc()
			continue
		}
		ev := feature.TweetFromCSVRow(row, keepText)

		u := users[userID]
		if u == nil {
			u = map[string]any{}
			users[userID] = u
		}
		events, _ := u["tweet_events"].([]any)
		u["tweet_events"] = append(events, ev)
		merged++
		metrics.TweetsProcessed.Inc()
	}

	if err := dataset.WriteJSON(outJSON, users); err != nil {
		return 0, err
	}
	logging.Info("merge_done", map[string]any{"tweets": tweetsCSV, "users": usersJSON, "output": outJSON, "rows": merged})
	return merged, nil
}
