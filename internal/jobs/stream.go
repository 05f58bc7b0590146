package jobs

import (
	"os"
	"time"

	"botlens/internal/dataset"
	"botlens/internal/feature"
	"botlens/internal/logging"
	"botlens/internal/metrics"
	"botlens/internal/model"
)

// StreamUserTweets processes a large JSON array of
// {"user_id","user_tweets",[...],"label","dataset"} records without
// loading the whole file: profile fields come from the first tweet's
// embedded user object, tweet events from every tweet. Users without
// tweets or user info are skipped, never fatal.
func StreamUserTweets(inputPath, outputPath string, keepText bool, progressEvery int) (int, error) {
	start := time.Now()
	defer metrics.ObserveRunDuration(start)

	f, err := os.Open(inputPath)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	users := make(map[string]*model.UserOutput)
	it := dataset.NewArrayIterator(f)
	for {
		entry, ok := it.Next()
		if !ok {
			break
		}
		id := entry.String("user_id")
		if id == "" {
			metrics.SkipUser("no_id")
			continue
		}
		tweets, _ := entry["user_tweets"].([]any)
		if len(tweets) == 0 {
			metrics.SkipUser("no_tweets")
			logging.Warn("user_without_tweets", map[string]any{"user_id": id})
			continue
		}
		first, _ := tweets[0].(map[string]any)
		userInfo, _ := first["user"].(map[string]any)
		if len(userInfo) == 0 {
			metrics.SkipUser("no_user_info")
			logging.Warn("user_without_profile", map[string]any{"user_id": id})
			continue
		}

		pf, pfm := feature.ExtractProfile(model.RawRecord(userInfo))
		out := &model.UserOutput{
			ProfileFeatures:        &pf,
			ProfileFeaturesMissing: &pfm,
			Label:                  entry.String("label"),
			Dataset:                entry.String("dataset"),
		}
		for _, raw := range tweets {
			tweet, ok := raw.(map[string]any)
			if !ok {
				metrics.TweetErrors.Inc()
				continue
			}
			out.TweetEvents = append(out.TweetEvents, feature.TweetFromJSON(model.RawRecord(tweet), keepText))
			metrics.TweetsProcessed.Inc()
		}
		users[id] = out
		metrics.UsersProcessed.Inc()
		progress(len(users), progressEvery)
	}
	if err := it.Err(); err != nil {
		return 0, err
	}
	if err := dataset.WriteJSON(outputPath, users); err != nil {
		return 0, err
	}
	logging.Info("stream_done", map[string]any{"input": inputPath, "output": outputPath, "users": len(users)})
	return len(users), nil
}
