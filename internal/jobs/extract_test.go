package jobs

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"botlens/internal/dataset"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestExtractProfilesJSON(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "users.json")
	output := filepath.Join(dir, "out", "users_features.json")
	writeFile(t, input, `[
		{"user": {"id_str": "1", "followers_count": "10", "friends_count": "5", "verified": true}},
		{"id": "2", "followers_count": 3},
		{"name": "no identity"}
	]`)

	n, err := ExtractProfiles(input, output, 0)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	users, err := dataset.ReadKeyedJSON(output)
	require.NoError(t, err)
	require.Len(t, users, 2)

	pf, ok := users["1"]["profile_features"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, json.Number("10"), pf["followers_count"])
	require.Equal(t, json.Number("2"), pf["ff_ratio"])

	pfm, ok := users["1"]["profile_features_missing"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, false, pfm["followers_count_missing"])
	require.Equal(t, true, pfm["protected_missing"])
}

func TestExtractProfilesKeepsWideIDs(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "users.json")
	output := filepath.Join(dir, "out.json")
	const big = "1234567890123456789"
	writeFile(t, input, `[{"id": `+big+`, "followers_count": 1}]`)

	n, err := ExtractProfiles(input, output, 0)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	users, err := dataset.ReadKeyedJSON(output)
	require.NoError(t, err)
	require.Contains(t, users, big, "numeric snowflake IDs keep every digit")
}

func TestExtractProfilesCSV(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "users.csv")
	output := filepath.Join(dir, "users_features.json")
	writeFile(t, input,
		"id,name,verified,description\n"+
			"7,alice,True,hello https://github.com/alice\n"+
			"8,bob,NULL,\n"+
			",noid,,\n")

	n, err := ExtractProfiles(input, output, 0)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	users, err := dataset.ReadKeyedJSON(output)
	require.NoError(t, err)

	pf := users["7"]["profile_features"].(map[string]any)
	require.Equal(t, true, pf["verified"])
	require.Equal(t, true, pf["has_url_in_desc"])

	// CSV path collapses unresolved booleans instead of leaving them null
	pf = users["8"]["profile_features"].(map[string]any)
	require.Equal(t, false, pf["verified"])
}

func TestExtractProfilesUnsupported(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "users.txt")
	writeFile(t, input, "not a dataset")

	_, err := ExtractProfiles(input, filepath.Join(dir, "out.json"), 0)
	require.True(t, errors.Is(err, ErrUnsupportedInput))
	_, statErr := os.Stat(filepath.Join(dir, "out.json"))
	require.True(t, os.IsNotExist(statErr), "no output on failure")
}

func TestStreamUserTweets(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "tweets.json")
	output := filepath.Join(dir, "stream_features.json")
	writeFile(t, input, `[
		{
			"user_id": "u1",
			"label": "bot",
			"dataset": "fox8",
			"user_tweets": [
				{
					"id": "t1",
					"text": "hello https://github.com/x",
					"created_at": "2023-05-01 12:00:00",
					"user": {"id_str": "u1", "followers_count": 4}
				},
				{"id": "t2", "text": "second", "user": {}}
			]
		},
		{"user_id": "u2", "user_tweets": []},
		{"user_id": "u3", "user_tweets": [{"id": "t3", "text": "orphan"}]}
	]`)

	n, err := StreamUserTweets(input, output, true, 0)
	require.NoError(t, err)
	require.Equal(t, 1, n, "users without tweets or profile are skipped")

	users, err := dataset.ReadKeyedJSON(output)
	require.NoError(t, err)
	u1 := users["u1"]
	require.Equal(t, "bot", u1["label"])
	require.Equal(t, "fox8", u1["dataset"])

	events := u1["tweet_events"].([]any)
	require.Len(t, events, 2)
	first := events[0].(map[string]any)
	require.Equal(t, "t1", first["tweet_id"])
	require.Equal(t, "hello https://github.com/x", first["text"])
}

func TestStreamUserTweetsDropText(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "tweets.json")
	output := filepath.Join(dir, "out.json")
	writeFile(t, input, `[
		{"user_id": "u1", "user_tweets": [{"id": "t1", "text": "secret", "user": {"id": "u1"}}]}
	]`)

	_, err := StreamUserTweets(input, output, false, 0)
	require.NoError(t, err)

	users, err := dataset.ReadKeyedJSON(output)
	require.NoError(t, err)
	events := users["u1"]["tweet_events"].([]any)
	first := events[0].(map[string]any)
	_, hasText := first["text"]
	require.False(t, hasText, "dropped text must not appear in output")
}

func TestMergeTweets(t *testing.T) {
	dir := t.TempDir()
	usersJSON := filepath.Join(dir, "users.json")
	tweetsCSV := filepath.Join(dir, "tweets.csv")
	outJSON := filepath.Join(dir, "merged.json")

	writeFile(t, usersJSON, `{"10": {"profile_features": {"followers_count": 1}, "extra": "kept"}}`)
	writeFile(t, tweetsCSV,
		"id,user_id,text,created_at\n"+
			"t1,10,first tweet,2015-02-14 09:30:00\n"+
			"t2,10,second tweet,\n"+
			"t3,11,new user tweet,\n"+
			"t4,,no owner,\n")

	n, err := MergeTweets(tweetsCSV, usersJSON, outJSON, true)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	users, err := dataset.ReadKeyedJSON(outJSON)
	require.NoError(t, err)

	u10 := users["10"]
	require.Equal(t, "kept", u10["extra"], "unknown keys pass through")
	require.Len(t, u10["tweet_events"].([]any), 2)

	u11 := users["11"]
	require.NotNil(t, u11, "unseen user ids are created on demand")
	require.Len(t, u11["tweet_events"].([]any), 1)
}
