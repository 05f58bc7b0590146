package dataset

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"botlens/internal/model"
)

func TestDictReader(t *testing.T) {
	in := "id,name,followers_count\n1,alice,10\n2,bob\n"
	dr, err := NewDictReader(strings.NewReader(in))
	require.NoError(t, err)

	row, err := dr.Next()
	require.NoError(t, err)
	require.Equal(t, "1", row["id"])
	require.Equal(t, "alice", row["name"])
	require.Equal(t, "10", row["followers_count"])

	row, err = dr.Next()
	require.NoError(t, err)
	require.Equal(t, "2", row["id"])
	_, short := row["followers_count"]
	require.False(t, short, "short rows omit missing columns")

	_, err = dr.Next()
	require.Equal(t, io.EOF, err)
}

func TestAdaptCSVUser(t *testing.T) {
	row := map[string]string{
		"id":          "42",
		"verified":    "True",
		"protected":   "NULL",
		"description": "links https://github.com/x",
		"url":         "https://example.com",
	}
	user := AdaptCSVUser(row)

	require.Equal(t, true, user["verified"])
	require.Equal(t, false, user["protected"], "unresolved bools collapse to false")

	descURLs := user.EntityURLs("description")
	require.Len(t, descURLs, 1)
	bioURLs := user.EntityURLs("url")
	require.Len(t, bioURLs, 1)
}

func TestCSVUserID(t *testing.T) {
	require.Equal(t, "7", CSVUserID(map[string]string{"id": "7"}))
	require.Equal(t, "8", CSVUserID(map[string]string{"user_id": "8"}))
	require.Equal(t, "9", CSVUserID(map[string]string{"uid": "9"}))
	require.Equal(t, "", CSVUserID(map[string]string{"name": "x"}))
}

func TestUnwrapUserAndID(t *testing.T) {
	wrapped := model.RawRecord{"user": map[string]any{"id_str": "11"}}
	require.Equal(t, "11", UserID(UnwrapUser(wrapped)))

	bare := model.RawRecord{"id": float64(12)}
	require.Equal(t, "12", UserID(UnwrapUser(bare)))

	require.Equal(t, "", UserID(model.RawRecord{}))
}

func TestUserArraySnowflakeIDs(t *testing.T) {
	// 19-digit snowflake IDs exceed the float64 mantissa and must not
	// lose digits on the way to the string identity.
	const big = "1234567890123456789"
	path := filepath.Join(t.TempDir(), "users.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id": `+big+`}]`), 0o644))

	entries, err := ReadUserArray(path)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, big, UserID(UnwrapUser(entries[0])))
}

func TestArrayIterator(t *testing.T) {
	it := NewArrayIterator(strings.NewReader(`[{"id":"1"},{"id":"2"},{"id":"3"}]`))
	var ids []string
	for {
		rec, ok := it.Next()
		if !ok {
			break
		}
		ids = append(ids, rec.String("id"))
	}
	require.NoError(t, it.Err())
	require.Equal(t, []string{"1", "2", "3"}, ids)

	// exhausted iterator stays exhausted
	_, ok := it.Next()
	require.False(t, ok)
}

func TestArrayIteratorSnowflakeIDs(t *testing.T) {
	const big = "9007199254740993" // 2^53 + 1, first integer a float64 drops
	it := NewArrayIterator(strings.NewReader(`[{"id": ` + big + `}]`))
	rec, ok := it.Next()
	require.True(t, ok)
	require.Equal(t, big, UserID(rec))
}

func TestArrayIteratorErrors(t *testing.T) {
	it := NewArrayIterator(strings.NewReader(`{"not":"an array"}`))
	_, ok := it.Next()
	require.False(t, ok)
	require.Error(t, it.Err())

	it = NewArrayIterator(strings.NewReader(`[{"id":"1"}, {bad`))
	_, ok = it.Next()
	require.True(t, ok)
	_, ok = it.Next()
	require.False(t, ok)
	require.Error(t, it.Err())
}

func TestWriteAndReadKeyedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "users.json")
	in := map[string]map[string]any{
		"1": {"url": "https://x.com/?a=1&b=2", "extra": "kept"},
	}
	require.NoError(t, WriteJSON(path, in))

	out, err := ReadKeyedJSON(path)
	require.NoError(t, err)
	require.Equal(t, "kept", out["1"]["extra"])

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(b), "a=1&b=2", "html escaping is off")

	empty, err := ReadKeyedJSON(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestLabelTSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ds", "label.tsv")
	rows := []LabelRow{{ID: "1", Label: "human"}, {ID: "2", Label: "bot"}}
	require.NoError(t, WriteLabelTSV(path, rows))

	got, err := ReadLabelTSV(path)
	require.NoError(t, err)
	require.Equal(t, rows, got)
}
