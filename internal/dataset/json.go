package dataset

import (
	"encoding/json"
	"fmt"
	"os"

	"botlens/internal/model"
)

// ReadUserArray loads a top-level JSON array of user entries. Each entry
// is either a bare user object or a {"user": {...}} wrapper. Numbers
// decode as json.Number so snowflake IDs keep every digit.
func ReadUserArray(path string) ([]model.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	dec.UseNumber()
	var entries []model.RawRecord
	if err := dec.Decode(&entries); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return entries, nil
}

// UnwrapUser resolves the user object inside an entry.
func UnwrapUser(entry model.RawRecord) model.RawRecord {
	if inner, ok := entry["user"].(map[string]any); ok {
		return model.RawRecord(inner)
	}
	return entry
}

// UserID resolves identity from id_str, falling back to id, coerced to a
// string. Empty means the record carries no usable identity.
func UserID(user model.RawRecord) string {
	if id := user.String("id_str"); id != "" {
		return id
	}
	return user.String("id")
}
