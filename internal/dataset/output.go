package dataset

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// WriteJSON writes v as two-space-indented UTF-8 JSON, creating parent
// directories as needed. HTML characters are left unescaped so URLs stay
// readable in the output.
func WriteJSON(path string, v any) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ReadKeyedJSON loads an object-of-objects JSON file (user id -> record),
// preserving every key so enrichment passes never drop fields they do not
// model. Numbers decode as json.Number and re-encode verbatim, so wide
// numeric fields survive a read-modify-write cycle. A missing file yields
// an empty map.
func ReadKeyedJSON(path string) (map[string]map[string]any, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return map[string]map[string]any{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	dec.UseNumber()
	var out map[string]map[string]any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	if out == nil {
		out = map[string]map[string]any{}
	}
	return out, nil
}
