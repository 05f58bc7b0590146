package jobs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"botlens/internal/dataset"
	"botlens/internal/logging"
)

// FilterFeatures applies the resolved ID sets from a dedup run to the
// per-dataset feature JSON files under root: every <dataset>/x.json is
// rewritten to outDir/<dataset>/filtered_x.json keeping only users whose
// ID survived deduplication. Returns the total users kept.
func FilterFeatures(processedPath, root, outDir string) (int, error) {
	b, err := os.ReadFile(processedPath)
	if err != nil {
		return 0, err
	}
	var processed map[string][]string
	if err := json.Unmarshal(b, &processed); err != nil {
		return 0, err
	}
	validIDs := make(map[string]map[string]bool, len(processed))
	for name, ids := range processed {
		set := make(map[string]bool, len(ids))
		for _, id := range ids {
			set[id] = true
		}
		validIDs[name] = set
	}

	kept := 0
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".json") || strings.HasPrefix(d.Name(), "filtered_") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		datasetName := strings.Split(rel, string(os.PathSeparator))[0]
		ids, ok := validIDs[datasetName]
		if !ok {
			return nil
		}

		users, err := dataset.ReadKeyedJSON(path)
		if err != nil {
			logging.Warn("filter_skip_file", map[string]any{"path": path, "error": err.Error()})
			return nil
		}
		filtered := make(map[string]map[string]any)
		for id, u := range users {
			if ids[id] {
				filtered[id] = u
			}
		}
		out := filepath.Join(outDir, datasetName, "filtered_"+d.Name())
		if err := dataset.WriteJSON(out, filtered); err != nil {
			return err
		}
		kept += len(filtered)
		logging.Info("filter_written", map[string]any{
			"input": path, "output": out, "kept": len(filtered), "dropped": len(users) - len(filtered),
		})
		return nil
	})
	return kept, err
}
