// Package jobs holds one driver per pipeline tool. Drivers own the thin
// I/O glue: they dispatch on file formats, loop records through the
// extractors, log and count skips, and write the keyed output. A bad
// record is dropped with a warning; only whole-file problems are errors.
package jobs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"botlens/internal/dataset"
	"botlens/internal/feature"
	"botlens/internal/logging"
	"botlens/internal/metrics"
	"botlens/internal/model"
)

// ErrUnsupportedInput marks an input extension no reader handles.
var ErrUnsupportedInput = errors.New("unsupported input file type (want .json or .csv)")

// ExtractProfiles reads a users file (.json or .csv), extracts the
// profile feature pair for every user, and writes the keyed output JSON.
// Returns the number of users written.
func ExtractProfiles(inputPath, outputPath string, progressEvery int) (int, error) {
	start := time.Now()
	defer metrics.ObserveRunDuration(start)

	users := make(map[string]*model.UserOutput)
	var err error
	switch strings.ToLower(filepath.Ext(inputPath)) {
	case ".json":
		err = extractFromJSON(inputPath, users, progressEvery)
	case ".csv":
		err = extractFromCSV(inputPath, users, progressEvery)
	default:
		return 0, fmt.Errorf("%s: %w", inputPath, ErrUnsupportedInput)
	}
	if err != nil {
		return 0, err
	}
	if err := dataset.WriteJSON(outputPath, users); err != nil {
		return 0, err
	}
	logging.Info("extract_done", map[string]any{"input": inputPath, "output": outputPath, "users": len(users)})
	return len(users), nil
}

func extractFromJSON(path string, users map[string]*model.UserOutput, progressEvery int) error {
	entries, err := dataset.ReadUserArray(path)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		user := dataset.UnwrapUser(entry)
		id := dataset.UserID(user)
		if id == "" {
			metrics.SkipUser("no_id")
			logging.Warn("user_without_id", map[string]any{"file": filepath.Base(path)})
			continue
		}
		pf, pfm := feature.ExtractProfile(user)
		users[id] = &model.UserOutput{ProfileFeatures: &pf, ProfileFeaturesMissing: &pfm}
		metrics.UsersProcessed.Inc()
		progress(len(users), progressEvery)
	}
	return nil
}

func extractFromCSV(path string, users map[string]*model.UserOutput, progressEvery int) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	r, err := dataset.NewDictReader(f)
	if err != nil {
		return err
	}
	for {
		row, err := r.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			// one mangled row should not sink the file
			metrics.SkipUser("bad_row")
			logging.Warn("csv_row_error", map[string]any{"file": filepath.Base(path), "error": err.Error()})
			continue
		}
		id := dataset.CSVUserID(row)
		if id == "" {
			metrics.SkipUser("no_id")
			continue
		}
		pf, pfm := feature.ExtractProfile(dataset.AdaptCSVUser(row))
		users[id] = &model.UserOutput{ProfileFeatures: &pf, ProfileFeaturesMissing: &pfm}
		metrics.UsersProcessed.Inc()
		progress(len(users), progressEvery)
	}
}

func progress(n, every int) {
	if every > 0 && n%every == 0 {
		logging.Info("progress", map[string]any{"users": n})
	}
}
