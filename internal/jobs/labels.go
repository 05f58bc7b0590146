package jobs

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"botlens/internal/dataset"
	"botlens/internal/logging"
)

// cresci15Folders maps the cresci-2015 sub-collections to their labels,
// per the dataset paper.
var cresci15Folders = map[string]string{
	"E13.csv": "human",
	"TFP.csv": "human",
	"FSF.csv": "bot",
	"INT.csv": "bot",
	"TWT.csv": "bot",
}

// cresci17Folders maps the cresci-2017 sub-collections to their labels.
var cresci17Folders = map[string]string{
	"fake_followers.csv":         "bot",
	"social_spambots_1.csv":      "bot",
	"social_spambots_2.csv":      "bot",
	"social_spambots_3.csv":      "bot",
	"traditional_spambots_1.csv": "bot",
	"traditional_spambots_2.csv": "bot",
	"traditional_spambots_3.csv": "bot",
	"traditional_spambots_4.csv": "bot",
	"genuine_accounts.csv":       "human",
}

// NormalizeLabels walks every dataset directory under root and writes a
// standard label.tsv (id, human/bot) using the per-dataset strategy:
// label CSVs for twibot and fox8, folder-to-label maps for the cresci
// collections. Datasets that already carry a label.tsv are left alone.
func NormalizeLabels(root string) error {
	entries, err := os.ReadDir(root)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		dir := filepath.Join(root, e.Name())
		if _, err := os.Stat(filepath.Join(dir, "label.tsv")); err == nil {
			logging.Info("labels_exist", map[string]any{"dataset": e.Name()})
			continue
		}
		name := strings.ToLower(e.Name())
		switch {
		case strings.Contains(name, "twibot"):
			err = labelsFromCSV(dir, "label.csv")
		case strings.Contains(name, "fox8"):
			err = labelsFromCSV(dir, "fox8_23.csv")
		case strings.Contains(name, "cresci-15"):
			err = labelsFromFolders(dir, "Fake_project_dataset_csv", cresci15Folders)
		case strings.Contains(name, "cresci17"):
			err = labelsFromFolders(dir, "datasets_full.csv", cresci17Folders)
		default:
			logging.Info("labels_no_rule", map[string]any{"dataset": e.Name()})
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// labelsFromCSV converts a two-column label CSV. IDs lose any leading
// "u" prefix; rows without a human/bot label are dropped.
func labelsFromCSV(dir, filename string) error {
	path := filepath.Join(dir, filename)
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		logging.Warn("label_file_missing", map[string]any{"path": path})
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	if _, err := r.Read(); err != nil { // header
		if err == io.EOF {
			return nil
		}
		return err
	}
	var rows []dataset.LabelRow
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if len(rec) < 2 {
			continue
		}
		id := strings.TrimPrefix(strings.TrimSpace(rec[0]), "u")
		label := strings.ToLower(strings.TrimSpace(rec[1]))
		if label == "human" || label == "bot" {
			rows = append(rows, dataset.LabelRow{ID: id, Label: label})
		}
	}
	return writeLabels(dir, rows)
}

// labelsFromFolders assigns each sub-collection's label to every user ID
// found in its *_features.json.
func labelsFromFolders(dir, subdir string, folders map[string]string) error {
	base := filepath.Join(dir, subdir)
	if _, err := os.Stat(base); err != nil {
		logging.Warn("label_subdir_missing", map[string]any{"path": base})
		return nil
	}
	names := make([]string, 0, len(folders))
	for folder := range folders {
		names = append(names, folder)
	}
	sort.Strings(names)

	var rows []dataset.LabelRow
	for _, folder := range names {
		label := folders[folder]
		matches, err := filepath.Glob(filepath.Join(base, folder, "*_features.json"))
		if err != nil || len(matches) == 0 {
			logging.Warn("features_json_missing", map[string]any{"folder": folder})
			continue
		}
		users, err := dataset.ReadKeyedJSON(matches[0])
		if err != nil {
			logging.Warn("features_json_error", map[string]any{"folder": folder, "error": err.Error()})
			continue
		}
		ids := make([]string, 0, len(users))
		for id := range users {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			rows = append(rows, dataset.LabelRow{ID: id, Label: label})
		}
	}
	return writeLabels(dir, rows)
}

func writeLabels(dir string, rows []dataset.LabelRow) error {
	if len(rows) == 0 {
		return nil
	}
	path := filepath.Join(dir, "label.tsv")
	if err := dataset.WriteLabelTSV(path, rows); err != nil {
		return err
	}
	logging.Info("labels_written", map[string]any{"path": path, "rows": len(rows)})
	return nil
}
