package dataset

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
)

// LabelRow is one normalized (user id, human/bot) pair.
type LabelRow struct {
	ID    string
	Label string
}

// WriteLabelTSV writes the standard two-column label.tsv with header.
func WriteLabelTSV(path string, rows []LabelRow) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	w.Comma = '\t'
	if err := w.Write([]string{"id", "label"}); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write([]string{row.ID, row.Label}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// ReadLabelTSV reads a label TSV, skipping malformed rows and a header
// row when present.
func ReadLabelTSV(path string) ([]LabelRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.Comma = '\t'
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	var rows []LabelRow
	for _, rec := range records {
		if len(rec) < 2 {
			continue
		}
		id := strings.TrimSpace(rec[0])
		label := strings.ToLower(strings.TrimSpace(rec[1]))
		if id == "" || id == "id" {
			continue
		}
		rows = append(rows, LabelRow{ID: id, Label: label})
	}
	return rows, nil
}
