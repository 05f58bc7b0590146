// Package dataset holds the file-format plumbing around the extractors:
// header-mapped CSV reading, user-array JSON reading, bounded-memory
// streaming over large JSON arrays, and the keyed output writer.
package dataset

import (
	"encoding/csv"
	"io"

	"botlens/internal/feature"
	"botlens/internal/model"
	"botlens/internal/patterns"
)

// DictReader yields CSV rows as header-keyed maps. Short rows map only
// the columns present; extra cells are dropped.
type DictReader struct {
	r      *csv.Reader
	header []string
}

// NewDictReader reads the header row immediately.
func NewDictReader(r io.Reader) (*DictReader, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		return nil, err
	}
	return &DictReader{r: cr, header: header}, nil
}

// Next returns the next row, or io.EOF when the file is exhausted.
func (d *DictReader) Next() (map[string]string, error) {
	record, err := d.r.Read()
	if err != nil {
		return nil, err
	}
	row := make(map[string]string, len(d.header))
	for i, name := range d.header {
		if i < len(record) {
			row[name] = record[i]
		}
	}
	return row, nil
}

// csvBoolColumns are coerced strictly on the CSV path: unresolved values
// become false rather than null.
var csvBoolColumns = []string{
	"verified", "protected", "default_profile_image", "default_profile", "geo_enabled",
}

// AdaptCSVUser turns a flat CSV row into the canonical raw user shape the
// profile extractor expects, synthesizing the nested entities structure
// by regex-lifting URLs out of the description and url columns.
func AdaptCSVUser(row map[string]string) model.RawRecord {
	user := make(model.RawRecord, len(row)+1)
	for k, v := range row {
		user[k] = v
	}
	for _, col := range csvBoolColumns {
		user[col] = feature.StrictBool(row[col])
	}

	descURLs := []any{}
	for _, u := range patterns.URL.FindAllString(row["description"], -1) {
		descURLs = append(descURLs, map[string]any{"expanded_url": u})
	}
	bioURLs := []any{}
	if row["url"] != "" {
		bioURLs = append(bioURLs, map[string]any{"expanded_url": row["url"]})
	}
	user["entities"] = map[string]any{
		"description": map[string]any{"urls": descURLs},
		"url":         map[string]any{"urls": bioURLs},
	}
	return user
}

// CSVUserID resolves identity from the id, user_id or uid column.
func CSVUserID(row map[string]string) string {
	for _, col := range []string{"id", "user_id", "uid"} {
		if row[col] != "" {
			return row[col]
		}
	}
	return ""
}
