package jobs

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/bits-and-blooms/bloom/v3"

	"botlens/internal/dataset"
	"botlens/internal/logging"
	"botlens/internal/metrics"
)

// DedupReport summarizes one cross-dataset deduplication run.
type DedupReport struct {
	Datasets   map[string][]string // dataset -> surviving ids
	Duplicates map[string][]string // id -> datasets it appeared in
	Resolution map[string]string   // id -> dataset it was kept in
	Removed    int
}

var yearPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d{4})`),
	regexp.MustCompile(`20(\d{2})`),
	regexp.MustCompile(`(\d{2})`),
}

// yearFromFilename extracts a dataset year from a dataset or file name;
// two-digit years are assumed to be 20xx. Zero when nothing matches.
func yearFromFilename(name string) int {
	for _, re := range yearPatterns {
		m := re.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		year, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if year < 100 {
			year += 2000
		}
		return year
	}
	return 0
}

// DedupLabels finds user IDs shared between the label TSVs under root and
// keeps each one only in the newest dataset, writing the resolved ID
// sets plus the duplicate bookkeeping under root/processed_results.
//
// Candidate duplicates are detected with a Bloom filter over a single
// pass of all IDs, so the exact id-to-datasets index is only built for
// IDs the filter has seen before, not for the whole corpus.
func DedupLabels(root string) (*DedupReport, error) {
	start := time.Now()
	defer metrics.ObserveRunDuration(start)

	var tsvFiles []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".tsv") {
			tsvFiles = append(tsvFiles, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(tsvFiles)

	datasetIDs := make(map[string][]string)
	datasetYears := make(map[string]int)
	total := 0
	for _, path := range tsvFiles {
		name := filepath.Base(filepath.Dir(path))
		if name == filepath.Base(root) {
			name = strings.TrimSuffix(filepath.Base(path), ".tsv")
		}
		rows, err := dataset.ReadLabelTSV(path)
		if err != nil {
			return nil, err
		}
		var ids []string
		for _, row := range rows {
			if row.Label == "bot" || row.Label == "human" {
				ids = append(ids, row.ID)
			}
		}
		if len(ids) == 0 {
			logging.Warn("label_file_empty", map[string]any{"path": path})
			continue
		}
		datasetIDs[name] = ids
		datasetYears[name] = yearFromFilename(name)
		total += len(ids)
	}

	datasetNames := make([]string, 0, len(datasetIDs))
	for name := range datasetIDs {
		datasetNames = append(datasetNames, name)
	}
	sort.Strings(datasetNames)

	// Pass one: bloom-filter every ID, remembering only candidates the
	// filter claims to have seen before.
	filter := bloom.NewWithEstimates(uint(total)+1, 0.01)
	candidates := make(map[string]bool)
	for _, name := range datasetNames {
		for _, id := range datasetIDs[name] {
			if filter.TestAndAddString(id) {
				candidates[id] = true
			}
		}
	}

	// Pass two: exact occurrence index for candidates only; false
	// positives fall out here because they occur just once.
	occurrences := make(map[string][]string)
	for _, name := range datasetNames {
		for _, id := range datasetIDs[name] {
			if candidates[id] {
				occurrences[id] = append(occurrences[id], name)
			}
		}
	}
	duplicates := make(map[string][]string)
	for id, sets := range occurrences {
		if len(sets) > 1 {
			duplicates[id] = sets
		}
	}

	report := &DedupReport{
		Datasets:   datasetIDs,
		Duplicates: duplicates,
		Resolution: resolveByYear(duplicates, datasetYears),
	}

	outDir := filepath.Join(root, "processed_results")
	if len(duplicates) == 0 {
		logging.Info("dedup_none", map[string]any{"datasets": len(datasetIDs), "ids": total})
		return report, dataset.WriteJSON(filepath.Join(outDir, "original_datasets.json"), datasetIDs)
	}

	processed := make(map[string][]string, len(datasetIDs))
	kept := 0
	for name, ids := range datasetIDs {
		var survivors []string
		for _, id := range ids {
			if _, dup := duplicates[id]; !dup {
				survivors = append(survivors, id)
			}
		}
		processed[name] = survivors
		kept += len(survivors)
	}
	for id, target := range report.Resolution {
		processed[target] = append(processed[target], id)
		kept++
	}
	report.Datasets = processed
	report.Removed = total - kept

	if err := dataset.WriteJSON(filepath.Join(outDir, "processed_datasets.json"), processed); err != nil {
		return nil, err
	}
	if err := dataset.WriteJSON(filepath.Join(outDir, "duplicate_ids.json"), duplicates); err != nil {
		return nil, err
	}
	if err := dataset.WriteJSON(filepath.Join(outDir, "duplicate_resolution.json"), report.Resolution); err != nil {
		return nil, err
	}
	logging.Info("dedup_done", map[string]any{
		"datasets": len(datasetIDs), "duplicates": len(duplicates), "removed": report.Removed,
	})
	return report, nil
}

// resolveByYear keeps each duplicate in the newest dataset. Same-year
// ties prefer the most specific (longest) name, then lexicographic order.
func resolveByYear(duplicates map[string][]string, years map[string]int) map[string]string {
	resolution := make(map[string]string, len(duplicates))
	for id, sets := range duplicates {
		maxYear := -1
		for _, name := range sets {
			if y := years[name]; y > maxYear {
				maxYear = y
			}
		}
		var best []string
		for _, name := range sets {
			if years[name] == maxYear {
				best = append(best, name)
			}
		}
		sort.Slice(best, func(i, j int) bool {
			if len(best[i]) != len(best[j]) {
				return len(best[i]) > len(best[j])
			}
			return best[i] < best[j]
		})
		resolution[id] = best[0]
	}
	return resolution
}
