package dataset

import (
	"encoding/json"
	"fmt"
	"io"

	"botlens/internal/model"
)

// ArrayIterator is a forward-only, single-pass iterator over the elements
// of a top-level JSON array, backed by incremental token parsing so
// arbitrarily large files need O(1) input-side memory. Not restartable.
type ArrayIterator struct {
	dec     *json.Decoder
	started bool
	done    bool
	err     error
}

// NewArrayIterator wraps r; no input is consumed until the first Next.
// Numbers decode as json.Number so IDs wider than a float64 mantissa
// survive intact.
func NewArrayIterator(r io.Reader) *ArrayIterator {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &ArrayIterator{dec: dec}
}

// Next yields the next array element. ok is false once the array is
// exhausted or a parse error occurred; check Err to tell the two apart.
func (it *ArrayIterator) Next() (model.RawRecord, bool) {
	if it.done || it.err != nil {
		return nil, false
	}
	if !it.started {
		tok, err := it.dec.Token()
		if err != nil {
			it.fail(err)
			return nil, false
		}
		if d, ok := tok.(json.Delim); !ok || d != '[' {
			it.fail(fmt.Errorf("expected top-level array, got %v", tok))
			return nil, false
		}
		it.started = true
	}
	if !it.dec.More() {
		if _, err := it.dec.Token(); err != nil && err != io.EOF {
			it.fail(err)
		}
		it.done = true
		return nil, false
	}
	var record model.RawRecord
	if err := it.dec.Decode(&record); err != nil {
		it.fail(err)
		return nil, false
	}
	return record, true
}

// Err reports the first parse failure, nil after a clean run.
func (it *ArrayIterator) Err() error { return it.err }

func (it *ArrayIterator) fail(err error) {
	it.err = err
	it.done = true
}
