// Package csvio adapts the engine's RecordSource/output surface onto
// CSV files. It decodes nothing the core engine doesn't already
// validate itself; its only job is turning text rows into RawRecords
// and AccountRecords back into text rows.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/LeJamon/txengine/internal/engine"
)

var wantHeader = []string{"type", "client", "tx", "amount"}

// ErrMalformedHeader is wrapped by any error Next returns because the
// header row doesn't match "type,client,tx,amount". Unlike a single
// bad data row, a malformed header means the whole stream can't be
// interpreted, so callers that distinguish it with errors.Is should
// treat it as fatal rather than skip-and-continue.
var ErrMalformedHeader = errors.New("malformed CSV header")

// Reader implements engine.RecordSource over a CSV stream with header
// "type,client,tx,amount". Whitespace around every field is trimmed.
type Reader struct {
	r        *csv.Reader
	checked  bool
	finished bool
}

// NewReader wraps r. The header row is read and validated lazily, on
// the first call to Next, so constructing a Reader never touches the
// stream.
func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return &Reader{r: cr}
}

// Next implements engine.RecordSource.
func (rd *Reader) Next() (engine.RawRecord, bool, error) {
	if rd.finished {
		return engine.RawRecord{}, false, nil
	}
	if !rd.checked {
		rd.checked = true
		header, err := rd.r.Read()
		if err == io.EOF {
			rd.finished = true
			return engine.RawRecord{}, false, nil
		}
		if err != nil {
			rd.finished = true
			return engine.RawRecord{}, true, fmt.Errorf("%w: reading CSV header: %v", ErrMalformedHeader, err)
		}
		if err := checkHeader(header); err != nil {
			rd.finished = true
			return engine.RawRecord{}, true, err
		}
	}

	row, err := rd.r.Read()
	if err == io.EOF {
		rd.finished = true
		return engine.RawRecord{}, false, nil
	}
	if err != nil {
		return engine.RawRecord{}, true, fmt.Errorf("reading CSV row: %w", err)
	}

	rec, err := parseRow(row)
	if err != nil {
		return engine.RawRecord{}, true, err
	}
	return rec, true, nil
}

func checkHeader(header []string) error {
	if len(header) < len(wantHeader) {
		return fmt.Errorf("%w: has %d columns, want at least %d (%s)", ErrMalformedHeader, len(header), len(wantHeader), strings.Join(wantHeader, ","))
	}
	for i, col := range wantHeader {
		if strings.TrimSpace(strings.ToLower(header[i])) != col {
			return fmt.Errorf("%w: column %d is %q, want %q", ErrMalformedHeader, i, header[i], col)
		}
	}
	return nil
}

func parseRow(row []string) (engine.RawRecord, error) {
	if len(row) < 3 {
		return engine.RawRecord{}, fmt.Errorf("CSV row has %d columns, want at least 3", len(row))
	}

	kind := strings.TrimSpace(row[0])

	client, err := strconv.ParseUint(strings.TrimSpace(row[1]), 10, 16)
	if err != nil {
		return engine.RawRecord{}, fmt.Errorf("parsing client id %q: %w", row[1], err)
	}

	tx, err := strconv.ParseUint(strings.TrimSpace(row[2]), 10, 32)
	if err != nil {
		return engine.RawRecord{}, fmt.Errorf("parsing tx id %q: %w", row[2], err)
	}

	rec := engine.RawRecord{
		Kind:   kind,
		Client: engine.ClientId(client),
		Tx:     engine.TxId(tx),
	}

	if len(row) > 3 {
		amount := strings.TrimSpace(row[3])
		if amount != "" {
			rec.Amount = amount
			rec.HasAmount = true
		}
	}

	return rec, nil
}
