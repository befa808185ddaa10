package csvio

import (
	"errors"
	"strings"
	"testing"

	"github.com/LeJamon/txengine/internal/engine"
)

func drain(t *testing.T, r *Reader) ([]engine.RawRecord, []error) {
	t.Helper()
	var recs []engine.RawRecord
	var errs []error
	for {
		rec, ok, err := r.Next()
		if err != nil {
			errs = append(errs, err)
			if !ok {
				break
			}
			continue
		}
		if !ok {
			break
		}
		recs = append(recs, rec)
	}
	return recs, errs
}

func TestReader_ParsesWellFormedRows(t *testing.T) {
	input := `type,client,tx,amount
deposit,1,1,1.0
withdrawal, 1, 4, 1.5
dispute,1,3,
resolve,1,3,
chargeback,1,3,
`
	r := NewReader(strings.NewReader(input))
	recs, errs := drain(t, r)

	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(recs) != 5 {
		t.Fatalf("got %d records, want 5", len(recs))
	}
	if recs[0].Kind != "deposit" || recs[0].Client != 1 || recs[0].Tx != 1 || recs[0].Amount != "1.0" || !recs[0].HasAmount {
		t.Errorf("unexpected first record: %+v", recs[0])
	}
	if recs[2].Kind != "dispute" || recs[2].HasAmount {
		t.Errorf("dispute row should have no amount: %+v", recs[2])
	}
}

func TestReader_RejectsBadHeader(t *testing.T) {
	r := NewReader(strings.NewReader("kind,client,tx,amount\ndeposit,1,1,1.0\n"))
	_, _, err := r.Next()
	if err == nil {
		t.Fatal("expected a header error")
	}
	if !errors.Is(err, ErrMalformedHeader) {
		t.Errorf("err = %v, want one wrapping ErrMalformedHeader", err)
	}
}

func TestReader_RejectsNonNumericClient(t *testing.T) {
	r := NewReader(strings.NewReader("type,client,tx,amount\ndeposit,abc,1,1.0\n"))
	// The first Next validates the header and then decodes the first data row.
	_, ok, err := r.Next()
	if err == nil || !ok {
		t.Fatalf("expected a parse error for row, got ok=%v err=%v", ok, err)
	}
}

func TestReader_EmptyInputYieldsNoRecords(t *testing.T) {
	r := NewReader(strings.NewReader("type,client,tx,amount\n"))
	recs, errs := drain(t, r)
	if len(recs) != 0 || len(errs) != 0 {
		t.Fatalf("expected no records and no errors, got recs=%v errs=%v", recs, errs)
	}
}
