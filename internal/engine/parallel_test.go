package engine

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/LeJamon/txengine/internal/engine/enginemock"
	"github.com/golang/mock/gomock"
)

type stubLogger struct {
	mu    sync.Mutex
	warns []string
}

func (l *stubLogger) Warnf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, format)
}

func byClient(records []AccountRecord) []AccountRecord {
	out := append([]AccountRecord(nil), records...)
	sort.Slice(out, func(i, j int) bool { return out[i].Client < out[j].Client })
	return out
}

func TestProcessParallel_MatchesSequentialAcrossClients(t *testing.T) {
	raw := []RawRecord{
		dep(1, 1, "10.0"), dep(2, 1, "5.0"), dep(3, 1, "7.0"),
		wdr(1, 2, "3.0"), disp(2, 1), dep(3, 2, "1.0"),
		res(2, 1), chb(3, 2),
	}

	seqSrc := newSliceSource(append([]RawRecord(nil), raw...))
	seqRecords := byClient(collect(Process(seqSrc, func(TransactionRecord) {}, func(*Error) {})))

	parSrc := newSliceSource(append([]RawRecord(nil), raw...))
	parRecords, err := ProcessParallel(context.Background(), parSrc, func(TransactionRecord) {}, func(*Error) {}, WithWorkers(2))
	if err != nil {
		t.Fatalf("ProcessParallel: %v", err)
	}
	parRecords = byClient(parRecords)

	if len(seqRecords) != len(parRecords) {
		t.Fatalf("got %d parallel records, want %d", len(parRecords), len(seqRecords))
	}
	for i := range seqRecords {
		if seqRecords[i] != parRecords[i] {
			t.Errorf("record %d mismatch: sequential=%+v parallel=%+v", i, seqRecords[i], parRecords[i])
		}
	}
}

func TestProcessParallel_CallbackCountsViaMockRecorder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	rec := enginemock.NewMockRecorder(ctrl)
	rec.EXPECT().Success(gomock.Any()).Times(3)
	rec.EXPECT().Error(gomock.Any()).Times(1)

	src := newSliceSource([]RawRecord{
		dep(1, 1, "10.0"),
		dep(2, 1, "5.0"),
		{Kind: "teleport", Client: 3, Tx: 1},
		dep(1, 2, "1.0"),
	})

	_, err := ProcessParallel(context.Background(), src,
		func(r TransactionRecord) { rec.Success(r) },
		func(e *Error) { rec.Error(e) },
		WithWorkers(3),
	)
	if err != nil {
		t.Fatalf("ProcessParallel: %v", err)
	}
}

func TestProcessParallel_ZeroWorkersCoercedToOneAndWarns(t *testing.T) {
	logger := &stubLogger{}
	src := newSliceSource([]RawRecord{dep(1, 1, "1.0")})

	records, err := ProcessParallel(context.Background(), src, func(TransactionRecord) {}, func(*Error) {}, WithWorkers(0), WithLogger(logger))
	if err != nil {
		t.Fatalf("ProcessParallel: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	logger.mu.Lock()
	defer logger.mu.Unlock()
	if len(logger.warns) != 1 {
		t.Fatalf("got %d warnings, want 1", len(logger.warns))
	}
}

func TestProcessParallel_CancellationUnwindsCleanly(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// ctx is cancelled before the call, so every dispatcher send to the
	// single capacity-1 queue (one worker) contends with a ready
	// ctx.Done(); with many records cancellation is overwhelmingly
	// likely to win at least one of them.
	records := make([]RawRecord, 0, 500)
	for i := 0; i < 500; i++ {
		records = append(records, dep(1, TxId(i+1), "1.0"))
	}
	src := newSliceSource(records)

	_, err := ProcessParallel(ctx, src, func(TransactionRecord) {}, func(*Error) {}, WithWorkers(1), WithQueueCapacity(1))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestProcessParallel_CallbackPanicPropagates(t *testing.T) {
	src := newSliceSource([]RawRecord{dep(1, 1, "1.0")})

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic to propagate out of ProcessParallel")
		}
		if r != "boom" {
			t.Fatalf("recovered %v, want %q", r, "boom")
		}
	}()

	_, _ = ProcessParallel(context.Background(), src, func(TransactionRecord) { panic("boom") }, func(*Error) {}, WithWorkers(1))
	t.Fatal("ProcessParallel returned without panicking")
}

func TestProcessParallel_CSVErrorIsReported(t *testing.T) {
	src := newSliceSource([]RawRecord{dep(1, 1, "1.0")})
	src.failAt = 0
	src.failErr = errors.New("malformed row")

	var errs []*Error
	var mu sync.Mutex
	_, err := ProcessParallel(context.Background(), src, func(TransactionRecord) {}, func(e *Error) {
		mu.Lock()
		defer mu.Unlock()
		errs = append(errs, e)
	}, WithWorkers(1))
	if err != nil {
		t.Fatalf("ProcessParallel: %v", err)
	}
	if len(errs) != 1 || errs[0].Kind != ErrKindCSV {
		t.Fatalf("errs = %+v, want one ErrKindCSV error", errs)
	}
}
