package engine

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Logger is the minimal diagnostic hook the parallel orchestrator
// accepts. It exists purely for operational visibility (e.g. the
// worker-count-coerced-to-1 warning); nothing in the engine's decision
// logic depends on it, and the default is a silent no-op so the engine
// stays a pure function of (records, callbacks) -> snapshots when no
// logger is supplied.
type Logger interface {
	Warnf(format string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Warnf(string, ...any) {}

const defaultQueueCapacity = 256

// parallelConfig holds the resolved options for ProcessParallel.
type parallelConfig struct {
	numWorkers    int
	queueCapacity int
	logger        Logger
}

// ParallelOption configures ProcessParallel.
type ParallelOption func(*parallelConfig)

// WithWorkers sets the number of worker partitions. A requested value
// of 0 is coerced to 1 and logged as a warning via WithLogger's
// logger, if any.
func WithWorkers(n int) ParallelOption {
	return func(c *parallelConfig) { c.numWorkers = n }
}

// WithQueueCapacity sets the bounded capacity of the dispatch and
// result channels.
func WithQueueCapacity(n int) ParallelOption {
	return func(c *parallelConfig) {
		if n > 0 {
			c.queueCapacity = n
		}
	}
}

// WithLogger attaches a diagnostic logger to the orchestrator.
func WithLogger(l Logger) ParallelOption {
	return func(c *parallelConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

func resolveConfig(opts []ParallelOption) parallelConfig {
	cfg := parallelConfig{
		numWorkers:    defaultNumWorkers(),
		queueCapacity: defaultQueueCapacity,
		logger:        noopLogger{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.numWorkers == 0 {
		cfg.logger.Warnf("parallel: requested 0 workers, coercing to 1")
		cfg.numWorkers = 1
	}
	if cfg.numWorkers < 0 {
		cfg.numWorkers = 1
	}
	if cfg.queueCapacity <= 0 {
		cfg.queueCapacity = defaultQueueCapacity
	}
	return cfg
}

func defaultNumWorkers() int {
	if n := runtime.GOMAXPROCS(0) - 1; n > 0 {
		return n
	}
	return 1
}

// dispatchItem is what the dispatcher hands a worker: a raw record
// routed to this worker's shard.
type dispatchItem struct {
	raw RawRecord
}

// ProcessParallel is the client-sharded parallel orchestrator: one
// dispatcher goroutine, NumWorkers worker goroutines (each owning a
// disjoint partition of accounts keyed by client % NumWorkers), and
// two dedicated callback goroutines fed by bounded result channels.
//
// Per-client ordering is preserved end-to-end because every event for
// a given client is routed to the same worker and a worker processes
// its channel strictly in order. Ordering across clients, and between
// success and error callbacks, is not guaranteed.
//
// Cancelling ctx unwinds the pipeline early; ProcessParallel returns
// ctx.Err() alongside whatever snapshots had already accumulated. A
// panic inside either callback is recovered at the goroutine boundary,
// cancels the run, and is re-raised from ProcessParallel once every
// goroutine has unwound.
func ProcessParallel(ctx context.Context, source RecordSource, onSuccess OnSuccessFunc, onError OnErrorFunc, opts ...ParallelOption) ([]AccountRecord, error) {
	cfg := resolveConfig(opts)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	workerInputs := make([]chan dispatchItem, cfg.numWorkers)
	for i := range workerInputs {
		workerInputs[i] = make(chan dispatchItem, cfg.queueCapacity)
	}
	successCh := make(chan TransactionRecord, cfg.queueCapacity)
	errorCh := make(chan *Error, cfg.queueCapacity)
	workerSnapshots := make([][]AccountRecord, cfg.numWorkers)

	var panicMu sync.Mutex
	var panicValue any
	recordPanic := func(r any) {
		panicMu.Lock()
		defer panicMu.Unlock()
		if panicValue == nil {
			panicValue = r
		}
	}

	// Dispatcher: parses nothing itself (the source already yields
	// RawRecord), routes by client shard, and closes every worker
	// input channel once the source is exhausted.
	g.Go(func() error {
		defer func() {
			for _, ch := range workerInputs {
				close(ch)
			}
		}()
		for {
			raw, ok, err := source.Next()
			if err != nil {
				if !sendCtx(gctx, errorCh, csvError(err)) {
					return gctx.Err()
				}
				continue
			}
			if !ok {
				return nil
			}
			shard := int(raw.Client) % cfg.numWorkers
			select {
			case workerInputs[shard] <- dispatchItem{raw: raw}:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
	})

	// Workers: each owns an exclusive AccountState partition. No
	// locks, no shared state between workers.
	var workersWG sync.WaitGroup
	workersWG.Add(cfg.numWorkers)
	for i := 0; i < cfg.numWorkers; i++ {
		i := i
		g.Go(func() error {
			defer workersWG.Done()
			snaps, err := runWorker(gctx, workerInputs[i], successCh, errorCh)
			workerSnapshots[i] = snaps
			return err
		})
	}

	// Closer: once every worker has drained and finished, both result
	// channels are safe to close, which lets the callback goroutines
	// terminate their range loops.
	g.Go(func() error {
		workersWG.Wait()
		close(successCh)
		close(errorCh)
		return nil
	})

	g.Go(func() error {
		defer func() {
			if r := recover(); r != nil {
				recordPanic(r)
				cancel()
			}
		}()
		for rec := range successCh {
			onSuccess(rec)
		}
		return nil
	})

	g.Go(func() error {
		defer func() {
			if r := recover(); r != nil {
				recordPanic(r)
				cancel()
			}
		}()
		for errVal := range errorCh {
			onError(errVal)
		}
		return nil
	})

	waitErr := g.Wait()

	if panicValue != nil {
		panic(panicValue)
	}

	records := make([]AccountRecord, 0)
	for _, snaps := range workerSnapshots {
		records = append(records, snaps...)
	}

	if waitErr != nil {
		return records, waitErr
	}
	return records, nil
}

// runWorker drains its input channel, applying validated events to its
// own exclusive account partition, until the channel is closed. It
// returns the final snapshots for every client it touched.
func runWorker(ctx context.Context, in <-chan dispatchItem, successCh chan<- TransactionRecord, errorCh chan<- *Error) ([]AccountRecord, error) {
	accounts := make(map[ClientId]*AccountState)
	order := make([]ClientId, 0)

	for {
		var item dispatchItem
		var ok bool
		select {
		case item, ok = <-in:
		case <-ctx.Done():
			return snapshotAll(accounts, order), ctx.Err()
		}
		if !ok {
			break
		}

		raw := item.raw
		acct, seen := accounts[raw.Client]
		if !seen {
			acct = newAccountState(raw.Client)
			accounts[raw.Client] = acct
			order = append(order, raw.Client)
		}

		ev, verr := validate(raw)
		if verr != nil {
			if !sendCtx(ctx, errorCh, verr) {
				return snapshotAll(accounts, order), ctx.Err()
			}
			continue
		}

		if aerr := acct.apply(ev); aerr != nil {
			if !sendCtx(ctx, errorCh, aerr) {
				return snapshotAll(accounts, order), ctx.Err()
			}
			continue
		}

		if !sendCtx(ctx, successCh, ev.record()) {
			return snapshotAll(accounts, order), ctx.Err()
		}
	}

	return snapshotAll(accounts, order), nil
}

func snapshotAll(accounts map[ClientId]*AccountState, order []ClientId) []AccountRecord {
	records := make([]AccountRecord, 0, len(order))
	for _, client := range order {
		rec, err := accounts[client].snapshot()
		if err != nil {
			continue
		}
		records = append(records, rec)
	}
	return records
}

// sendCtx sends v on ch, returning false instead of blocking forever
// if ctx is cancelled first.
func sendCtx[T any](ctx context.Context, ch chan<- T, v T) bool {
	select {
	case ch <- v:
		return true
	case <-ctx.Done():
		return false
	}
}
