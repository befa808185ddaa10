package engine

import "iter"

// RecordSource yields raw records one at a time. Next returns
// ok == false once the source is exhausted; it is never called again
// afterward. This mirrors a pull-based iterator so callers can stream
// records (e.g. from a CSV reader) without materializing the whole
// input in memory.
type RecordSource interface {
	Next() (RawRecord, bool, error)
}

// OnSuccessFunc is invoked exactly once per successfully applied
// record: synchronously by Process, and from one dedicated goroutine
// by ProcessParallel.
type OnSuccessFunc func(TransactionRecord)

// OnErrorFunc is invoked exactly once per record that failed
// validation or processing: synchronously by Process, and from one
// dedicated goroutine by ProcessParallel.
type OnErrorFunc func(*Error)

// Process consumes records from source in order, routes each to its
// account, and reports exactly one of onSuccess/onError per record.
// It returns a lazy sequence of the final snapshot of every touched
// account: nothing runs until the caller starts ranging over the
// result, at which point the entire input is drained before the first
// snapshot is yielded (snapshots cannot be known until the stream
// ends).
//
// Process is the single-threaded orchestrator: there is no goroutine,
// no channel, and no worker pool. A panicking callback unwinds
// straight out of the iteration.
func Process(source RecordSource, onSuccess OnSuccessFunc, onError OnErrorFunc) iter.Seq[AccountRecord] {
	return func(yield func(AccountRecord) bool) {
		accounts := make(map[ClientId]*AccountState)
		order := make([]ClientId, 0)

		for {
			raw, ok, err := source.Next()
			if err != nil {
				onError(csvError(err))
				continue
			}
			if !ok {
				break
			}

			acct, seen := accounts[raw.Client]
			if !seen {
				acct = newAccountState(raw.Client)
				accounts[raw.Client] = acct
				order = append(order, raw.Client)
			}

			ev, verr := validate(raw)
			if verr != nil {
				onError(verr)
				continue
			}

			if aerr := acct.apply(ev); aerr != nil {
				onError(aerr)
				continue
			}

			onSuccess(ev.record())
		}

		for _, client := range order {
			rec, err := accounts[client].snapshot()
			if err != nil {
				// Unreachable in practice: available/held are each
				// individually overflow-checked on every mutation, so
				// their sum cannot overflow here. Skip the record
				// rather than silently fabricate one.
				continue
			}
			if !yield(rec) {
				return
			}
		}
	}
}
