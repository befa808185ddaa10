package engine

import "sync"

// sliceSource is a RecordSource backed by an in-memory slice, used by
// both the sequential and parallel orchestrator tests so neither needs
// a real CSV reader to exercise Process/ProcessParallel.
type sliceSource struct {
	mu      sync.Mutex
	records []RawRecord
	pos     int
	failAt  int // index at which Next returns a synthetic error; -1 disables
	failErr error
}

func newSliceSource(records []RawRecord) *sliceSource {
	return &sliceSource{records: records, failAt: -1}
}

func (s *sliceSource) Next() (RawRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pos == s.failAt {
		s.pos++
		return RawRecord{}, true, s.failErr
	}
	if s.pos >= len(s.records) {
		return RawRecord{}, false, nil
	}
	r := s.records[s.pos]
	s.pos++
	return r, true, nil
}

func dep(client ClientId, tx TxId, amount string) RawRecord {
	return RawRecord{Kind: "deposit", Client: client, Tx: tx, Amount: amount, HasAmount: true}
}

func wdr(client ClientId, tx TxId, amount string) RawRecord {
	return RawRecord{Kind: "withdrawal", Client: client, Tx: tx, Amount: amount, HasAmount: true}
}

func disp(client ClientId, tx TxId) RawRecord {
	return RawRecord{Kind: "dispute", Client: client, Tx: tx}
}

func res(client ClientId, tx TxId) RawRecord {
	return RawRecord{Kind: "resolve", Client: client, Tx: tx}
}

func chb(client ClientId, tx TxId) RawRecord {
	return RawRecord{Kind: "chargeback", Client: client, Tx: tx}
}
