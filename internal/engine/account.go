package engine

import "github.com/LeJamon/txengine/internal/money"

// depositEntry is the deposit ledger value: the original amount and
// whether the deposit is currently under dispute. Entries exist for
// every successfully applied Deposit and are removed only by a
// Chargeback.
type depositEntry struct {
	amount   money.Money
	disputed bool
}

// AccountState is the per-client aggregate: available and held
// balances, the freeze flag, and the deposit ledger. It is owned
// exclusively by one execution context at a time — the sequential
// orchestrator, or a single parallel worker — and is never read or
// mutated from more than one goroutine.
type AccountState struct {
	Client    ClientId
	Available money.Money
	Held      money.Money
	Frozen    bool

	ledger map[TxId]*depositEntry
}

// newAccountState creates the zero-value account for a client, created
// lazily on the first event that references it.
func newAccountState(client ClientId) *AccountState {
	return &AccountState{
		Client: client,
		ledger: make(map[TxId]*depositEntry),
	}
}

// Total is available + held, computed on demand and never stored.
func (a *AccountState) Total() (money.Money, error) {
	return a.Available.Add(a.Held)
}

// apply routes a validated event to the matching state-machine
// operation. It is the sole entry point the orchestrators use once an
// event has passed validation.
func (a *AccountState) apply(e event) *Error {
	if a.Frozen {
		return validationError(e.client, e.tx, "account frozen")
	}

	switch e.kind {
	case EventDeposit:
		return a.deposit(e.tx, e.amount)
	case EventWithdrawal:
		return a.withdraw(e.tx, e.amount)
	case EventDispute:
		return a.dispute(e.tx)
	case EventResolve:
		return a.resolve(e.tx)
	case EventChargeback:
		return a.chargeback(e.tx)
	default:
		return validationError(e.client, e.tx, "unhandled event kind %v", e.kind)
	}
}

// deposit credits available and inserts a fresh, undisputed ledger
// entry. Reusing a tx id overwrites the previous entry: the engine
// does not dedupe tx ids, by design (last-write-wins).
func (a *AccountState) deposit(tx TxId, amt money.Money) *Error {
	sum, err := a.Available.Add(amt)
	if err != nil {
		return validationError(a.Client, tx, "deposit overflow: %v", err)
	}
	a.Available = sum
	a.ledger[tx] = &depositEntry{amount: amt}
	return nil
}

// withdraw debits available. Withdrawals never enter the deposit
// ledger, so they can never themselves be disputed.
func (a *AccountState) withdraw(tx TxId, amt money.Money) *Error {
	if a.Available.Cmp(amt) < 0 {
		return validationError(a.Client, tx, "insufficient available funds for withdrawal")
	}
	diff, err := a.Available.Sub(amt)
	if err != nil {
		return validationError(a.Client, tx, "withdrawal overflow: %v", err)
	}
	a.Available = diff
	return nil
}

// dispute moves a deposit's amount from available to held, marking it
// contested. The ledger is strictly per-account, so a tx id belonging
// to a different client is indistinguishable from an unknown tx id and
// is reported identically.
func (a *AccountState) dispute(tx TxId) *Error {
	entry, ok := a.ledger[tx]
	if !ok {
		return validationError(a.Client, tx, "tx not found for this client")
	}
	if entry.disputed {
		return validationError(a.Client, tx, "tx already disputed")
	}
	if a.Available.Cmp(entry.amount) < 0 {
		return validationError(a.Client, tx, "insufficient available funds for dispute")
	}

	avail, err := a.Available.Sub(entry.amount)
	if err != nil {
		return validationError(a.Client, tx, "dispute overflow: %v", err)
	}
	held, err := a.Held.Add(entry.amount)
	if err != nil {
		return validationError(a.Client, tx, "dispute overflow: %v", err)
	}

	a.Available = avail
	a.Held = held
	entry.disputed = true
	return nil
}

// resolve reverses a Dispute, restoring the amount to available. The
// entry remains in the ledger and may be disputed again later.
func (a *AccountState) resolve(tx TxId) *Error {
	entry, ok := a.ledger[tx]
	if !ok {
		return validationError(a.Client, tx, "tx not found for this client")
	}
	if !entry.disputed {
		return validationError(a.Client, tx, "tx is not disputed")
	}

	avail, err := a.Available.Add(entry.amount)
	if err != nil {
		return validationError(a.Client, tx, "resolve overflow: %v", err)
	}
	held, err := a.Held.Sub(entry.amount)
	if err != nil {
		return validationError(a.Client, tx, "resolve overflow: %v", err)
	}

	a.Available = avail
	a.Held = held
	entry.disputed = false
	return nil
}

// chargeback finalizes a Dispute: the held amount is removed, the
// ledger entry is deleted, and the account is permanently frozen. No
// field on a frozen account ever changes again.
func (a *AccountState) chargeback(tx TxId) *Error {
	entry, ok := a.ledger[tx]
	if !ok {
		return validationError(a.Client, tx, "tx not found for this client")
	}
	if !entry.disputed {
		return validationError(a.Client, tx, "tx is not disputed")
	}

	held, err := a.Held.Sub(entry.amount)
	if err != nil {
		return validationError(a.Client, tx, "chargeback overflow: %v", err)
	}

	a.Held = held
	delete(a.ledger, tx)
	a.Frozen = true
	return nil
}
