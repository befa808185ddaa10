package engine

import "github.com/LeJamon/txengine/internal/money"

// RawRecord is the unvalidated shape of a single input row, exactly as
// the CSV adapter (or any other source) produces it. Amount is present
// only for Deposit/Withdrawal kinds.
type RawRecord struct {
	Kind      string // raw keyword, validated by ParseEventKind
	Client    ClientId
	Tx        TxId
	Amount    string // raw decimal literal; read only when HasAmount is set
	HasAmount bool   // whether an amount was supplied
}

// event is the normalized, validated internal representation consumed
// by the state machine. It is never exposed outside the engine
// package; TransactionRecord is the public projection delivered to
// OnSuccess.
type event struct {
	kind   EventKind
	client ClientId
	tx     TxId
	amount money.Money // zero value when the kind carries no amount
}

// validate converts a RawRecord into a normalized event, or reports a
// validation error. It runs entirely before the state machine is
// consulted: unknown kinds, missing amounts, non-positive amounts, and
// over-precise amounts are all rejected here. An amount supplied with a
// Dispute/Resolve/Chargeback is ignored.
func validate(r RawRecord) (event, *Error) {
	kind, ok := ParseEventKind(r.Kind)
	if !ok {
		return event{}, validationError(r.Client, r.Tx, "unknown transaction type %q", r.Kind)
	}

	switch kind {
	case EventDeposit, EventWithdrawal:
		if !r.HasAmount {
			return event{}, validationError(r.Client, r.Tx, "%s requires an amount", kind)
		}
		amt, err := money.Parse(r.Amount)
		if err != nil {
			return event{}, validationError(r.Client, r.Tx, "invalid amount %q: %v", r.Amount, err)
		}
		if !amt.IsPositive() {
			return event{}, validationError(r.Client, r.Tx, "%s amount must be positive, got %s", kind, amt)
		}
		return event{kind: kind, client: r.Client, tx: r.Tx, amount: amt}, nil

	default:
		// Dispute/Resolve/Chargeback: an amount, if present, is
		// ignored rather than rejected.
		return event{kind: kind, client: r.Client, tx: r.Tx}, nil
	}
}

// TransactionRecord is a value-copyable projection of a successfully
// applied event, delivered to OnSuccess.
type TransactionRecord struct {
	Kind   EventKind
	Client ClientId
	Tx     TxId

	// Amount is the deposit/withdrawal amount; zero (and meaningless)
	// for Dispute/Resolve/Chargeback.
	Amount money.Money
}

func (e event) record() TransactionRecord {
	return TransactionRecord{Kind: e.kind, Client: e.client, Tx: e.tx, Amount: e.amount}
}
