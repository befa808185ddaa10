package engine

// ClientId identifies an account. It is the partitioning key for the
// parallel orchestrator's shard routing.
type ClientId uint16

// TxId identifies a transaction within the deposit ledger. Ids are
// assumed unique within a client's stream but the engine never enforces
// global uniqueness across clients, nor does it deduplicate reused ids
// within one client beyond the last-write-wins ledger semantics.
type TxId uint32

// EventKind distinguishes the five transaction event types the engine
// understands.
type EventKind uint8

const (
	// EventDeposit credits funds to an account's available balance.
	EventDeposit EventKind = iota
	// EventWithdrawal debits funds from an account's available balance.
	EventWithdrawal
	// EventDispute flags a prior deposit as contested, moving its
	// amount from available to held.
	EventDispute
	// EventResolve reverses a Dispute, moving the amount back to
	// available.
	EventResolve
	// EventChargeback finalizes a Dispute, removing the held amount
	// and freezing the account.
	EventChargeback
)

// String renders the lowercase CSV keyword for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventDeposit:
		return "deposit"
	case EventWithdrawal:
		return "withdrawal"
	case EventDispute:
		return "dispute"
	case EventResolve:
		return "resolve"
	case EventChargeback:
		return "chargeback"
	default:
		return "unknown"
	}
}

// ParseEventKind maps a CSV keyword onto an EventKind. ok is false for
// any string other than the five recognized keywords.
func ParseEventKind(s string) (kind EventKind, ok bool) {
	switch s {
	case "deposit":
		return EventDeposit, true
	case "withdrawal":
		return EventWithdrawal, true
	case "dispute":
		return EventDispute, true
	case "resolve":
		return EventResolve, true
	case "chargeback":
		return EventChargeback, true
	default:
		return 0, false
	}
}
