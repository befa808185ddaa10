package engine

import "github.com/LeJamon/txengine/internal/money"

// AccountRecord is the final output projection of a touched account:
// {client, available, held, total, locked}. Total is computed here,
// never stored on AccountState.
type AccountRecord struct {
	Client    ClientId
	Available money.Money
	Held      money.Money
	Total     money.Money
	Locked    bool
}

// snapshot projects an AccountState into its output record. Returns an
// error only on the (practically unreachable, since both operands are
// already bounded by prior successful operations) overflow of
// available+held.
func (a *AccountState) snapshot() (AccountRecord, error) {
	total, err := a.Total()
	if err != nil {
		return AccountRecord{}, err
	}
	return AccountRecord{
		Client:    a.Client,
		Available: a.Available,
		Held:      a.Held,
		Total:     total,
		Locked:    a.Frozen,
	}, nil
}
