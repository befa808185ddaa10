package csvio

import (
	"strings"
	"testing"

	"github.com/LeJamon/txengine/internal/engine"
	"github.com/LeJamon/txengine/internal/money"
)

func mustMoney(t *testing.T, s string) money.Money {
	t.Helper()
	m, err := money.Parse(s)
	if err != nil {
		t.Fatalf("money.Parse(%q): %v", s, err)
	}
	return m
}

func TestWriteAccounts(t *testing.T) {
	records := []engine.AccountRecord{
		{Client: 1, Available: mustMoney(t, "1.5"), Held: mustMoney(t, "0"), Total: mustMoney(t, "1.5"), Locked: false},
		{Client: 2, Available: mustMoney(t, "0"), Held: mustMoney(t, "3.25"), Total: mustMoney(t, "3.25"), Locked: true},
	}

	var sb strings.Builder
	if err := WriteAccounts(&sb, records); err != nil {
		t.Fatalf("WriteAccounts: %v", err)
	}

	want := "client,available,held,total,locked\n1,1.5,0,1.5,false\n2,0,3.25,3.25,true\n"
	if sb.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", sb.String(), want)
	}
}
