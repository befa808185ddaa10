package engine

import "testing"

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		rec     RawRecord
		wantErr bool
	}{
		{name: "valid deposit", rec: RawRecord{Kind: "deposit", Client: 1, Tx: 1, Amount: "1.0", HasAmount: true}},
		{name: "valid withdrawal", rec: RawRecord{Kind: "withdrawal", Client: 1, Tx: 1, Amount: "1.0", HasAmount: true}},
		{name: "valid dispute no amount", rec: RawRecord{Kind: "dispute", Client: 1, Tx: 1}},
		{name: "dispute amount ignored", rec: RawRecord{Kind: "dispute", Client: 1, Tx: 1, Amount: "5", HasAmount: true}},
		{name: "unknown kind", rec: RawRecord{Kind: "teleport", Client: 1, Tx: 1}, wantErr: true},
		{name: "deposit missing amount", rec: RawRecord{Kind: "deposit", Client: 1, Tx: 1}, wantErr: true},
		{name: "deposit zero amount", rec: RawRecord{Kind: "deposit", Client: 1, Tx: 1, Amount: "0", HasAmount: true}, wantErr: true},
		{name: "deposit negative amount", rec: RawRecord{Kind: "deposit", Client: 1, Tx: 1, Amount: "-1", HasAmount: true}, wantErr: true},
		{name: "deposit too many fractional digits", rec: RawRecord{Kind: "deposit", Client: 1, Tx: 1, Amount: "1.23456", HasAmount: true}, wantErr: true},
		{name: "withdrawal missing amount", rec: RawRecord{Kind: "withdrawal", Client: 1, Tx: 1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := validate(tt.rec)
			if tt.wantErr && err == nil {
				t.Fatalf("validate(%+v) = nil, want error", tt.rec)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("validate(%+v) = %v, want nil", tt.rec, err)
			}
		})
	}
}

func TestParseEventKind(t *testing.T) {
	for _, kw := range []string{"deposit", "withdrawal", "dispute", "resolve", "chargeback"} {
		kind, ok := ParseEventKind(kw)
		if !ok {
			t.Errorf("ParseEventKind(%q) not ok", kw)
		}
		if kind.String() != kw {
			t.Errorf("kind.String() = %q, want %q", kind.String(), kw)
		}
	}
	if _, ok := ParseEventKind("bogus"); ok {
		t.Error("ParseEventKind(bogus) should not be ok")
	}
}
