package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/LeJamon/txengine/internal/engine"
)

// WriteAccounts writes records as "client,available,held,total,locked"
// CSV to w, one row per record in the order given.
func WriteAccounts(w io.Writer, records []engine.AccountRecord) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"client", "available", "held", "total", "locked"}); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for _, rec := range records {
		row := []string{
			strconv.FormatUint(uint64(rec.Client), 10),
			rec.Available.String(),
			rec.Held.String(),
			rec.Total.String(),
			strconv.FormatBool(rec.Locked),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing CSV row for client %d: %w", rec.Client, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
