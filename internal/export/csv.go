package export

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV writes a table as RFC 4180 CSV with a header row.
func WriteCSV(w io.Writer, table Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(table.Headers); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for i, row := range table.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing csv row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return nil
}
