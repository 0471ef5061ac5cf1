// Package export renders the full ledger as a flat CSV table for external
// consumption: a header with the canonical field names, then one record per
// row in insertion order.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"ventas/internal/core"
	"ventas/internal/sales"
)

// WriteCSV dumps the records to w.
func WriteCSV(w io.Writer, records []core.SaleRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(sales.Fields()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, rec := range records {
		if err := cw.Write(sales.ToRow(rec).Strings()); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
