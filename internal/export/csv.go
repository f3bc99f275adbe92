// Package export renders reports as CSV, LaTeX and PDF.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/alexanderramin/timereport/internal/domain"
)

// WriteCSV writes one record per row: name, date, week, start, and the end
// time joined with the remark. The layout matches the sheets the office
// imports, so the last column is not split.
func WriteCSV(w io.Writer, rows []*domain.Row) error {
	cw := csv.NewWriter(w)
	for _, r := range rows {
		rec := []string{
			r.Name,
			domain.FormatDate(r.Date),
			r.Week.String(),
			r.Start.String(),
			r.End.String() + " " + r.Remark,
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing csv record for item %d: %w", r.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return nil
}
