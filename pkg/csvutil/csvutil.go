// Package csvutil renders tabular export data through encoding/csv so that
// embedded commas, quotes and newlines are escaped correctly.
package csvutil

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"
)

// Table is a header row plus data rows ready for export.
type Table struct {
	Header []string
	Rows   [][]string
}

// Render writes the table as UTF-8 CSV with double-quoted fields where needed.
func Render(t Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if len(t.Header) > 0 {
		if err := w.Write(t.Header); err != nil {
			return nil, fmt.Errorf("write csv header: %w", err)
		}
	}
	for i, row := range t.Rows {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Filename builds the export filename pattern "{entity}_{scope}_{ISODate}.{ext}".
func Filename(entity, scope, ext string, at time.Time) string {
	return fmt.Sprintf("%s_%s_%s.%s", entity, scope, at.Format("2006-01-02"), ext)
}
