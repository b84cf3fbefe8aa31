package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/meditrack-io/inventory-alert-gateway/pkg/models"
)

// WriteCSV writes the header row followed by one record per alert row.
func WriteCSV(w io.Writer, rows []models.ExportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(rowValues(row)); err != nil {
			return fmt.Errorf("failed to write CSV row %s: %w", row.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
