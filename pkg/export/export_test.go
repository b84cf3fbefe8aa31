package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/meditrack-io/inventory-alert-gateway/pkg/models"
)

func sampleRows() []models.ExportRow {
	return []models.ExportRow{
		{
			ID:         "alert-1",
			Type:       "low_stock",
			Severity:   "critical",
			Status:     "active",
			Priority:   9,
			Urgency:    "immediate",
			Title:      "Stock below minimum",
			ItemName:   "Dipirona 500mg",
			ItemCode:   "MED-0451",
			Department: "Pharmacy",
			CreatedAt:  "2025-06-15T12:00:00Z",
			CostImpact: "1234.50",
			Tags:       "urgent;pharmacy",
		},
		{
			ID:       "alert-2",
			Type:     "expiring",
			Severity: "medium",
			Status:   "acknowledged",
			Priority: 5,
			ItemName: "Soro Fisiologico, 0.9%",
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleRows()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3, "header plus one record per row")

	assert.Equal(t, Header, records[0])
	assert.Equal(t, "alert-1", records[1][0])
	assert.Equal(t, "Dipirona 500mg", records[1][11])
	// Commas inside cell values survive the round trip.
	assert.Equal(t, "Soro Fisiologico, 0.9%", records[2][11])
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1, "header only")
}

func TestWriteExcel(t *testing.T) {
	data, err := WriteExcel(sampleRows())
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Alerts"}, f.GetSheetList())

	rows, err := f.GetRows("Alerts")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Header, rows[0][:len(Header)])
	assert.Equal(t, "alert-1", rows[1][0])
	assert.Equal(t, "9", rows[1][4])
	assert.Equal(t, "alert-2", rows[2][0])
}
