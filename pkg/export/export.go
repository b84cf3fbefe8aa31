// Package export renders the store's flattened alert rows as CSV or
// Excel files for download.
package export

import (
	"strconv"

	"github.com/meditrack-io/inventory-alert-gateway/pkg/models"
)

// Format identifies an export file format.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatExcel Format = "xlsx"
)

// Header is the fixed column set of an alert export, in order.
var Header = []string{
	"ID",
	"Type",
	"Severity",
	"Status",
	"Priority",
	"Urgency",
	"Title",
	"Message",
	"Description",
	"Item ID",
	"Item Code",
	"Item Name",
	"Item Category",
	"Item Kind",
	"Department",
	"Location",
	"Created At",
	"Triggered At",
	"Acknowledged At",
	"Resolved At",
	"Acknowledged By",
	"Resolved By",
	"Assigned To",
	"Current Value",
	"Threshold Value",
	"Cost Impact",
	"Tags",
}

// rowValues returns the row's cells in Header order.
func rowValues(r models.ExportRow) []string {
	return []string{
		r.ID,
		r.Type,
		r.Severity,
		r.Status,
		strconv.Itoa(r.Priority),
		r.Urgency,
		r.Title,
		r.Message,
		r.Description,
		r.ItemID,
		r.ItemCode,
		r.ItemName,
		r.ItemCategory,
		r.ItemKind,
		r.Department,
		r.Location,
		r.CreatedAt,
		r.TriggeredAt,
		r.AcknowledgedAt,
		r.ResolvedAt,
		r.AcknowledgedBy,
		r.ResolvedBy,
		r.AssignedToName,
		r.CurrentValue,
		r.ThresholdValue,
		r.CostImpact,
		r.Tags,
	}
}
