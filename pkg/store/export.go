package store

import (
	"strconv"
	"strings"
	"time"

	"github.com/meditrack-io/inventory-alert-gateway/pkg/models"
)

// ExportRows flattens the currently filtered and sorted view into one
// row per alert, ready for a CSV or Excel writer. Pagination does not
// apply; the export always covers the whole filtered view.
func (s *AlertStore) ExportRows() []models.ExportRow {
	filtered := s.Filtered()
	rows := make([]models.ExportRow, 0, len(filtered))
	for _, a := range filtered {
		rows = append(rows, exportRow(a))
	}
	return rows
}

func exportRow(a *models.Alert) models.ExportRow {
	return models.ExportRow{
		ID:       a.ID,
		Type:     string(a.Type),
		Severity: string(a.Severity),
		Status:   string(a.Status),
		Priority: a.Priority,
		Urgency:  string(a.Urgency),

		Title:       a.Title,
		Message:     a.Message,
		Description: a.Description,

		ItemID:       a.ItemID,
		ItemCode:     a.ItemCode,
		ItemName:     a.ItemName,
		ItemCategory: a.ItemCategory,
		ItemKind:     string(a.ItemKind),

		Department: a.Department,
		Location:   a.Location,

		CreatedAt:      a.CreatedAt.Format(time.RFC3339),
		TriggeredAt:    a.TriggeredAt.Format(time.RFC3339),
		AcknowledgedAt: formatTimePtr(a.AcknowledgedAt),
		ResolvedAt:     formatTimePtr(a.ResolvedAt),

		AcknowledgedBy: a.AcknowledgedBy,
		ResolvedBy:     a.ResolvedBy,
		AssignedToName: a.AssignedToName,

		CurrentValue:   formatFloatPtr(a.CurrentValue),
		ThresholdValue: formatFloatPtr(a.ThresholdValue),
		CostImpact:     strconv.FormatFloat(a.Metadata.CostImpact, 'f', 2, 64),

		Tags: strings.Join(a.Tags, ";"),
	}
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

func formatFloatPtr(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}
