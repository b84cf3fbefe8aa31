package store

import (
	"sort"
	"strings"
	"time"

	"github.com/meditrack-io/inventory-alert-gateway/pkg/models"
)

// Severity and urgency sort by rank rather than lexicographically, so a
// descending severity sort puts critical first.
var severityRank = map[models.Severity]int{
	models.SeverityLow:      0,
	models.SeverityMedium:   1,
	models.SeverityHigh:     2,
	models.SeverityCritical: 3,
}

var urgencyRank = map[models.Urgency]int{
	models.UrgencyWhenPossible: 0,
	models.UrgencyWithinWeek:   1,
	models.UrgencyWithinDay:    2,
	models.UrgencyWithinHour:   3,
	models.UrgencyImmediate:    4,
}

// sortAlerts orders the slice in place using a stable sort, so tied
// elements keep their prior relative order.
func sortAlerts(alerts []*models.Alert, field string, dir models.SortDirection) {
	sort.SliceStable(alerts, func(i, j int) bool {
		c := compareAlerts(alerts[i], alerts[j], field)
		if dir == models.SortDesc {
			return c > 0
		}
		return c < 0
	})
}

// compareAlerts returns -1, 0, or 1 for the given sort field. String
// fields compare case-insensitively, date fields by instant.
func compareAlerts(a, b *models.Alert, field string) int {
	switch field {
	case models.SortByID:
		return compareStrings(a.ID, b.ID)
	case models.SortByType:
		return compareStrings(string(a.Type), string(b.Type))
	case models.SortBySeverity:
		return compareInts(severityRank[a.Severity], severityRank[b.Severity])
	case models.SortByStatus:
		return compareStrings(string(a.Status), string(b.Status))
	case models.SortByItemName:
		return compareStrings(a.ItemName, b.ItemName)
	case models.SortByItemCode:
		return compareStrings(a.ItemCode, b.ItemCode)
	case models.SortByCategory:
		return compareStrings(a.ItemCategory, b.ItemCategory)
	case models.SortByDepartment:
		return compareStrings(a.Department, b.Department)
	case models.SortByLocation:
		return compareStrings(a.Location, b.Location)
	case models.SortByTitle:
		return compareStrings(a.Title, b.Title)
	case models.SortByPriority:
		return compareInts(a.Priority, b.Priority)
	case models.SortByUrgency:
		return compareInts(urgencyRank[a.Urgency], urgencyRank[b.Urgency])
	case models.SortByTriggeredAt:
		return compareTimes(a.TriggeredAt, b.TriggeredAt)
	case models.SortByAcknowledgedAt:
		return compareTimePtrs(a.AcknowledgedAt, b.AcknowledgedAt)
	case models.SortByResolvedAt:
		return compareTimePtrs(a.ResolvedAt, b.ResolvedAt)
	case models.SortByExpiresAt:
		return compareTimePtrs(a.ExpiresAt, b.ExpiresAt)
	case models.SortByCurrentValue:
		return compareFloatPtrs(a.CurrentValue, b.CurrentValue)
	case models.SortByCostImpact:
		return compareFloats(a.Metadata.CostImpact, b.Metadata.CostImpact)
	default:
		return compareTimes(a.CreatedAt, b.CreatedAt)
	}
}

func compareStrings(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareFloats(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareTimes(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}

// Nil timestamps sort before any set timestamp.
func compareTimePtrs(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	default:
		return compareTimes(*a, *b)
	}
}

func compareFloatPtrs(a, b *float64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	default:
		return compareFloats(*a, *b)
	}
}
