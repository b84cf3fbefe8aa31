package store

import (
	"strings"
	"time"

	"github.com/meditrack-io/inventory-alert-gateway/pkg/models"
)

// anyValue is accepted alongside "" as "no constraint" for the
// exact-match criteria, mirroring the dashboard's "all" dropdown option.
const anyValue = "all"

func wantsAny(v string) bool {
	return v == "" || strings.EqualFold(v, anyValue)
}

// matches reports whether the alert satisfies every criterion in f.
// Criteria are ANDed and evaluated short-circuit.
func matches(a *models.Alert, f models.AlertFilters, now time.Time) bool {
	if f.Search != "" && !matchesSearch(a, f.Search) {
		return false
	}

	if !wantsAny(string(f.Type)) && a.Type != f.Type {
		return false
	}
	if !wantsAny(string(f.Severity)) && a.Severity != f.Severity {
		return false
	}
	if !wantsAny(string(f.Status)) && a.Status != f.Status {
		return false
	}
	if !wantsAny(string(f.ItemKind)) && a.ItemKind != f.ItemKind {
		return false
	}
	if !wantsAny(f.Department) && !strings.EqualFold(a.Department, f.Department) {
		return false
	}
	if !wantsAny(f.Location) && !strings.EqualFold(a.Location, f.Location) {
		return false
	}
	if !wantsAny(f.AssignedTo) && a.AssignedTo != f.AssignedTo {
		return false
	}
	if !wantsAny(f.Category) && !strings.EqualFold(a.ItemCategory, f.Category) {
		return false
	}

	if f.CreatedFrom != nil && a.CreatedAt.Before(*f.CreatedFrom) {
		return false
	}
	if f.CreatedTo != nil && a.CreatedAt.After(*f.CreatedTo) {
		return false
	}
	if f.TriggeredFrom != nil && a.TriggeredAt.Before(*f.TriggeredFrom) {
		return false
	}
	if f.TriggeredTo != nil && a.TriggeredAt.After(*f.TriggeredTo) {
		return false
	}

	if f.PriorityMin != nil && a.Priority < *f.PriorityMin {
		return false
	}
	if f.PriorityMax != nil && a.Priority > *f.PriorityMax {
		return false
	}

	if f.ActiveOnly && a.Status != models.StatusActive {
		return false
	}
	if f.Unacknowledged && a.AcknowledgedAt != nil {
		return false
	}
	if f.Unresolved && a.ResolvedAt != nil {
		return false
	}
	if f.CriticalOnly && a.Severity != models.SeverityCritical {
		return false
	}
	if f.HighPriority && a.Priority < 7 {
		return false
	}
	if f.ExpiringSoon && a.Type != models.AlertTypeExpiring {
		return false
	}

	if f.Today && !sameDay(a.CreatedAt, now) {
		return false
	}
	if f.ThisWeek && a.CreatedAt.Before(now.AddDate(0, 0, -7)) {
		return false
	}
	if f.ThisMonth && a.CreatedAt.Before(now.AddDate(0, -1, 0)) {
		return false
	}

	if f.Overdue && (a.ExpiresAt == nil || !a.ExpiresAt.Before(now)) {
		return false
	}

	for _, tag := range f.IncludeTags {
		if !a.HasTag(tag) {
			return false
		}
	}
	for _, tag := range f.ExcludeTags {
		if a.HasTag(tag) {
			return false
		}
	}

	return true
}

// matchesSearch runs the case-insensitive substring search. The match
// succeeds if any searchable field contains the query.
func matchesSearch(a *models.Alert, query string) bool {
	q := strings.ToLower(query)
	fields := []string{
		a.Title,
		a.Message,
		a.ItemName,
		a.ItemCode,
		a.Department,
		a.Location,
		a.Description,
	}
	for _, field := range fields {
		if field != "" && strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	for _, tag := range a.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func sameDay(t, ref time.Time) bool {
	y1, m1, d1 := t.Date()
	y2, m2, d2 := ref.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
