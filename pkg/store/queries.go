package store

import (
	"strings"

	"github.com/meditrack-io/inventory-alert-gateway/pkg/models"
)

// Convenience read-only views over the full alert list. Each is a plain
// predicate filter with no side effects on the store's view state.

// AlertsByType returns all alerts of the given type.
func (s *AlertStore) AlertsByType(t models.AlertType) []*models.Alert {
	return s.selectAlerts(func(a *models.Alert) bool { return a.Type == t })
}

// AlertsBySeverity returns all alerts of the given severity.
func (s *AlertStore) AlertsBySeverity(sev models.Severity) []*models.Alert {
	return s.selectAlerts(func(a *models.Alert) bool { return a.Severity == sev })
}

// AlertsByDepartment returns all alerts for the given department,
// compared case-insensitively.
func (s *AlertStore) AlertsByDepartment(department string) []*models.Alert {
	return s.selectAlerts(func(a *models.Alert) bool {
		return strings.EqualFold(a.Department, department)
	})
}

// AlertsByItem returns all alerts referencing the given inventory item.
func (s *AlertStore) AlertsByItem(itemID string) []*models.Alert {
	return s.selectAlerts(func(a *models.Alert) bool { return a.ItemID == itemID })
}

// ActiveAlerts returns all alerts currently in the active state.
func (s *AlertStore) ActiveAlerts() []*models.Alert {
	return s.selectAlerts(func(a *models.Alert) bool { return a.Status == models.StatusActive })
}

// CriticalAlerts returns all alerts with critical severity.
func (s *AlertStore) CriticalAlerts() []*models.Alert {
	return s.selectAlerts(func(a *models.Alert) bool { return a.Severity == models.SeverityCritical })
}

// UnacknowledgedAlerts returns all alerts never acknowledged.
func (s *AlertStore) UnacknowledgedAlerts() []*models.Alert {
	return s.selectAlerts(func(a *models.Alert) bool { return a.AcknowledgedAt == nil })
}

// OverdueAlerts returns all alerts whose expiry deadline has passed.
func (s *AlertStore) OverdueAlerts() []*models.Alert {
	now := s.now()
	return s.selectAlerts(func(a *models.Alert) bool {
		return a.ExpiresAt != nil && a.ExpiresAt.Before(now)
	})
}

func (s *AlertStore) selectAlerts(pred func(*models.Alert) bool) []*models.Alert {
	s.ExpireSnoozes()
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Alert, 0)
	for _, a := range s.alerts {
		if pred(a) {
			out = append(out, a)
		}
	}
	return out
}
