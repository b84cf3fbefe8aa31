package store

import (
	"github.com/meditrack-io/inventory-alert-gateway/pkg/models"
)

// Stats recomputes the derived-statistics view from the full,
// unfiltered alert list. Nothing is cached; callers that need the
// numbers repeatedly should hold on to the returned value.
func (s *AlertStore) Stats() models.AlertStats {
	s.ExpireSnoozes()
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	stats := models.AlertStats{
		TotalAlerts: len(s.alerts),
		BySeverity:  make(map[models.Severity]int),
		ByType:      make(map[models.AlertType]int),
		ByItemKind:  make(map[models.ItemKind]int),
	}

	var (
		resolutionHours float64
		ackMinutes      float64
		respondedCount  int
		resolvedCount   int
		weekAgo         = now.AddDate(0, 0, -7)
		monthAgo        = now.AddDate(0, -1, 0)
	)

	for _, a := range s.alerts {
		switch a.Status {
		case models.StatusActive:
			stats.ActiveAlerts++
		case models.StatusAcknowledged:
			stats.AcknowledgedAlerts++
		case models.StatusResolved:
			stats.ResolvedAlerts++
		case models.StatusDismissed:
			stats.DismissedAlerts++
		case models.StatusSnoozed:
			stats.SnoozedAlerts++
		}

		stats.BySeverity[a.Severity]++
		stats.ByType[a.Type]++
		if a.ItemKind != "" {
			stats.ByItemKind[a.ItemKind]++
		}

		inToday := sameDay(a.CreatedAt, now)
		inWeek := !a.CreatedAt.Before(weekAgo)
		inMonth := !a.CreatedAt.Before(monthAgo)
		if inToday {
			stats.Today++
			stats.Trends.Today.Raised++
		}
		if inWeek {
			stats.ThisWeek++
			stats.Trends.ThisWeek.Raised++
		}
		if inMonth {
			stats.ThisMonth++
			stats.Trends.ThisMonth.Raised++
		}
		if a.ExpiresAt != nil && a.ExpiresAt.Before(now) {
			stats.Overdue++
		}

		if a.ResolvedAt != nil {
			resolvedCount++
			resolutionHours += a.ResolvedAt.Sub(a.CreatedAt).Hours()
			if sameDay(*a.ResolvedAt, now) {
				stats.Trends.Today.Resolved++
			}
			if !a.ResolvedAt.Before(weekAgo) {
				stats.Trends.ThisWeek.Resolved++
			}
			if !a.ResolvedAt.Before(monthAgo) {
				stats.Trends.ThisMonth.Resolved++
			}
		}
		if a.AcknowledgedAt != nil {
			respondedCount++
			ackMinutes += a.AcknowledgedAt.Sub(a.CreatedAt).Minutes()
		}

		stats.TotalCostImpact += a.Metadata.CostImpact
	}

	if resolvedCount > 0 {
		stats.AvgResolutionHours = resolutionHours / float64(resolvedCount)
	}
	if respondedCount > 0 {
		stats.AvgAcknowledgeMinutes = ackMinutes / float64(respondedCount)
	}
	if stats.TotalAlerts > 0 {
		stats.AvgCostImpact = stats.TotalCostImpact / float64(stats.TotalAlerts)
		stats.ResponseRate = float64(respondedCount) / float64(stats.TotalAlerts) * 100
		stats.ResolutionRate = float64(resolvedCount) / float64(stats.TotalAlerts) * 100
	}

	return stats
}
