package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meditrack-io/inventory-alert-gateway/pkg/models"
)

func TestStatsStatusCountsSumToTotal(t *testing.T) {
	ackAt := testTime.Add(-2 * time.Hour)
	resAt := testTime.Add(-1 * time.Hour)
	snoozeUntil := testTime.Add(4 * time.Hour)
	alerts := []*models.Alert{
		makeAlert("active"),
		makeAlert("acked", func(a *models.Alert) {
			a.Status = models.StatusAcknowledged
			a.AcknowledgedAt = &ackAt
		}),
		makeAlert("resolved", func(a *models.Alert) {
			a.Status = models.StatusResolved
			a.AcknowledgedAt = &ackAt
			a.ResolvedAt = &resAt
		}),
		makeAlert("dismissed", func(a *models.Alert) {
			a.Status = models.StatusDismissed
			a.DismissedAt = &resAt
		}),
		makeAlert("snoozed", func(a *models.Alert) {
			a.Status = models.StatusSnoozed
			a.SnoozedUntil = &snoozeUntil
		}),
	}
	s := newSeededStore(t, alerts)

	stats := s.Stats()
	sum := stats.ActiveAlerts + stats.AcknowledgedAlerts + stats.ResolvedAlerts +
		stats.DismissedAlerts + stats.SnoozedAlerts
	assert.Equal(t, stats.TotalAlerts, sum)
	assert.Equal(t, 5, stats.TotalAlerts)
	assert.Equal(t, 1, stats.SnoozedAlerts)
}

func TestStatsEmptyListHasZeroRates(t *testing.T) {
	s := newSeededStore(t, nil)
	stats := s.Stats()

	assert.Zero(t, stats.TotalAlerts)
	assert.Zero(t, stats.ResponseRate)
	assert.Zero(t, stats.ResolutionRate)
	assert.Zero(t, stats.AvgResolutionHours)
	assert.Zero(t, stats.AvgAcknowledgeMinutes)
	assert.Zero(t, stats.AvgCostImpact)
}

func TestStatsRatesStayInBounds(t *testing.T) {
	ackAt := testTime.Add(-1 * time.Hour)
	alerts := []*models.Alert{
		makeAlert("a1", func(a *models.Alert) { a.AcknowledgedAt = &ackAt }),
		makeAlert("a2"),
	}
	s := newSeededStore(t, alerts)
	stats := s.Stats()

	assert.GreaterOrEqual(t, stats.ResponseRate, 0.0)
	assert.LessOrEqual(t, stats.ResponseRate, 100.0)
	assert.InDelta(t, 50.0, stats.ResponseRate, 0.001)
	assert.Zero(t, stats.ResolutionRate)
}

func TestStatsMeanTimesExcludeUnqualified(t *testing.T) {
	// One alert resolved 4h after creation; the other has no
	// resolution and must not drag the mean down.
	created := testTime.Add(-24 * time.Hour)
	resAt := created.Add(4 * time.Hour)
	ackAt := created.Add(30 * time.Minute)
	alerts := []*models.Alert{
		makeAlert("resolved", func(a *models.Alert) {
			a.CreatedAt = created
			a.Status = models.StatusResolved
			a.AcknowledgedAt = &ackAt
			a.ResolvedAt = &resAt
		}),
		makeAlert("open", func(a *models.Alert) { a.CreatedAt = created }),
	}
	s := newSeededStore(t, alerts)

	stats := s.Stats()
	assert.InDelta(t, 4.0, stats.AvgResolutionHours, 0.001)
	assert.InDelta(t, 30.0, stats.AvgAcknowledgeMinutes, 0.001)
}

func TestStatsCostImpact(t *testing.T) {
	alerts := []*models.Alert{
		makeAlert("a1", func(a *models.Alert) { a.Metadata.CostImpact = 120.5 }),
		makeAlert("a2", func(a *models.Alert) { a.Metadata.CostImpact = 79.5 }),
		makeAlert("a3"), // absent treated as 0
	}
	s := newSeededStore(t, alerts)

	stats := s.Stats()
	assert.InDelta(t, 200.0, stats.TotalCostImpact, 0.001)
	assert.InDelta(t, 200.0/3, stats.AvgCostImpact, 0.001)
}

func TestStatsTrendsCountRaisedAndResolved(t *testing.T) {
	todayRes := testTime.Add(-1 * time.Hour)
	alerts := []*models.Alert{
		makeAlert("raised-today", func(a *models.Alert) { a.CreatedAt = testTime.Add(-3 * time.Hour) }),
		makeAlert("resolved-today", func(a *models.Alert) {
			a.CreatedAt = testTime.AddDate(0, 0, -10)
			a.Status = models.StatusResolved
			a.ResolvedAt = &todayRes
		}),
	}
	s := newSeededStore(t, alerts)

	stats := s.Stats()
	assert.Equal(t, 1, stats.Trends.Today.Raised)
	assert.Equal(t, 1, stats.Trends.Today.Resolved)
	assert.Equal(t, 2, stats.Trends.ThisMonth.Raised)
	assert.Equal(t, 1, stats.Trends.ThisMonth.Resolved)
}

func TestStatsGroupCounts(t *testing.T) {
	alerts := []*models.Alert{
		makeAlert("a1", func(a *models.Alert) { a.Severity = models.SeverityCritical }),
		makeAlert("a2", func(a *models.Alert) { a.Severity = models.SeverityCritical }),
		makeAlert("a3", func(a *models.Alert) {
			a.Type = models.AlertTypeExpiring
			a.ItemKind = models.ItemKindSupply
		}),
	}
	s := newSeededStore(t, alerts)

	stats := s.Stats()
	require.NotNil(t, stats.BySeverity)
	assert.Equal(t, 2, stats.BySeverity[models.SeverityCritical])
	assert.Equal(t, 1, stats.ByType[models.AlertTypeExpiring])
	assert.Equal(t, 1, stats.ByItemKind[models.ItemKindSupply])
	assert.Equal(t, 2, stats.ByItemKind[models.ItemKindMedication])
}
