package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meditrack-io/inventory-alert-gateway/pkg/models"
)

func TestAcknowledgeThenResolve(t *testing.T) {
	s := newSeededStore(t, []*models.Alert{makeAlert("a1")})

	require.NoError(t, s.Acknowledge("a1", "userA"))
	a, err := s.Alert("a1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusAcknowledged, a.Status)
	assert.Equal(t, "userA", a.AcknowledgedBy)
	require.NotNil(t, a.AcknowledgedAt)
	assert.Equal(t, testTime, *a.AcknowledgedAt)

	require.NoError(t, s.Resolve("a1", "userA", "fixed"))
	a, err = s.Alert("a1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusResolved, a.Status)
	assert.Equal(t, "userA", a.ResolvedBy)
	require.NotNil(t, a.ResolvedAt)
	assert.Contains(t, a.Description, "fixed")
}

func TestReacknowledgeOverwritesActor(t *testing.T) {
	s := newSeededStore(t, []*models.Alert{makeAlert("a1")})

	require.NoError(t, s.Acknowledge("a1", "userA"))
	require.NoError(t, s.Acknowledge("a1", "userB"))

	a, err := s.Alert("a1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusAcknowledged, a.Status)
	assert.Equal(t, "userB", a.AcknowledgedBy)
}

func TestResolveNoteAppendsToDescription(t *testing.T) {
	s := newSeededStore(t, []*models.Alert{
		makeAlert("a1", func(a *models.Alert) { a.Description = "original context" }),
	})

	require.NoError(t, s.Resolve("a1", "userA", "restocked from supplier"))
	a, err := s.Alert("a1")
	require.NoError(t, err)
	assert.Contains(t, a.Description, "original context")
	assert.Contains(t, a.Description, "restocked from supplier")
}

func TestTerminalStatesAreOneWay(t *testing.T) {
	s := newSeededStore(t, []*models.Alert{makeAlert("a1"), makeAlert("a2")})

	require.NoError(t, s.Resolve("a1", "userA", ""))
	assert.ErrorIs(t, s.Acknowledge("a1", "userB"), ErrTerminalState)
	assert.ErrorIs(t, s.Dismiss("a1", ""), ErrTerminalState)
	assert.ErrorIs(t, s.Assign("a1", "u1", "User One"), ErrTerminalState)

	require.NoError(t, s.Dismiss("a2", "duplicate"))
	assert.ErrorIs(t, s.Resolve("a2", "userB", ""), ErrTerminalState)

	// Status never reverts to active on its own.
	a1, err := s.Alert("a1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusResolved, a1.Status)
	a2, err := s.Alert("a2")
	require.NoError(t, err)
	assert.Equal(t, models.StatusDismissed, a2.Status)
}

func TestActionLogStaysOpenAfterTerminal(t *testing.T) {
	s := newSeededStore(t, []*models.Alert{makeAlert("a1")})
	require.NoError(t, s.Resolve("a1", "userA", ""))

	require.NoError(t, s.AddAction("a1", models.AlertAction{
		Type:        "audit",
		Description: "verified restock invoice",
		PerformedBy: "auditor.lima",
	}))

	a, err := s.Alert("a1")
	require.NoError(t, err)
	require.Len(t, a.Actions, 1)
	assert.NotEmpty(t, a.Actions[0].ID)
	assert.Equal(t, testTime, a.Actions[0].PerformedAt)
	assert.Equal(t, models.StatusResolved, a.Status)
}

func TestSnoozeAndLazyExpiry(t *testing.T) {
	s := newSeededStore(t, []*models.Alert{makeAlert("a1")})

	require.NoError(t, s.Snooze("a1", 30))
	a, err := s.Alert("a1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusSnoozed, a.Status)
	require.NotNil(t, a.SnoozedUntil)
	assert.Equal(t, testTime.Add(30*time.Minute), *a.SnoozedUntil)

	// Advance the clock past the snooze deadline: any read reverts the
	// alert to active.
	s.now = func() time.Time { return testTime.Add(31 * time.Minute) }
	a, err = s.Alert("a1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, a.Status)
}

func TestSnoozeRequiresActiveStatus(t *testing.T) {
	s := newSeededStore(t, []*models.Alert{makeAlert("a1")})
	require.NoError(t, s.Acknowledge("a1", "userA"))
	assert.Error(t, s.Snooze("a1", 30))
	assert.Error(t, s.Snooze("a1", 0), "non-positive duration is rejected")
}

func TestAssignDoesNotChangeStatus(t *testing.T) {
	s := newSeededStore(t, []*models.Alert{makeAlert("a1")})
	require.NoError(t, s.Assign("a1", "u42", "Ana Souza"))

	a, err := s.Alert("a1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, a.Status)
	assert.Equal(t, "u42", a.AssignedTo)
	assert.Equal(t, "Ana Souza", a.AssignedToName)
}

func TestBulkDismissIsBestEffortPerID(t *testing.T) {
	s := newSeededStore(t, []*models.Alert{makeAlert("1"), makeAlert("2"), makeAlert("3")})

	result := s.BulkDismiss([]string{"1", "3"}, "duplicate")
	assert.ElementsMatch(t, []string{"1", "3"}, result.Succeeded)
	assert.Empty(t, result.Failed)

	for _, id := range []string{"1", "3"} {
		a, err := s.Alert(id)
		require.NoError(t, err)
		assert.Equal(t, models.StatusDismissed, a.Status)
		assert.Contains(t, a.Description, "duplicate")
	}
	a, err := s.Alert("2")
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, a.Status, "alert 2 must be untouched")
}

func TestBulkReportsPerIDFailures(t *testing.T) {
	s := newSeededStore(t, []*models.Alert{makeAlert("1"), makeAlert("2")})
	require.NoError(t, s.Resolve("2", "userA", ""))

	result := s.BulkAcknowledge([]string{"1", "2", "missing"}, "userA")
	assert.Equal(t, []string{"1"}, result.Succeeded)
	require.Len(t, result.Failed, 2)
	failedIDs := []string{result.Failed[0].ID, result.Failed[1].ID}
	assert.ElementsMatch(t, []string{"2", "missing"}, failedIDs)
}

func TestMutationIsCopyOnWrite(t *testing.T) {
	s := newSeededStore(t, []*models.Alert{makeAlert("a1")})

	before, err := s.Alert("a1")
	require.NoError(t, err)
	require.NoError(t, s.Acknowledge("a1", "userA"))

	// The record read before the mutation is a different instance and
	// still shows the old state.
	assert.Equal(t, models.StatusActive, before.Status)
	after, err := s.Alert("a1")
	require.NoError(t, err)
	assert.NotSame(t, before, after)
}
