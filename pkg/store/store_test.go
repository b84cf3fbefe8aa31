package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/meditrack-io/inventory-alert-gateway/pkg/models"
	"github.com/meditrack-io/inventory-alert-gateway/pkg/source"
)

// MockSource is a mock implementation of the DataSource interface
type MockSource struct {
	mock.Mock
}

// Ensure MockSource implements DataSource
var _ source.DataSource = (*MockSource)(nil)

func (m *MockSource) FetchAlerts(ctx context.Context) ([]*models.Alert, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Alert), args.Error(1)
}

func (m *MockSource) FetchRules(ctx context.Context) ([]*models.AlertRule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.AlertRule), args.Error(1)
}

// staticSource serves a fixed set of records.
type staticSource struct {
	alerts []*models.Alert
	rules  []*models.AlertRule
}

func (s *staticSource) FetchAlerts(context.Context) ([]*models.Alert, error) {
	return s.alerts, nil
}

func (s *staticSource) FetchRules(context.Context) ([]*models.AlertRule, error) {
	return s.rules, nil
}

// blockingSource blocks FetchAlerts until released, to exercise the
// load-in-flight guard.
type blockingSource struct {
	release chan struct{}
}

func (s *blockingSource) FetchAlerts(context.Context) ([]*models.Alert, error) {
	<-s.release
	return []*models.Alert{}, nil
}

func (s *blockingSource) FetchRules(context.Context) ([]*models.AlertRule, error) {
	return []*models.AlertRule{}, nil
}

// testTime is the pinned "now" used across the store tests.
var testTime = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func makeAlert(id string, mutators ...func(*models.Alert)) *models.Alert {
	a := &models.Alert{
		ID:          id,
		Type:        models.AlertTypeLowStock,
		Severity:    models.SeverityMedium,
		Status:      models.StatusActive,
		ItemID:      "item-" + id,
		ItemCode:    "MED-" + id,
		ItemName:    "Item " + id,
		ItemKind:    models.ItemKindMedication,
		Title:       "Stock below minimum",
		Message:     "Stock below minimum for item " + id,
		Department:  "Pharmacy",
		Location:    "Central Pharmacy",
		CreatedAt:   testTime.Add(-24 * time.Hour),
		TriggeredAt: testTime.Add(-24 * time.Hour),
		Priority:    5,
		Urgency:     models.UrgencyWithinDay,
	}
	for _, m := range mutators {
		m(a)
	}
	return a
}

// newSeededStore loads the given alerts into a store with a pinned clock.
func newSeededStore(t *testing.T, alerts []*models.Alert, rules ...*models.AlertRule) *AlertStore {
	t.Helper()
	s := New(&staticSource{alerts: alerts, rules: rules})
	s.now = func() time.Time { return testTime }
	require.NoError(t, s.Load(context.Background()))
	return s
}

func TestLoadReplacesListsWholesale(t *testing.T) {
	s := newSeededStore(t, []*models.Alert{makeAlert("a1"), makeAlert("a2")})
	assert.Len(t, s.Alerts(), 2)

	s.src = &staticSource{alerts: []*models.Alert{makeAlert("b1")}}
	require.NoError(t, s.Load(context.Background()))
	alerts := s.Alerts()
	require.Len(t, alerts, 1)
	assert.Equal(t, "b1", alerts[0].ID)
}

func TestLoadFailureKeepsStaleData(t *testing.T) {
	mockSrc := new(MockSource)
	mockSrc.On("FetchAlerts", mock.Anything).Return([]*models.Alert{makeAlert("a1")}, nil).Once()
	mockSrc.On("FetchRules", mock.Anything).Return([]*models.AlertRule{}, nil).Once()
	mockSrc.On("FetchAlerts", mock.Anything).Return(nil, errors.New("upstream unreachable")).Once()

	s := New(mockSrc)
	require.NoError(t, s.Load(context.Background()))
	require.Len(t, s.Alerts(), 1)

	err := s.Load(context.Background())
	require.Error(t, err)

	// Stale data retained, sticky error set.
	assert.Len(t, s.Alerts(), 1)
	_, _, lastError := s.State()
	assert.Contains(t, lastError, "upstream unreachable")
	mockSrc.AssertExpectations(t)
}

func TestLoadRejectsConcurrentLoad(t *testing.T) {
	src := &blockingSource{release: make(chan struct{})}
	s := New(src)

	firstDone := make(chan error, 1)
	go func() { firstDone <- s.Load(context.Background()) }()

	// Wait for the first load to take the in-flight slot.
	require.Eventually(t, func() bool {
		loading, _, _ := s.State()
		return loading
	}, time.Second, 5*time.Millisecond)

	assert.ErrorIs(t, s.Load(context.Background()), ErrLoadInFlight)

	close(src.release)
	assert.NoError(t, <-firstDone)
}

func TestSubscribeNotifiesOnMutation(t *testing.T) {
	s := newSeededStore(t, []*models.Alert{makeAlert("a1")})

	notified := 0
	unsubscribe := s.Subscribe(func() { notified++ })

	require.NoError(t, s.Acknowledge("a1", "user-1"))
	assert.Equal(t, 1, notified)

	unsubscribe()
	require.NoError(t, s.Resolve("a1", "user-1", ""))
	assert.Equal(t, 1, notified, "unsubscribed callback must not fire")
}

func TestVersionBumpsOnEveryMutation(t *testing.T) {
	s := newSeededStore(t, []*models.Alert{makeAlert("a1")})
	v := s.Version()

	require.NoError(t, s.Acknowledge("a1", "user-1"))
	assert.Greater(t, s.Version(), v)
}

func TestAlertNotFound(t *testing.T) {
	s := newSeededStore(t, nil)
	_, err := s.Alert("missing")
	assert.ErrorIs(t, err, ErrAlertNotFound)
}

func TestFiltersResetPage(t *testing.T) {
	alerts := make([]*models.Alert, 0, 30)
	for i := 0; i < 30; i++ {
		alerts = append(alerts, makeAlert(fmt.Sprintf("a%02d", i)))
	}
	s := newSeededStore(t, alerts)
	s.SetPageSize(10)
	s.SetPage(3)
	assert.Equal(t, 3, s.Page().Page)

	s.SetFilters(models.AlertFilters{Search: "Item"})
	assert.Equal(t, 1, s.Page().Page, "changing filters must reset to page 1")
}
