// Package store implements the alert store and lifecycle engine: an
// explicitly owned, in-memory collection of inventory alerts and alert
// rules with status transitions, a filter/sort/paginate pipeline,
// derived statistics, and observer-based change notification.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/meditrack-io/inventory-alert-gateway/pkg/models"
	"github.com/meditrack-io/inventory-alert-gateway/pkg/source"
)

var (
	// ErrLoadInFlight is returned when a Load is requested while a
	// previous one has not finished. Loads are never coalesced or
	// queued; the caller retries after the current one completes.
	ErrLoadInFlight = errors.New("a load is already in flight")

	// ErrAlertNotFound is returned when no alert matches the given id.
	ErrAlertNotFound = errors.New("alert not found")

	// ErrRuleNotFound is returned when no rule matches the given id.
	ErrRuleNotFound = errors.New("rule not found")

	// ErrTerminalState is returned when a lifecycle transition is
	// attempted on a resolved or dismissed alert. Terminal states are
	// one-way; only the action log may still be appended to.
	ErrTerminalState = errors.New("alert is in a terminal state")
)

// Subscriber is invoked after every successful mutation of the store.
// Callbacks run outside the store lock and must not block for long.
type Subscriber func()

// DefaultPageSize is used until the host sets an explicit page size.
const DefaultPageSize = 25

// AlertStore owns the in-memory alert and rule lists plus the current
// view state (filters, sort, page). All methods are safe for concurrent
// use. Alerts are mutated copy-on-write, so a reader holding a slice
// from a previous read never observes a partially updated record.
type AlertStore struct {
	mu  sync.RWMutex
	src source.DataSource

	alerts []*models.Alert
	rules  []*models.AlertRule

	filters  models.AlertFilters
	sortBy   string
	sortDir  models.SortDirection
	page     int
	pageSize int

	loading    bool
	refreshing bool
	lastError  string
	loadedAt   time.Time

	version uint64
	subs    map[int]Subscriber
	nextSub int

	// now is swapped in tests to pin relative-time filters.
	now func() time.Time
}

// New creates an empty store backed by the given data source.
func New(src source.DataSource) *AlertStore {
	return &AlertStore{
		src:      src,
		sortBy:   models.SortByCreatedAt,
		sortDir:  models.SortDesc,
		page:     1,
		pageSize: DefaultPageSize,
		subs:     make(map[int]Subscriber),
		now:      time.Now,
	}
}

// Load replaces the alert and rule lists wholesale from the data source.
// At most one load may be in flight; a concurrent call fails with
// ErrLoadInFlight. On failure the previous lists are retained and the
// error message is kept until the next successful load.
func (s *AlertStore) Load(ctx context.Context) error {
	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return ErrLoadInFlight
	}
	s.loading = true
	s.mu.Unlock()

	alerts, err := s.src.FetchAlerts(ctx)
	var rules []*models.AlertRule
	if err == nil {
		rules, err = s.src.FetchRules(ctx)
	}

	s.mu.Lock()
	s.loading = false
	s.refreshing = false
	if err != nil {
		s.lastError = err.Error()
		s.mu.Unlock()
		logrus.Errorf("Load failed, keeping stale data: %v", err)
		return fmt.Errorf("failed to load from data source: %w", err)
	}
	s.alerts = alerts
	s.rules = rules
	s.lastError = ""
	s.loadedAt = s.now()
	s.version++
	s.mu.Unlock()

	logrus.Infof("Loaded %d alerts and %d rules", len(alerts), len(rules))
	s.notify()
	return nil
}

// Refresh re-runs Load while flagging the store as refreshing, so hosts
// can distinguish an initial load from a background re-load.
func (s *AlertStore) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return ErrLoadInFlight
	}
	s.refreshing = true
	s.mu.Unlock()
	return s.Load(ctx)
}

// State reports the transient load flags and the sticky error message
// from the last failed load ("" when the last load succeeded).
func (s *AlertStore) State() (loading, refreshing bool, lastError string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading, s.refreshing, s.lastError
}

// Version returns the store's monotonically increasing mutation counter.
func (s *AlertStore) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Subscribe registers a callback invoked after every successful
// mutation. The returned function removes the subscription.
func (s *AlertStore) Subscribe(fn Subscriber) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// notify invokes all subscribers outside the lock.
func (s *AlertStore) notify() {
	s.mu.RLock()
	fns := make([]Subscriber, 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()
	for _, fn := range fns {
		fn()
	}
}

// SetFilters replaces the current filter criteria and resets the page
// to 1 so the view never lands on an out-of-range page.
func (s *AlertStore) SetFilters(f models.AlertFilters) {
	s.mu.Lock()
	s.filters = f
	s.page = 1
	s.mu.Unlock()
}

// ClearFilters removes all filter criteria and resets the page to 1.
func (s *AlertStore) ClearFilters() {
	s.SetFilters(models.AlertFilters{})
}

// Filters returns the current filter criteria.
func (s *AlertStore) Filters() models.AlertFilters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filters
}

// SetSort sets the sort field and direction. An empty direction keeps
// the current one. Unknown fields fall back to createdAt.
func (s *AlertStore) SetSort(field string, dir models.SortDirection) {
	s.mu.Lock()
	s.sortBy = field
	if dir != "" {
		s.sortDir = dir
	}
	s.mu.Unlock()
}

// SetPage sets the current page. Pages are 1-based; values below 1
// clamp to 1.
func (s *AlertStore) SetPage(n int) {
	s.mu.Lock()
	if n < 1 {
		n = 1
	}
	s.page = n
	s.mu.Unlock()
}

// SetPageSize sets the page size. Values below 1 clamp to 1.
func (s *AlertStore) SetPageSize(n int) {
	s.mu.Lock()
	if n < 1 {
		n = 1
	}
	s.pageSize = n
	s.mu.Unlock()
}

// ExpireSnoozes flips snoozed alerts whose snooze deadline has passed
// back to active. Every read path calls this first, and the server also
// runs it on a timer; both paths share the same transition so the store
// never reports a stale snooze.
func (s *AlertStore) ExpireSnoozes() int {
	s.mu.Lock()
	n := s.expireSnoozesLocked(s.now())
	s.mu.Unlock()
	if n > 0 {
		s.notify()
	}
	return n
}

func (s *AlertStore) expireSnoozesLocked(now time.Time) int {
	expired := 0
	for i, a := range s.alerts {
		if a.Status == models.StatusSnoozed && a.SnoozedUntil != nil && !a.SnoozedUntil.After(now) {
			c := a.Clone()
			c.Status = models.StatusActive
			s.alerts[i] = c
			expired++
		}
	}
	if expired > 0 {
		s.version++
		logrus.Debugf("Reverted %d expired snoozes to active", expired)
	}
	return expired
}

// findLocked returns the index of the alert with the given id, or -1.
func (s *AlertStore) findLocked(id string) int {
	for i, a := range s.alerts {
		if a.ID == id {
			return i
		}
	}
	return -1
}

// Alert returns the alert with the given id.
func (s *AlertStore) Alert(id string) (*models.Alert, error) {
	s.ExpireSnoozes()
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.findLocked(id); i >= 0 {
		return s.alerts[i], nil
	}
	return nil, ErrAlertNotFound
}

// Alerts returns the full, unfiltered alert list.
func (s *AlertStore) Alerts() []*models.Alert {
	s.ExpireSnoozes()
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Alert, len(s.alerts))
	copy(out, s.alerts)
	return out
}
