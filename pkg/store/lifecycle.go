package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/meditrack-io/inventory-alert-gateway/pkg/models"
)

// descriptionSeparator joins an operator-supplied resolution note or
// dismissal reason onto the alert's existing description.
const descriptionSeparator = " | "

// BulkFailure records why one id in a bulk operation was skipped.
type BulkFailure struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// BulkResult reports the per-id outcome of a bulk operation. Bulk
// operations are best-effort: each id succeeds or fails independently.
type BulkResult struct {
	Succeeded []string      `json:"succeeded"`
	Failed    []BulkFailure `json:"failed"`
}

// mutate locates the alert, applies fn to a clone, and swaps the clone
// in. fn returns an error to refuse the transition, in which case the
// stored record is left untouched.
func (s *AlertStore) mutate(id string, fn func(a *models.Alert, now time.Time) error) error {
	s.mu.Lock()
	now := s.now()
	s.expireSnoozesLocked(now)

	i := s.findLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return ErrAlertNotFound
	}

	c := s.alerts[i].Clone()
	if err := fn(c, now); err != nil {
		s.mu.Unlock()
		return err
	}
	s.alerts[i] = c
	s.version++
	s.mu.Unlock()

	s.notify()
	return nil
}

// Acknowledge transitions an alert to acknowledged and stamps the actor
// and timestamp. Re-acknowledging an already acknowledged alert is
// allowed and overwrites the timestamp and actor.
func (s *AlertStore) Acknowledge(id, actor string) error {
	return s.mutate(id, func(a *models.Alert, now time.Time) error {
		if a.IsTerminal() {
			return ErrTerminalState
		}
		t := now
		a.Status = models.StatusAcknowledged
		a.AcknowledgedAt = &t
		a.AcknowledgedBy = actor
		logrus.Debugf("Alert %s acknowledged by %s", id, actor)
		return nil
	})
}

// Resolve transitions an alert to resolved. Resolution is reachable
// from active and acknowledged only. A non-empty note is appended to
// the description, never replacing it.
func (s *AlertStore) Resolve(id, actor, note string) error {
	return s.mutate(id, func(a *models.Alert, now time.Time) error {
		if a.IsTerminal() {
			return ErrTerminalState
		}
		if a.Status == models.StatusSnoozed {
			return fmt.Errorf("cannot resolve alert in %s state", a.Status)
		}
		t := now
		a.Status = models.StatusResolved
		a.ResolvedAt = &t
		a.ResolvedBy = actor
		if note != "" {
			a.Description = appendNote(a.Description, note)
		}
		logrus.Debugf("Alert %s resolved by %s", id, actor)
		return nil
	})
}

// Dismiss transitions an alert to dismissed. A non-empty reason is
// appended to the description.
func (s *AlertStore) Dismiss(id, reason string) error {
	return s.mutate(id, func(a *models.Alert, now time.Time) error {
		if a.IsTerminal() {
			return ErrTerminalState
		}
		t := now
		a.Status = models.StatusDismissed
		a.DismissedAt = &t
		if reason != "" {
			a.Description = appendNote(a.Description, reason)
		}
		logrus.Debugf("Alert %s dismissed", id)
		return nil
	})
}

// Snooze suppresses an active alert until now + minutes. The store
// reverts it to active lazily once the deadline passes.
func (s *AlertStore) Snooze(id string, minutes int) error {
	if minutes <= 0 {
		return fmt.Errorf("snooze duration must be positive, got %d", minutes)
	}
	return s.mutate(id, func(a *models.Alert, now time.Time) error {
		if a.Status != models.StatusActive {
			return fmt.Errorf("cannot snooze alert in %s state", a.Status)
		}
		until := now.Add(time.Duration(minutes) * time.Minute)
		a.Status = models.StatusSnoozed
		a.SnoozedUntil = &until
		logrus.Debugf("Alert %s snoozed until %s", id, until.Format(time.RFC3339))
		return nil
	})
}

// Assign sets the assignee fields without changing status. Terminal
// alerts refuse assignment.
func (s *AlertStore) Assign(id, assigneeID, assigneeName string) error {
	return s.mutate(id, func(a *models.Alert, _ time.Time) error {
		if a.IsTerminal() {
			return ErrTerminalState
		}
		a.AssignedTo = assigneeID
		a.AssignedToName = assigneeName
		return nil
	})
}

// AddAction appends an entry to the alert's action log. The id and
// timestamp are assigned here. The action log stays open for terminal
// alerts so post-resolution audit entries can still be recorded.
func (s *AlertStore) AddAction(id string, action models.AlertAction) error {
	return s.mutate(id, func(a *models.Alert, now time.Time) error {
		action.ID = uuid.New().String()
		action.PerformedAt = now
		a.Actions = append(a.Actions, action)
		return nil
	})
}

// BulkAcknowledge applies Acknowledge to every id, best effort.
func (s *AlertStore) BulkAcknowledge(ids []string, actor string) BulkResult {
	return s.bulk(ids, func(id string) error { return s.Acknowledge(id, actor) })
}

// BulkResolve applies Resolve to every id, best effort.
func (s *AlertStore) BulkResolve(ids []string, actor, note string) BulkResult {
	return s.bulk(ids, func(id string) error { return s.Resolve(id, actor, note) })
}

// BulkDismiss applies Dismiss to every id, best effort.
func (s *AlertStore) BulkDismiss(ids []string, reason string) BulkResult {
	return s.bulk(ids, func(id string) error { return s.Dismiss(id, reason) })
}

// BulkSnooze applies Snooze to every id, best effort.
func (s *AlertStore) BulkSnooze(ids []string, minutes int) BulkResult {
	return s.bulk(ids, func(id string) error { return s.Snooze(id, minutes) })
}

// BulkAssign applies Assign to every id, best effort.
func (s *AlertStore) BulkAssign(ids []string, assigneeID, assigneeName string) BulkResult {
	return s.bulk(ids, func(id string) error { return s.Assign(id, assigneeID, assigneeName) })
}

func (s *AlertStore) bulk(ids []string, op func(id string) error) BulkResult {
	result := BulkResult{Succeeded: []string{}, Failed: []BulkFailure{}}
	for _, id := range ids {
		if err := op(id); err != nil {
			result.Failed = append(result.Failed, BulkFailure{ID: id, Reason: err.Error()})
			continue
		}
		result.Succeeded = append(result.Succeeded, id)
	}
	if len(result.Failed) > 0 {
		logrus.Warnf("Bulk operation: %d succeeded, %d failed", len(result.Succeeded), len(result.Failed))
	}
	return result
}

func appendNote(description, note string) string {
	if description == "" {
		return note
	}
	return description + descriptionSeparator + note
}
