package store

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/meditrack-io/inventory-alert-gateway/pkg/models"
)

// Rules returns all rules.
func (s *AlertStore) Rules() []*models.AlertRule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.AlertRule, len(s.rules))
	copy(out, s.rules)
	return out
}

// Rule returns the rule with the given id.
func (s *AlertStore) Rule(id string) (*models.AlertRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.findRuleLocked(id); i >= 0 {
		return s.rules[i], nil
	}
	return nil, ErrRuleNotFound
}

func (s *AlertStore) findRuleLocked(id string) int {
	for i, r := range s.rules {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// CreateRule creates a rule from the request, assigning the id, audit
// timestamps, and a zero trigger count. Enabled defaults to true.
// Threshold-vs-alertType consistency is not validated here; that is a
// caller concern.
func (s *AlertStore) CreateRule(req *models.CreateRuleRequest) *models.AlertRule {
	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}
	frequency := req.CheckFrequency
	if frequency == "" {
		frequency = models.CheckRealtime
	}

	s.mu.Lock()
	now := s.now()
	rule := &models.AlertRule{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		Enabled:     enabled,

		ItemKind:   req.ItemKind,
		Category:   req.Category,
		Department: req.Department,
		Location:   req.Location,

		Thresholds: req.Thresholds,

		AlertType: req.AlertType,
		Severity:  req.Severity,
		Priority:  req.Priority,
		Urgency:   req.Urgency,

		NotifyUsers: req.NotifyUsers,
		Channels:    req.Channels,

		CheckFrequency:        frequency,
		SnoozeOptions:         req.SnoozeOptions,
		AutoResolve:           req.AutoResolve,
		AutoResolveAfterHours: req.AutoResolveAfterHours,

		AutoActions: req.AutoActions,

		CreatedAt:    now,
		LastUpdated:  now,
		CreatedBy:    req.CreatedBy,
		TriggerCount: 0,
	}
	s.rules = append(s.rules, rule)
	s.version++
	s.mu.Unlock()

	logrus.Infof("Created rule %s (%s)", rule.ID, rule.Name)
	s.notify()
	return rule
}

// UpdateRule merges the non-nil request fields into the rule and bumps
// its lastUpdated timestamp.
func (s *AlertStore) UpdateRule(id string, req *models.UpdateRuleRequest) (*models.AlertRule, error) {
	s.mu.Lock()
	i := s.findRuleLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return nil, ErrRuleNotFound
	}

	rule := s.rules[i].Clone()
	if req.Name != nil {
		rule.Name = *req.Name
	}
	if req.Description != nil {
		rule.Description = *req.Description
	}
	if req.Enabled != nil {
		rule.Enabled = *req.Enabled
	}
	if req.ItemKind != nil {
		rule.ItemKind = *req.ItemKind
	}
	if req.Category != nil {
		rule.Category = *req.Category
	}
	if req.Department != nil {
		rule.Department = *req.Department
	}
	if req.Location != nil {
		rule.Location = *req.Location
	}
	if req.Thresholds != nil {
		rule.Thresholds = *req.Thresholds
	}
	if req.AlertType != nil {
		rule.AlertType = *req.AlertType
	}
	if req.Severity != nil {
		rule.Severity = *req.Severity
	}
	if req.Priority != nil {
		rule.Priority = *req.Priority
	}
	if req.Urgency != nil {
		rule.Urgency = *req.Urgency
	}
	if req.NotifyUsers != nil {
		rule.NotifyUsers = req.NotifyUsers
	}
	if req.Channels != nil {
		rule.Channels = req.Channels
	}
	if req.CheckFrequency != nil {
		rule.CheckFrequency = *req.CheckFrequency
	}
	if req.SnoozeOptions != nil {
		rule.SnoozeOptions = req.SnoozeOptions
	}
	if req.AutoResolve != nil {
		rule.AutoResolve = *req.AutoResolve
	}
	if req.AutoResolveAfterHours != nil {
		rule.AutoResolveAfterHours = *req.AutoResolveAfterHours
	}
	if req.AutoActions != nil {
		rule.AutoActions = req.AutoActions
	}
	rule.LastUpdated = s.now()

	s.rules[i] = rule
	s.version++
	s.mu.Unlock()

	s.notify()
	return rule, nil
}

// DeleteRule removes the rule from the list.
func (s *AlertStore) DeleteRule(id string) error {
	s.mu.Lock()
	i := s.findRuleLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return ErrRuleNotFound
	}
	s.rules = append(s.rules[:i], s.rules[i+1:]...)
	s.version++
	s.mu.Unlock()

	logrus.Infof("Deleted rule %s", id)
	s.notify()
	return nil
}

// ToggleRule flips the rule's enabled flag and bumps lastUpdated.
func (s *AlertStore) ToggleRule(id string) (*models.AlertRule, error) {
	s.mu.Lock()
	i := s.findRuleLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return nil, ErrRuleNotFound
	}
	rule := s.rules[i].Clone()
	rule.Enabled = !rule.Enabled
	rule.LastUpdated = s.now()
	s.rules[i] = rule
	s.version++
	s.mu.Unlock()

	s.notify()
	return rule, nil
}
