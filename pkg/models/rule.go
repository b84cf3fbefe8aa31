package models

import (
	"time"
)

// CheckFrequency is how often a rule's condition is evaluated upstream.
type CheckFrequency string

const (
	CheckRealtime CheckFrequency = "realtime"
	CheckHourly   CheckFrequency = "hourly"
	CheckDaily    CheckFrequency = "daily"
	CheckWeekly   CheckFrequency = "weekly"
)

// RuleThresholds holds the type-specific numeric trigger values of a rule.
// Only the fields relevant to the rule's AlertType are meaningful.
type RuleThresholds struct {
	LowStock       *float64 `json:"lowStock,omitempty"`
	HighStock      *float64 `json:"highStock,omitempty"`
	ExpirationDays *int     `json:"expirationDays,omitempty"`
	ReorderPoint   *float64 `json:"reorderPoint,omitempty"`
}

// AutoAction is a typed action descriptor a rule may carry. The gateway
// records these as configuration only; it never executes them.
type AutoAction struct {
	Type   string            `json:"type"`
	Params map[string]string `json:"params,omitempty"`
}

// AlertRule is a named, toggleable definition that produces alerts of a
// given shape when its thresholds are breached by the upstream evaluator.
type AlertRule struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Enabled     bool   `json:"enabled"`

	// Scope conditions; empty means "any".
	ItemKind   ItemKind `json:"itemKind,omitempty"`
	Category   string   `json:"category,omitempty"`
	Department string   `json:"department,omitempty"`
	Location   string   `json:"location,omitempty"`

	Thresholds RuleThresholds `json:"thresholds"`

	// Shape stamped on generated alerts.
	AlertType AlertType `json:"alertType"`
	Severity  Severity  `json:"severity"`
	Priority  int       `json:"priority"`
	Urgency   Urgency   `json:"urgency"`

	NotifyUsers []string `json:"notifyUsers,omitempty"`
	Channels    []string `json:"channels,omitempty"`

	CheckFrequency        CheckFrequency `json:"checkFrequency"`
	SnoozeOptions         []int          `json:"snoozeOptions,omitempty"` // minutes
	AutoResolve           bool           `json:"autoResolve"`
	AutoResolveAfterHours int            `json:"autoResolveAfterHours,omitempty"`

	AutoActions []AutoAction `json:"autoActions,omitempty"`

	CreatedAt       time.Time  `json:"createdAt"`
	LastUpdated     time.Time  `json:"lastUpdated"`
	CreatedBy       string     `json:"createdBy,omitempty"`
	LastTriggeredAt *time.Time `json:"lastTriggeredAt,omitempty"`
	TriggerCount    int        `json:"triggerCount"`
}

// CreateRuleRequest represents the request payload for creating a rule
type CreateRuleRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Enabled     *bool  `json:"enabled,omitempty"` // defaults to true

	ItemKind   ItemKind `json:"itemKind,omitempty"`
	Category   string   `json:"category,omitempty"`
	Department string   `json:"department,omitempty"`
	Location   string   `json:"location,omitempty"`

	Thresholds RuleThresholds `json:"thresholds"`

	AlertType AlertType `json:"alertType"`
	Severity  Severity  `json:"severity"`
	Priority  int       `json:"priority"`
	Urgency   Urgency   `json:"urgency"`

	NotifyUsers []string `json:"notifyUsers,omitempty"`
	Channels    []string `json:"channels,omitempty"`

	CheckFrequency        CheckFrequency `json:"checkFrequency,omitempty"`
	SnoozeOptions         []int          `json:"snoozeOptions,omitempty"`
	AutoResolve           bool           `json:"autoResolve,omitempty"`
	AutoResolveAfterHours int            `json:"autoResolveAfterHours,omitempty"`

	AutoActions []AutoAction `json:"autoActions,omitempty"`

	CreatedBy string `json:"createdBy,omitempty"`
}

// UpdateRuleRequest represents the request payload for updating a rule.
// Nil fields are left unchanged.
type UpdateRuleRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Enabled     *bool   `json:"enabled,omitempty"`

	ItemKind   *ItemKind `json:"itemKind,omitempty"`
	Category   *string   `json:"category,omitempty"`
	Department *string   `json:"department,omitempty"`
	Location   *string   `json:"location,omitempty"`

	Thresholds *RuleThresholds `json:"thresholds,omitempty"`

	AlertType *AlertType `json:"alertType,omitempty"`
	Severity  *Severity  `json:"severity,omitempty"`
	Priority  *int       `json:"priority,omitempty"`
	Urgency   *Urgency   `json:"urgency,omitempty"`

	NotifyUsers []string `json:"notifyUsers,omitempty"`
	Channels    []string `json:"channels,omitempty"`

	CheckFrequency        *CheckFrequency `json:"checkFrequency,omitempty"`
	SnoozeOptions         []int           `json:"snoozeOptions,omitempty"`
	AutoResolve           *bool           `json:"autoResolve,omitempty"`
	AutoResolveAfterHours *int            `json:"autoResolveAfterHours,omitempty"`

	AutoActions []AutoAction `json:"autoActions,omitempty"`
}

// Clone returns a deep copy of the rule.
func (r *AlertRule) Clone() *AlertRule {
	c := *r
	c.NotifyUsers = append([]string(nil), r.NotifyUsers...)
	c.Channels = append([]string(nil), r.Channels...)
	c.SnoozeOptions = append([]int(nil), r.SnoozeOptions...)
	if r.AutoActions != nil {
		c.AutoActions = make([]AutoAction, len(r.AutoActions))
		for i, a := range r.AutoActions {
			c.AutoActions[i] = a
			if a.Params != nil {
				c.AutoActions[i].Params = make(map[string]string, len(a.Params))
				for k, v := range a.Params {
					c.AutoActions[i].Params[k] = v
				}
			}
		}
	}
	if r.Thresholds.LowStock != nil {
		v := *r.Thresholds.LowStock
		c.Thresholds.LowStock = &v
	}
	if r.Thresholds.HighStock != nil {
		v := *r.Thresholds.HighStock
		c.Thresholds.HighStock = &v
	}
	if r.Thresholds.ExpirationDays != nil {
		v := *r.Thresholds.ExpirationDays
		c.Thresholds.ExpirationDays = &v
	}
	if r.Thresholds.ReorderPoint != nil {
		v := *r.Thresholds.ReorderPoint
		c.Thresholds.ReorderPoint = &v
	}
	return &c
}
