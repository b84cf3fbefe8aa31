package models

import (
	"strings"
	"time"
)

// AlertType classifies the inventory condition that raised an alert.
type AlertType string

const (
	AlertTypeLowStock         AlertType = "low_stock"
	AlertTypeHighStock        AlertType = "high_stock"
	AlertTypeExpiring         AlertType = "expiring"
	AlertTypeExpired          AlertType = "expired"
	AlertTypeOutOfStock       AlertType = "out_of_stock"
	AlertTypeReorderPoint     AlertType = "reorder_point"
	AlertTypeQualityIssue     AlertType = "quality_issue"
	AlertTypeLocationMismatch AlertType = "location_mismatch"
	AlertTypePriceChange      AlertType = "price_change"
	AlertTypeSupplierIssue    AlertType = "supplier_issue"
)

// Severity represents the qualitative impact level of an alert.
// It is independent of Priority, which is a 1-10 triage ranking.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Status represents the lifecycle state of an alert.
type Status string

const (
	StatusActive       Status = "active"
	StatusAcknowledged Status = "acknowledged"
	StatusResolved     Status = "resolved"
	StatusDismissed    Status = "dismissed"
	StatusSnoozed      Status = "snoozed"
)

// ItemKind identifies the broad class of inventory item an alert refers to.
type ItemKind string

const (
	ItemKindMedication ItemKind = "medication"
	ItemKindEquipment  ItemKind = "equipment"
	ItemKindSupply     ItemKind = "supply"
)

// Urgency is the expected response-time bucket for an alert.
type Urgency string

const (
	UrgencyImmediate    Urgency = "immediate"
	UrgencyWithinHour   Urgency = "within_hour"
	UrgencyWithinDay    Urgency = "within_day"
	UrgencyWithinWeek   Urgency = "within_week"
	UrgencyWhenPossible Urgency = "when_possible"
)

// AlertAction is one entry in an alert's append-only action log.
type AlertAction struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	PerformedBy string    `json:"performedBy"`
	PerformedAt time.Time `json:"performedAt"`
	Result      string    `json:"result,omitempty"`
}

// AlertNotification records one notification attempt for an alert.
type AlertNotification struct {
	Channel   string    `json:"channel"`
	Recipient string    `json:"recipient"`
	SentAt    time.Time `json:"sentAt"`
	Delivered bool      `json:"delivered"`
}

// Recurrence describes whether the condition behind an alert recurs.
type Recurrence struct {
	IsRecurring    bool       `json:"isRecurring"`
	Pattern        string     `json:"pattern,omitempty"`
	LastOccurrence *time.Time `json:"lastOccurrence,omitempty"`
	NextOccurrence *time.Time `json:"nextOccurrence,omitempty"`
}

// AlertMetadata carries the typed domain facts attached to an alert.
// Not every alert populates every field. Extension data that has no
// first-class field lands in Extra.
type AlertMetadata struct {
	BatchNumber       string     `json:"batchNumber,omitempty"`
	LotNumber         string     `json:"lotNumber,omitempty"`
	ExpirationDate    *time.Time `json:"expirationDate,omitempty"`
	SupplierName      string     `json:"supplierName,omitempty"`
	ConsumptionRate   float64    `json:"consumptionRate,omitempty"`
	DaysUntilStockout int        `json:"daysUntilStockout,omitempty"`
	CostImpact        float64    `json:"costImpact,omitempty"`
	AffectedPatients  int        `json:"affectedPatients,omitempty"`
	AlternativeItems  []string   `json:"alternativeItems,omitempty"`

	Extra map[string]string `json:"extra,omitempty"`
}

// Alert represents one detected inventory condition requiring attention.
// The item fields are a weak reference to an inventory item owned by the
// upstream inventory service; the alert does not own the item.
type Alert struct {
	ID       string    `json:"id"`
	Type     AlertType `json:"type"`
	Severity Severity  `json:"severity"`
	Status   Status    `json:"status"`

	ItemID       string   `json:"itemId,omitempty"`
	ItemCode     string   `json:"itemCode,omitempty"`
	ItemName     string   `json:"itemName,omitempty"`
	ItemCategory string   `json:"itemCategory,omitempty"`
	ItemKind     ItemKind `json:"itemKind,omitempty"`

	Title             string   `json:"title"`
	Message           string   `json:"message"`
	Description       string   `json:"description,omitempty"`
	CurrentValue      *float64 `json:"currentValue,omitempty"`
	ThresholdValue    *float64 `json:"thresholdValue,omitempty"`
	RecommendedAction string   `json:"recommendedAction,omitempty"`

	Location   string `json:"location,omitempty"`
	Department string `json:"department,omitempty"`

	// Transition timestamps are set exactly once when the corresponding
	// transition occurs and are never retroactively edited.
	CreatedAt      time.Time  `json:"createdAt"`
	TriggeredAt    time.Time  `json:"triggeredAt"`
	AcknowledgedAt *time.Time `json:"acknowledgedAt,omitempty"`
	ResolvedAt     *time.Time `json:"resolvedAt,omitempty"`
	DismissedAt    *time.Time `json:"dismissedAt,omitempty"`
	SnoozedUntil   *time.Time `json:"snoozedUntil,omitempty"`
	ExpiresAt      *time.Time `json:"expiresAt,omitempty"`

	AssignedTo     string `json:"assignedTo,omitempty"`
	AssignedToName string `json:"assignedToName,omitempty"`
	AcknowledgedBy string `json:"acknowledgedBy,omitempty"`
	ResolvedBy     string `json:"resolvedBy,omitempty"`

	Metadata      AlertMetadata       `json:"metadata"`
	Actions       []AlertAction       `json:"actions,omitempty"`
	Notifications []AlertNotification `json:"notifications,omitempty"`
	Recurrence    *Recurrence         `json:"recurrence,omitempty"`

	Priority int      `json:"priority"`
	Urgency  Urgency  `json:"urgency"`
	Tags     []string `json:"tags,omitempty"`
}

// IsTerminal reports whether the alert is in a terminal state. Terminal
// alerts never transition again; only their action log may still grow.
func (a *Alert) IsTerminal() bool {
	return a.Status == StatusResolved || a.Status == StatusDismissed
}

// HasTag reports whether the alert carries the given tag (case-insensitive).
func (a *Alert) HasTag(tag string) bool {
	for _, t := range a.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the alert. The store mutates alerts
// copy-on-write so readers never observe a partially updated record.
func (a *Alert) Clone() *Alert {
	c := *a
	c.Actions = append([]AlertAction(nil), a.Actions...)
	c.Notifications = append([]AlertNotification(nil), a.Notifications...)
	c.Tags = append([]string(nil), a.Tags...)
	c.Metadata.AlternativeItems = append([]string(nil), a.Metadata.AlternativeItems...)
	if a.Metadata.Extra != nil {
		c.Metadata.Extra = make(map[string]string, len(a.Metadata.Extra))
		for k, v := range a.Metadata.Extra {
			c.Metadata.Extra[k] = v
		}
	}
	if a.Recurrence != nil {
		r := *a.Recurrence
		c.Recurrence = &r
	}
	return &c
}
