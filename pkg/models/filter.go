package models

import "time"

// SortDirection is the ordering direction for alert listings.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Sortable alert fields. Any other value falls back to SortByCreatedAt.
const (
	SortByID             = "id"
	SortByType           = "type"
	SortBySeverity       = "severity"
	SortByStatus         = "status"
	SortByItemName       = "itemName"
	SortByItemCode       = "itemCode"
	SortByCategory       = "itemCategory"
	SortByDepartment     = "department"
	SortByLocation       = "location"
	SortByTitle          = "title"
	SortByPriority       = "priority"
	SortByUrgency        = "urgency"
	SortByCreatedAt      = "createdAt"
	SortByTriggeredAt    = "triggeredAt"
	SortByAcknowledgedAt = "acknowledgedAt"
	SortByResolvedAt     = "resolvedAt"
	SortByExpiresAt      = "expiresAt"
	SortByCurrentValue   = "currentValue"
	SortByCostImpact     = "costImpact"
)

// AlertFilters is the full set of filter criteria for alert listings.
// All supplied criteria are ANDed together. The zero value matches
// every alert. Exact-match string fields treat "" and "all" as "any".
type AlertFilters struct {
	// Case-insensitive substring match across title, message, item
	// name/code, department, location, description, and tags. The match
	// succeeds if any one of those fields contains the query.
	Search string `json:"search,omitempty"`

	Type       AlertType `json:"type,omitempty"`
	Severity   Severity  `json:"severity,omitempty"`
	Status     Status    `json:"status,omitempty"`
	ItemKind   ItemKind  `json:"itemKind,omitempty"`
	Department string    `json:"department,omitempty"`
	Location   string    `json:"location,omitempty"`
	AssignedTo string    `json:"assignedTo,omitempty"`
	Category   string    `json:"category,omitempty"`

	// Inclusive date-range bounds.
	CreatedFrom   *time.Time `json:"createdFrom,omitempty"`
	CreatedTo     *time.Time `json:"createdTo,omitempty"`
	TriggeredFrom *time.Time `json:"triggeredFrom,omitempty"`
	TriggeredTo   *time.Time `json:"triggeredTo,omitempty"`

	// Inclusive priority bounds.
	PriorityMin *int `json:"priorityMin,omitempty"`
	PriorityMax *int `json:"priorityMax,omitempty"`

	// Boolean convenience filters.
	ActiveOnly     bool `json:"activeOnly,omitempty"`
	Unacknowledged bool `json:"unacknowledged,omitempty"`
	Unresolved     bool `json:"unresolved,omitempty"`
	CriticalOnly   bool `json:"criticalOnly,omitempty"`
	HighPriority   bool `json:"highPriority,omitempty"` // priority >= 7
	ExpiringSoon   bool `json:"expiringSoon,omitempty"` // type == expiring

	// Relative-time windows on CreatedAt.
	Today     bool `json:"today,omitempty"`
	ThisWeek  bool `json:"thisWeek,omitempty"`
	ThisMonth bool `json:"thisMonth,omitempty"`

	// Overdue matches alerts whose ExpiresAt is in the past.
	Overdue bool `json:"overdue,omitempty"`

	IncludeTags []string `json:"includeTags,omitempty"`
	ExcludeTags []string `json:"excludeTags,omitempty"`
}

// IsZero reports whether no criterion is set.
func (f AlertFilters) IsZero() bool {
	return f.Search == "" &&
		f.Type == "" && f.Severity == "" && f.Status == "" && f.ItemKind == "" &&
		f.Department == "" && f.Location == "" && f.AssignedTo == "" && f.Category == "" &&
		f.CreatedFrom == nil && f.CreatedTo == nil &&
		f.TriggeredFrom == nil && f.TriggeredTo == nil &&
		f.PriorityMin == nil && f.PriorityMax == nil &&
		!f.ActiveOnly && !f.Unacknowledged && !f.Unresolved &&
		!f.CriticalOnly && !f.HighPriority && !f.ExpiringSoon &&
		!f.Today && !f.ThisWeek && !f.ThisMonth && !f.Overdue &&
		len(f.IncludeTags) == 0 && len(f.ExcludeTags) == 0
}
