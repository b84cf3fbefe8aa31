package models

// ExportRow is the flattened tabular projection of one alert, ready to
// hand to a CSV or Excel writer. Timestamps are pre-rendered as RFC 3339
// strings; empty means the transition never happened.
type ExportRow struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Severity string `json:"severity"`
	Status   string `json:"status"`
	Priority int    `json:"priority"`
	Urgency  string `json:"urgency"`

	Title       string `json:"title"`
	Message     string `json:"message"`
	Description string `json:"description"`

	ItemID       string `json:"itemId"`
	ItemCode     string `json:"itemCode"`
	ItemName     string `json:"itemName"`
	ItemCategory string `json:"itemCategory"`
	ItemKind     string `json:"itemKind"`

	Department string `json:"department"`
	Location   string `json:"location"`

	CreatedAt      string `json:"createdAt"`
	TriggeredAt    string `json:"triggeredAt"`
	AcknowledgedAt string `json:"acknowledgedAt"`
	ResolvedAt     string `json:"resolvedAt"`

	AcknowledgedBy string `json:"acknowledgedBy"`
	ResolvedBy     string `json:"resolvedBy"`
	AssignedToName string `json:"assignedToName"`

	CurrentValue   string `json:"currentValue"`
	ThresholdValue string `json:"thresholdValue"`
	CostImpact     string `json:"costImpact"`

	Tags string `json:"tags"` // semicolon-joined
}
