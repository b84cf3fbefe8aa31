package models

// TrendBucket reports how many alerts were raised and resolved inside
// one relative-time window.
type TrendBucket struct {
	Raised   int `json:"raised"`
	Resolved int `json:"resolved"`
}

// AlertTrends is the fixed set of trend buckets exposed by the store.
type AlertTrends struct {
	Today     TrendBucket `json:"today"`
	ThisWeek  TrendBucket `json:"thisWeek"`
	ThisMonth TrendBucket `json:"thisMonth"`
}

// AlertStats is the derived-statistics view computed over the full,
// unfiltered alert list.
type AlertStats struct {
	TotalAlerts int `json:"totalAlerts"`

	ActiveAlerts       int `json:"activeAlerts"`
	AcknowledgedAlerts int `json:"acknowledgedAlerts"`
	ResolvedAlerts     int `json:"resolvedAlerts"`
	DismissedAlerts    int `json:"dismissedAlerts"`
	SnoozedAlerts      int `json:"snoozedAlerts"`

	BySeverity map[Severity]int  `json:"bySeverity"`
	ByType     map[AlertType]int `json:"byType"`
	ByItemKind map[ItemKind]int  `json:"byItemKind"`

	Today     int `json:"today"`
	ThisWeek  int `json:"thisWeek"`
	ThisMonth int `json:"thisMonth"`
	Overdue   int `json:"overdue"`

	// Means over alerts that have the relevant pair of timestamps;
	// 0 when no alert qualifies.
	AvgResolutionHours    float64 `json:"avgResolutionHours"`
	AvgAcknowledgeMinutes float64 `json:"avgAcknowledgeMinutes"`

	Trends AlertTrends `json:"trends"`

	TotalCostImpact float64 `json:"totalCostImpact"`
	AvgCostImpact   float64 `json:"avgCostImpact"`

	// Percentages in [0, 100]; 0 when the list is empty.
	ResponseRate   float64 `json:"responseRate"`
	ResolutionRate float64 `json:"resolutionRate"`
}
