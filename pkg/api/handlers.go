package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/meditrack-io/inventory-alert-gateway/pkg/export"
	"github.com/meditrack-io/inventory-alert-gateway/pkg/models"
	"github.com/meditrack-io/inventory-alert-gateway/pkg/store"
)

// APIHandler handles HTTP API requests
type APIHandler struct {
	store *store.AlertStore
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(s *store.AlertStore) *APIHandler {
	return &APIHandler{store: s}
}

// GetAlerts applies the query-string filters, sort, and paging to the
// store and returns the current page of the alert view.
func (h *APIHandler) GetAlerts(c echo.Context) error {
	h.store.SetFilters(parseFilters(c))
	if field := c.QueryParam("sort_by"); field != "" {
		h.store.SetSort(field, models.SortDirection(c.QueryParam("sort_dir")))
	}
	if n, err := strconv.Atoi(c.QueryParam("page_size")); err == nil {
		h.store.SetPageSize(n)
	}
	if n, err := strconv.Atoi(c.QueryParam("page")); err == nil {
		h.store.SetPage(n)
	}
	return c.JSON(http.StatusOK, h.store.Page())
}

// GetAlert returns an alert by ID
func (h *APIHandler) GetAlert(c echo.Context) error {
	id := c.Param("id")
	alert, err := h.store.Alert(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": fmt.Sprintf("Alert with ID %s not found", id)})
	}
	return c.JSON(http.StatusOK, alert)
}

// GetStats returns the derived statistics over the full alert list.
func (h *APIHandler) GetStats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.Stats())
}

// Refresh re-loads alerts and rules from the data source.
func (h *APIHandler) Refresh(c echo.Context) error {
	if err := h.store.Refresh(c.Request().Context()); err != nil {
		if errors.Is(err, store.ErrLoadInFlight) {
			return c.JSON(http.StatusConflict, map[string]string{"error": "A refresh is already in progress"})
		}
		logrus.Errorf("Error refreshing store: %v", err)
		return c.JSON(http.StatusBadGateway, map[string]string{"error": fmt.Sprintf("Failed to refresh: %v", err)})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Refreshed successfully"})
}

// AcknowledgeAlert acknowledges an alert
func (h *APIHandler) AcknowledgeAlert(c echo.Context) error {
	id := c.Param("id")
	var req struct {
		AcknowledgedBy string `json:"acknowledgedBy"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	if req.AcknowledgedBy == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "acknowledgedBy is required"})
	}
	if err := h.store.Acknowledge(id, req.AcknowledgedBy); err != nil {
		return h.alertOpError(c, id, "acknowledge", err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Alert acknowledged successfully"})
}

// ResolveAlert resolves an alert, optionally appending a resolution note.
func (h *APIHandler) ResolveAlert(c echo.Context) error {
	id := c.Param("id")
	var req struct {
		ResolvedBy string `json:"resolvedBy"`
		Note       string `json:"note,omitempty"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	if req.ResolvedBy == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "resolvedBy is required"})
	}
	if err := h.store.Resolve(id, req.ResolvedBy, req.Note); err != nil {
		return h.alertOpError(c, id, "resolve", err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Alert resolved successfully"})
}

// DismissAlert dismisses an alert, optionally appending a reason.
func (h *APIHandler) DismissAlert(c echo.Context) error {
	id := c.Param("id")
	var req struct {
		Reason string `json:"reason,omitempty"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	if err := h.store.Dismiss(id, req.Reason); err != nil {
		return h.alertOpError(c, id, "dismiss", err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Alert dismissed successfully"})
}

// SnoozeAlert snoozes an alert for the requested number of minutes.
func (h *APIHandler) SnoozeAlert(c echo.Context) error {
	id := c.Param("id")
	var req struct {
		Minutes int `json:"minutes"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	if req.Minutes <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "minutes must be positive"})
	}
	if err := h.store.Snooze(id, req.Minutes); err != nil {
		return h.alertOpError(c, id, "snooze", err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Alert snoozed successfully"})
}

// AssignAlert sets the alert's assignee without changing its status.
func (h *APIHandler) AssignAlert(c echo.Context) error {
	id := c.Param("id")
	var req struct {
		AssignedTo     string `json:"assignedTo"`
		AssignedToName string `json:"assignedToName,omitempty"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	if req.AssignedTo == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "assignedTo is required"})
	}
	if err := h.store.Assign(id, req.AssignedTo, req.AssignedToName); err != nil {
		return h.alertOpError(c, id, "assign", err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Alert assigned successfully"})
}

// AddAction appends an entry to the alert's action log.
func (h *APIHandler) AddAction(c echo.Context) error {
	id := c.Param("id")
	var req models.AlertAction
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	if req.Type == "" || req.Description == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "type and description are required"})
	}
	if err := h.store.AddAction(id, req); err != nil {
		return h.alertOpError(c, id, "add action to", err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Action recorded successfully"})
}

// bulkIDsRequest is shared by the bulk endpoints.
type bulkIDsRequest struct {
	IDs            []string `json:"ids"`
	AcknowledgedBy string   `json:"acknowledgedBy,omitempty"`
	ResolvedBy     string   `json:"resolvedBy,omitempty"`
	Note           string   `json:"note,omitempty"`
	Reason         string   `json:"reason,omitempty"`
	Minutes        int      `json:"minutes,omitempty"`
	AssignedTo     string   `json:"assignedTo,omitempty"`
	AssignedToName string   `json:"assignedToName,omitempty"`
}

// BulkAcknowledge acknowledges a list of alerts, best effort per id.
func (h *APIHandler) BulkAcknowledge(c echo.Context) error {
	req, ok := bindBulk(c)
	if !ok {
		return nil
	}
	if req.AcknowledgedBy == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "acknowledgedBy is required"})
	}
	return c.JSON(http.StatusOK, h.store.BulkAcknowledge(req.IDs, req.AcknowledgedBy))
}

// BulkResolve resolves a list of alerts, best effort per id.
func (h *APIHandler) BulkResolve(c echo.Context) error {
	req, ok := bindBulk(c)
	if !ok {
		return nil
	}
	if req.ResolvedBy == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "resolvedBy is required"})
	}
	return c.JSON(http.StatusOK, h.store.BulkResolve(req.IDs, req.ResolvedBy, req.Note))
}

// BulkDismiss dismisses a list of alerts, best effort per id.
func (h *APIHandler) BulkDismiss(c echo.Context) error {
	req, ok := bindBulk(c)
	if !ok {
		return nil
	}
	return c.JSON(http.StatusOK, h.store.BulkDismiss(req.IDs, req.Reason))
}

// BulkSnooze snoozes a list of alerts, best effort per id.
func (h *APIHandler) BulkSnooze(c echo.Context) error {
	req, ok := bindBulk(c)
	if !ok {
		return nil
	}
	if req.Minutes <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "minutes must be positive"})
	}
	return c.JSON(http.StatusOK, h.store.BulkSnooze(req.IDs, req.Minutes))
}

// BulkAssign assigns a list of alerts, best effort per id.
func (h *APIHandler) BulkAssign(c echo.Context) error {
	req, ok := bindBulk(c)
	if !ok {
		return nil
	}
	if req.AssignedTo == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "assignedTo is required"})
	}
	return c.JSON(http.StatusOK, h.store.BulkAssign(req.IDs, req.AssignedTo, req.AssignedToName))
}

// bindBulk binds the shared bulk payload. When it returns false the
// error response has already been written.
func bindBulk(c echo.Context) (*bulkIDsRequest, bool) {
	var req bulkIDsRequest
	if err := c.Bind(&req); err != nil {
		_ = c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
		return nil, false
	}
	if len(req.IDs) == 0 {
		_ = c.JSON(http.StatusBadRequest, map[string]string{"error": "ids is required"})
		return nil, false
	}
	return &req, true
}

// ExportAlerts writes the currently filtered view as a CSV or Excel file.
func (h *APIHandler) ExportAlerts(c echo.Context) error {
	h.store.SetFilters(parseFilters(c))
	rows := h.store.ExportRows()

	format := export.Format(strings.ToLower(c.QueryParam("format")))
	if format == "" {
		format = export.FormatCSV
	}
	filename := "inventory-alerts-" + time.Now().Format("2006-01-02")

	switch format {
	case export.FormatCSV:
		var buf bytes.Buffer
		if err := export.WriteCSV(&buf, rows); err != nil {
			logrus.Errorf("Error exporting alerts as CSV: %v", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to export alerts"})
		}
		c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s.csv", filename))
		return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
	case export.FormatExcel:
		data, err := export.WriteExcel(rows)
		if err != nil {
			logrus.Errorf("Error exporting alerts as Excel: %v", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to export alerts"})
		}
		c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s.xlsx", filename))
		return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
	default:
		return c.JSON(http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("Unsupported export format %q", format)})
	}
}

// GetAlertsByItem returns all alerts referencing one inventory item.
func (h *APIHandler) GetAlertsByItem(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.AlertsByItem(c.Param("itemId")))
}

// GetOverdueAlerts returns all alerts whose expiry deadline has passed.
func (h *APIHandler) GetOverdueAlerts(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.OverdueAlerts())
}

// GetRules returns all rules
func (h *APIHandler) GetRules(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.Rules())
}

// GetRule returns a rule by ID
func (h *APIHandler) GetRule(c echo.Context) error {
	id := c.Param("id")
	rule, err := h.store.Rule(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": fmt.Sprintf("Rule with ID %s not found", id)})
	}
	return c.JSON(http.StatusOK, rule)
}

// CreateRule creates a new rule
func (h *APIHandler) CreateRule(c echo.Context) error {
	var req models.CreateRuleRequest
	if err := c.Bind(&req); err != nil {
		logrus.Errorf("Error binding create rule request: %v", err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}

	// Validate request
	if req.Name == "" || req.AlertType == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Name and alertType are required"})
	}

	rule := h.store.CreateRule(&req)
	return c.JSON(http.StatusCreated, rule)
}

// UpdateRule updates a rule
func (h *APIHandler) UpdateRule(c echo.Context) error {
	id := c.Param("id")
	var req models.UpdateRuleRequest
	if err := c.Bind(&req); err != nil {
		logrus.Errorf("Error binding update rule request: %v", err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}

	rule, err := h.store.UpdateRule(id, &req)
	if err != nil {
		if errors.Is(err, store.ErrRuleNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": fmt.Sprintf("Rule with ID %s not found", id)})
		}
		logrus.Errorf("Error updating rule %s: %v", id, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": fmt.Sprintf("Failed to update rule: %v", err)})
	}
	return c.JSON(http.StatusOK, rule)
}

// DeleteRule deletes a rule
func (h *APIHandler) DeleteRule(c echo.Context) error {
	id := c.Param("id")
	if err := h.store.DeleteRule(id); err != nil {
		if errors.Is(err, store.ErrRuleNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": fmt.Sprintf("Rule with ID %s not found", id)})
		}
		logrus.Errorf("Error deleting rule %s: %v", id, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": fmt.Sprintf("Failed to delete rule: %v", err)})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Rule deleted successfully"})
}

// ToggleRule flips a rule's enabled flag.
func (h *APIHandler) ToggleRule(c echo.Context) error {
	id := c.Param("id")
	rule, err := h.store.ToggleRule(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": fmt.Sprintf("Rule with ID %s not found", id)})
	}
	return c.JSON(http.StatusOK, rule)
}

// alertOpError maps store errors to HTTP responses.
func (h *APIHandler) alertOpError(c echo.Context, id, op string, err error) error {
	switch {
	case errors.Is(err, store.ErrAlertNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": fmt.Sprintf("Alert with ID %s not found", id)})
	case errors.Is(err, store.ErrTerminalState):
		return c.JSON(http.StatusConflict, map[string]string{"error": fmt.Sprintf("Cannot %s alert %s: %v", op, id, err)})
	default:
		logrus.Errorf("Error trying to %s alert %s: %v", op, id, err)
		return c.JSON(http.StatusConflict, map[string]string{"error": fmt.Sprintf("Failed to %s alert: %v", op, err)})
	}
}

// parseFilters builds the filter criteria from the query string.
func parseFilters(c echo.Context) models.AlertFilters {
	f := models.AlertFilters{
		Search:     c.QueryParam("search"),
		Type:       models.AlertType(c.QueryParam("type")),
		Severity:   models.Severity(c.QueryParam("severity")),
		Status:     models.Status(c.QueryParam("status")),
		ItemKind:   models.ItemKind(c.QueryParam("item_kind")),
		Department: c.QueryParam("department"),
		Location:   c.QueryParam("location"),
		AssignedTo: c.QueryParam("assigned_to"),
		Category:   c.QueryParam("category"),

		ActiveOnly:     queryBool(c, "active_only"),
		Unacknowledged: queryBool(c, "unacknowledged"),
		Unresolved:     queryBool(c, "unresolved"),
		CriticalOnly:   queryBool(c, "critical_only"),
		HighPriority:   queryBool(c, "high_priority"),
		ExpiringSoon:   queryBool(c, "expiring_soon"),
		Today:          queryBool(c, "today"),
		ThisWeek:       queryBool(c, "this_week"),
		ThisMonth:      queryBool(c, "this_month"),
		Overdue:        queryBool(c, "overdue"),

		IncludeTags: queryList(c, "tags"),
		ExcludeTags: queryList(c, "exclude_tags"),
	}

	f.CreatedFrom = queryTime(c, "created_from")
	f.CreatedTo = queryTime(c, "created_to")
	f.TriggeredFrom = queryTime(c, "triggered_from")
	f.TriggeredTo = queryTime(c, "triggered_to")
	f.PriorityMin = queryInt(c, "priority_min")
	f.PriorityMax = queryInt(c, "priority_max")

	return f
}

func queryBool(c echo.Context, name string) bool {
	v, _ := strconv.ParseBool(c.QueryParam(name))
	return v
}

func queryInt(c echo.Context, name string) *int {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}

func queryTime(c echo.Context, name string) *time.Time {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil
	}
	return &t
}

func queryList(c echo.Context, name string) []string {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// SetupRoutes sets up the API routes
func (h *APIHandler) SetupRoutes(e *echo.Echo) {
	// Alert endpoints
	e.GET("/api/alerts", h.GetAlerts)
	e.GET("/api/alerts/stats", h.GetStats)
	e.GET("/api/alerts/export", h.ExportAlerts)
	e.GET("/api/alerts/overdue", h.GetOverdueAlerts)
	e.GET("/api/alerts/item/:itemId", h.GetAlertsByItem)
	e.GET("/api/alerts/:id", h.GetAlert)
	e.POST("/api/alerts/refresh", h.Refresh)
	e.POST("/api/alerts/:id/acknowledge", h.AcknowledgeAlert)
	e.POST("/api/alerts/:id/resolve", h.ResolveAlert)
	e.POST("/api/alerts/:id/dismiss", h.DismissAlert)
	e.POST("/api/alerts/:id/snooze", h.SnoozeAlert)
	e.POST("/api/alerts/:id/assign", h.AssignAlert)
	e.POST("/api/alerts/:id/actions", h.AddAction)

	// Bulk endpoints
	e.POST("/api/alerts/bulk/acknowledge", h.BulkAcknowledge)
	e.POST("/api/alerts/bulk/resolve", h.BulkResolve)
	e.POST("/api/alerts/bulk/dismiss", h.BulkDismiss)
	e.POST("/api/alerts/bulk/snooze", h.BulkSnooze)
	e.POST("/api/alerts/bulk/assign", h.BulkAssign)

	// Rule endpoints
	e.GET("/api/rules", h.GetRules)
	e.GET("/api/rules/:id", h.GetRule)
	e.POST("/api/rules", h.CreateRule)
	e.PUT("/api/rules/:id", h.UpdateRule)
	e.DELETE("/api/rules/:id", h.DeleteRule)
	e.POST("/api/rules/:id/toggle", h.ToggleRule)
}
