package source

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"github.com/meditrack-io/inventory-alert-gateway/pkg/models"
)

const (
	alertsPath = "/api/v1/inventory/alerts"
	rulesPath  = "/api/v1/inventory/alert-rules"
)

// HTTPSource fetches alerts and rules from the upstream inventory API.
type HTTPSource struct {
	client *resty.Client
}

// NewHTTPSource creates an HTTP data source against the given base URL.
// If apiKey is non-empty it is sent as the X-API-Key header.
func NewHTTPSource(baseURL, apiKey string, timeout time.Duration) *HTTPSource {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	if apiKey != "" {
		client.SetHeader("X-API-Key", apiKey)
	}
	return &HTTPSource{client: client}
}

// FetchAlerts returns the full current alert list from the upstream API.
func (s *HTTPSource) FetchAlerts(ctx context.Context) ([]*models.Alert, error) {
	var alerts []*models.Alert
	resp, err := s.client.R().
		SetContext(ctx).
		SetResult(&alerts).
		Get(alertsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch alerts: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to fetch alerts: upstream returned %s", resp.Status())
	}
	logrus.Debugf("Fetched %d alerts from %s", len(alerts), s.client.BaseURL)
	return alerts, nil
}

// FetchRules returns the full current rule list from the upstream API.
func (s *HTTPSource) FetchRules(ctx context.Context) ([]*models.AlertRule, error) {
	var rules []*models.AlertRule
	resp, err := s.client.R().
		SetContext(ctx).
		SetResult(&rules).
		Get(rulesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rules: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to fetch rules: upstream returned %s", resp.Status())
	}
	logrus.Debugf("Fetched %d rules from %s", len(rules), s.client.BaseURL)
	return rules, nil
}
