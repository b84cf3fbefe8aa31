package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/meditrack-io/inventory-alert-gateway/pkg/models"
)

// FileSource reads alert and rule fixtures from JSON files. Used for
// local development and by the simulator output.
type FileSource struct {
	AlertsPath string
	RulesPath  string
}

// NewFileSource creates a file-backed data source. RulesPath may be
// empty, in which case FetchRules returns an empty list.
func NewFileSource(alertsPath, rulesPath string) *FileSource {
	return &FileSource{AlertsPath: alertsPath, RulesPath: rulesPath}
}

// FetchAlerts reads the alert fixture file.
func (s *FileSource) FetchAlerts(_ context.Context) ([]*models.Alert, error) {
	data, err := os.ReadFile(s.AlertsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read alerts file: %w", err)
	}
	var alerts []*models.Alert
	if err := json.Unmarshal(data, &alerts); err != nil {
		return nil, fmt.Errorf("failed to parse alerts file %s: %w", s.AlertsPath, err)
	}
	return alerts, nil
}

// FetchRules reads the rule fixture file.
func (s *FileSource) FetchRules(_ context.Context) ([]*models.AlertRule, error) {
	if s.RulesPath == "" {
		return []*models.AlertRule{}, nil
	}
	data, err := os.ReadFile(s.RulesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}
	var rules []*models.AlertRule
	if err := json.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse rules file %s: %w", s.RulesPath, err)
	}
	return rules, nil
}
