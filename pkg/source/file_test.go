package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meditrack-io/inventory-alert-gateway/pkg/models"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestFileSourceFetchAlerts(t *testing.T) {
	path := writeFixture(t, "alerts.json", `[
		{
			"id": "a1",
			"type": "low_stock",
			"severity": "critical",
			"status": "active",
			"itemName": "Dipirona 500mg",
			"priority": 9
		}
	]`)
	src := NewFileSource(path, "")

	alerts, err := src.FetchAlerts(context.Background())
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "a1", alerts[0].ID)
	assert.Equal(t, models.AlertTypeLowStock, alerts[0].Type)
	assert.Equal(t, models.SeverityCritical, alerts[0].Severity)
	assert.Equal(t, 9, alerts[0].Priority)
}

func TestFileSourceMissingAlertsFile(t *testing.T) {
	src := NewFileSource(filepath.Join(t.TempDir(), "absent.json"), "")
	_, err := src.FetchAlerts(context.Background())
	assert.Error(t, err)
}

func TestFileSourceMalformedAlerts(t *testing.T) {
	path := writeFixture(t, "alerts.json", `{"not": "a list"}`)
	src := NewFileSource(path, "")
	_, err := src.FetchAlerts(context.Background())
	assert.Error(t, err)
}

func TestFileSourceEmptyRulesPath(t *testing.T) {
	src := NewFileSource("unused.json", "")
	rules, err := src.FetchRules(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rules)
}

func TestFileSourceFetchRules(t *testing.T) {
	path := writeFixture(t, "rules.json", `[
		{
			"id": "r1",
			"name": "Low stock on pharmacy meds",
			"enabled": true,
			"alertType": "low_stock"
		}
	]`)
	src := NewFileSource("unused.json", path)

	rules, err := src.FetchRules(context.Background())
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "r1", rules[0].ID)
	assert.True(t, rules[0].Enabled)
}
