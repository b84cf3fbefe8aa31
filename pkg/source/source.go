// Package source abstracts where alert and rule records come from.
// The store consumes the DataSource interface so tests and local
// development can swap the upstream inventory API for fixtures.
package source

import (
	"context"

	"github.com/meditrack-io/inventory-alert-gateway/pkg/models"
)

// DataSource returns the full current alert and rule lists. Records are
// assumed to arrive pre-validated; the store performs no schema checks.
type DataSource interface {
	FetchAlerts(ctx context.Context) ([]*models.Alert, error)
	FetchRules(ctx context.Context) ([]*models.AlertRule, error)
}
