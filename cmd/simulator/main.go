// Command simulator writes alert and rule fixture files that the
// gateway can serve through its file data source. Useful for local
// development and demos without the upstream inventory API.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/meditrack-io/inventory-alert-gateway/pkg/models"
)

var items = []struct {
	Name     string
	Code     string
	Category string
	Kind     models.ItemKind
}{
	{"Dipirona 500mg", "MED-0451", "Analgesics", models.ItemKindMedication},
	{"Amoxicilina 875mg", "MED-0112", "Antibiotics", models.ItemKindMedication},
	{"Omeprazol 20mg", "MED-0298", "Gastric", models.ItemKindMedication},
	{"Insulina NPH", "MED-0733", "Hormones", models.ItemKindMedication},
	{"Soro Fisiologico 0.9% 500ml", "SUP-1021", "Fluids", models.ItemKindSupply},
	{"Luva Cirurgica M", "SUP-1187", "PPE", models.ItemKindSupply},
	{"Seringa 10ml", "SUP-1303", "Disposables", models.ItemKindSupply},
	{"Monitor Multiparametrico", "EQP-2044", "Monitoring", models.ItemKindEquipment},
	{"Bomba de Infusao", "EQP-2101", "Infusion", models.ItemKindEquipment},
}

var departments = []string{"Emergency", "ICU", "Surgery", "Pharmacy", "Pediatrics"}
var locations = []string{"Central Pharmacy", "Ward A Storage", "Ward B Storage", "OR Supply Room", "Cold Chain Unit"}

var alertShapes = []struct {
	Type     models.AlertType
	Severity models.Severity
	Urgency  models.Urgency
	Priority int
	Title    string
}{
	{models.AlertTypeLowStock, models.SeverityHigh, models.UrgencyWithinDay, 7, "Stock below minimum"},
	{models.AlertTypeOutOfStock, models.SeverityCritical, models.UrgencyImmediate, 10, "Item out of stock"},
	{models.AlertTypeExpiring, models.SeverityMedium, models.UrgencyWithinWeek, 5, "Batch expiring soon"},
	{models.AlertTypeExpired, models.SeverityHigh, models.UrgencyWithinHour, 8, "Expired batch in stock"},
	{models.AlertTypeReorderPoint, models.SeverityLow, models.UrgencyWhenPossible, 3, "Reorder point reached"},
	{models.AlertTypeQualityIssue, models.SeverityCritical, models.UrgencyImmediate, 9, "Quality issue reported"},
}

func main() {
	count := flag.Int("count", 40, "number of alerts to generate")
	alertsOut := flag.String("alerts", "alerts.json", "output path for the alert fixture")
	rulesOut := flag.String("rules", "rules.json", "output path for the rule fixture")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	now := time.Now()

	alerts := make([]*models.Alert, 0, *count)
	for i := 0; i < *count; i++ {
		item := items[rng.Intn(len(items))]
		shape := alertShapes[rng.Intn(len(alertShapes))]
		created := now.Add(-time.Duration(rng.Intn(30*24)) * time.Hour)

		current := float64(rng.Intn(50))
		threshold := current + float64(rng.Intn(100)+10)

		alert := &models.Alert{
			ID:           uuid.New().String(),
			Type:         shape.Type,
			Severity:     shape.Severity,
			Status:       models.StatusActive,
			ItemID:       uuid.New().String(),
			ItemCode:     item.Code,
			ItemName:     item.Name,
			ItemCategory: item.Category,
			ItemKind:     item.Kind,
			Title:        shape.Title,
			Message:      fmt.Sprintf("%s: %s", shape.Title, item.Name),
			CurrentValue: &current,
			ThresholdValue: &threshold,
			Location:     locations[rng.Intn(len(locations))],
			Department:   departments[rng.Intn(len(departments))],
			CreatedAt:    created,
			TriggeredAt:  created,
			Priority:     shape.Priority,
			Urgency:      shape.Urgency,
			Metadata: models.AlertMetadata{
				BatchNumber:       fmt.Sprintf("B%05d", rng.Intn(99999)),
				SupplierName:      "MedSupply Distribuidora",
				ConsumptionRate:   float64(rng.Intn(20) + 1),
				DaysUntilStockout: rng.Intn(14),
				CostImpact:        float64(rng.Intn(5000)) / 10,
			},
			Tags: []string{string(item.Kind), departments[rng.Intn(len(departments))]},
		}

		// Age a third of the alerts through the lifecycle so the
		// dashboard has something besides active records.
		switch rng.Intn(3) {
		case 1:
			ackAt := created.Add(time.Duration(rng.Intn(120)+5) * time.Minute)
			alert.Status = models.StatusAcknowledged
			alert.AcknowledgedAt = &ackAt
			alert.AcknowledgedBy = "pharmacist.silva"
		case 2:
			ackAt := created.Add(time.Duration(rng.Intn(120)+5) * time.Minute)
			resAt := ackAt.Add(time.Duration(rng.Intn(48)+1) * time.Hour)
			alert.Status = models.StatusResolved
			alert.AcknowledgedAt = &ackAt
			alert.AcknowledgedBy = "pharmacist.silva"
			alert.ResolvedAt = &resAt
			alert.ResolvedBy = "supervisor.costa"
		}

		alerts = append(alerts, alert)
	}

	low := 20.0
	expDays := 30
	rules := []*models.AlertRule{
		{
			ID:             uuid.New().String(),
			Name:           "Low stock - medications",
			Description:    "Raise when any medication drops below its minimum stock level",
			Enabled:        true,
			ItemKind:       models.ItemKindMedication,
			Thresholds:     models.RuleThresholds{LowStock: &low},
			AlertType:      models.AlertTypeLowStock,
			Severity:       models.SeverityHigh,
			Priority:       7,
			Urgency:        models.UrgencyWithinDay,
			NotifyUsers:    []string{"pharmacist.silva"},
			Channels:       []string{"email", "dashboard"},
			CheckFrequency: models.CheckHourly,
			SnoozeOptions:  []int{30, 60, 240},
			CreatedAt:      now,
			LastUpdated:    now,
			CreatedBy:      "admin",
		},
		{
			ID:             uuid.New().String(),
			Name:           "Expiring batches",
			Description:    "Raise when a batch expires within 30 days",
			Enabled:        true,
			Thresholds:     models.RuleThresholds{ExpirationDays: &expDays},
			AlertType:      models.AlertTypeExpiring,
			Severity:       models.SeverityMedium,
			Priority:       5,
			Urgency:        models.UrgencyWithinWeek,
			Channels:       []string{"dashboard"},
			CheckFrequency: models.CheckDaily,
			CreatedAt:      now,
			LastUpdated:    now,
			CreatedBy:      "admin",
		},
	}

	if err := writeJSON(*alertsOut, alerts); err != nil {
		logrus.Fatalf("Failed to write alerts fixture: %v", err)
	}
	if err := writeJSON(*rulesOut, rules); err != nil {
		logrus.Fatalf("Failed to write rules fixture: %v", err)
	}
	logrus.Infof("Wrote %d alerts to %s and %d rules to %s", len(alerts), *alertsOut, len(rules), *rulesOut)
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
