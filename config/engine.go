// config/engine.go
package config

import (
	"encoding/json"
	"os"

	"github.com/neofit/paycalc_backend/models"
)

// LoadEngineConfig builds the configuration injected into the calculation
// engine: the shared admin approval password and the incentive threshold
// tables. ADMIN_PASSWORD is required; INCENTIVE_RATES optionally overrides
// the default grid with JSON of the form
// {"full":{"0":5,"25000000":5.5},"part":{"0":2.5}}.
func LoadEngineConfig() models.EngineConfig {
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		GetLogger().Fatal("ADMIN_PASSWORD environment variable is required")
	}

	cfg := models.EngineConfig{
		AdminPassword:  password,
		IncentiveRates: models.DefaultIncentiveRates(),
	}

	if raw := os.Getenv("INCENTIVE_RATES"); raw != "" {
		var override map[models.EmployeeType]models.ThresholdTable
		if err := json.Unmarshal([]byte(raw), &override); err != nil {
			GetLogger().Fatalf("Invalid INCENTIVE_RATES JSON: %v", err)
		}
		for employeeType, table := range override {
			if _, ok := table[0]; !ok {
				GetLogger().Fatalf("INCENTIVE_RATES table for %q is missing the 0 threshold entry", employeeType)
			}
			cfg.IncentiveRates[employeeType] = table
		}
	}

	return cfg
}
