// calc/incentive.go
package calc

import "github.com/neofit/paycalc_backend/models"

// IncentiveRate looks up the commission percentage for a monthly total and
// employee type. Pure: the rate is recomputed from the table on every call,
// so callers can never observe a rate carried over from a different
// employee type or total.
func IncentiveRate(monthTotal float64, employeeType models.EmployeeType, cfg models.EngineConfig) float64 {
	table, ok := cfg.IncentiveRates[employeeType]
	if !ok {
		return 0
	}
	return table.RateFor(monthTotal)
}

// IncentiveAmount computes the commission payout for a monthly total.
func IncentiveAmount(monthTotal float64, employeeType models.EmployeeType, cfg models.EngineConfig) float64 {
	return monthTotal * IncentiveRate(monthTotal, employeeType, cfg) / 100
}
