// models/incentive.go
package models

import "sort"

// EmployeeType selects which incentive table applies.
type EmployeeType string

const (
	EmployeeFullTime EmployeeType = "full"
	EmployeePartTime EmployeeType = "part"
)

// ThresholdTable maps a monthly-sales threshold to a commission percentage.
// Thresholds mean "at least this much"; every table must carry a 0 entry as
// the catch-all floor rate.
type ThresholdTable map[int64]float64

// RateFor returns the percentage of the largest threshold not exceeding
// total. Negative totals match only the 0 entry.
func (t ThresholdTable) RateFor(total float64) float64 {
	if len(t) == 0 {
		return 0
	}

	thresholds := make([]int64, 0, len(t))
	for threshold := range t {
		thresholds = append(thresholds, threshold)
	}
	sort.Slice(thresholds, func(i, j int) bool { return thresholds[i] > thresholds[j] })

	for _, threshold := range thresholds {
		if total >= float64(threshold) {
			return t[threshold]
		}
	}
	return t[0]
}

// EngineConfig is the configuration injected into the engine: the shared
// approval password and the incentive tables for both employee types.
type EngineConfig struct {
	AdminPassword  string
	IncentiveRates map[EmployeeType]ThresholdTable
}

// DefaultIncentiveRates reproduces the studio's standing commission grid.
func DefaultIncentiveRates() map[EmployeeType]ThresholdTable {
	return map[EmployeeType]ThresholdTable{
		EmployeeFullTime: {
			60000000: 10,
			50000000: 8,
			45000000: 7.5,
			40000000: 7,
			35000000: 6.5,
			30000000: 6,
			25000000: 5.5,
			0:        5,
		},
		EmployeePartTime: {
			60000000: 5,
			50000000: 4,
			45000000: 3.75,
			40000000: 3.5,
			35000000: 3.25,
			30000000: 3,
			25000000: 2.75,
			0:        2.5,
		},
	}
}
