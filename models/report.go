// models/report.go
package models

// Category is one of the fixed sales classification buckets.
type Category string

const (
	CategoryGymMembership    Category = "gym_membership"
	CategoryFlagshipProgram  Category = "flagship_program"
	CategoryPersonalTraining Category = "personal_training"
	CategoryPilates          Category = "pilates"
	CategoryGearLocker       Category = "gear_locker"
	// CategoryMisc is the fallback bucket for unclassified items and
	// reconciliation shortfall.
	CategoryMisc Category = "misc"
)

// CategoryKeys lists every bucket in display order. Reports always carry
// all six keys, zero-filled.
var CategoryKeys = []Category{
	CategoryGymMembership,
	CategoryFlagshipProgram,
	CategoryPersonalTraining,
	CategoryPilates,
	CategoryGearLocker,
	CategoryMisc,
}

// NewCategoryTotals returns a zero-filled bucket map with all six keys.
func NewCategoryTotals() map[Category]float64 {
	totals := make(map[Category]float64, len(CategoryKeys))
	for _, key := range CategoryKeys {
		totals[key] = 0
	}
	return totals
}

// WeekBucket is a contiguous run of up to 7 day numbers within a month.
// Total sums the approved days' amounts in the run.
type WeekBucket struct {
	Days  []int   `json:"days"`
	Total float64 `json:"total"`
}

// MonthlyReport is the derived aggregate for one calendar month.
// Recomputed on demand, never persisted.
type MonthlyReport struct {
	Year       int                  `json:"year"`
	Month      int                  `json:"month"`
	Weeks      []WeekBucket         `json:"weeks"`
	Total      float64              `json:"total"`
	Categories map[Category]float64 `json:"categories"`
}

// MonthOverview is one point of the trailing-months trend series.
type MonthOverview struct {
	Key        string               `json:"key"` // YYYY-MM
	Year       int                  `json:"year"`
	Month      int                  `json:"month"`
	Total      float64              `json:"total"`
	Categories map[Category]float64 `json:"categories"`
}

// IncentiveReport is the payslip summary for one month and employee type.
type IncentiveReport struct {
	Year         int          `json:"year"`
	Month        int          `json:"month"`
	EmployeeType EmployeeType `json:"employeeType"`
	MonthTotal   float64      `json:"monthTotal"`
	Rate         float64      `json:"rate"`
	Amount       float64      `json:"amount"`
}
