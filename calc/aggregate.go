// calc/aggregate.go
package calc

import (
	"fmt"
	"time"

	"github.com/neofit/paycalc_backend/models"
)

// DateKey formats a calendar day as the zero-padded YYYY-MM-DD storage key.
func DateKey(year int, month time.Month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
}

// DaysInMonth returns the day count of a calendar month, leap-aware.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// recordFor looks up a day in the snapshot, falling back to the implicit
// empty record so missing days contribute exactly zero everywhere.
func recordFor(records map[string]models.DailyRecord, dateKey string) models.DailyRecord {
	if record, ok := records[dateKey]; ok {
		return record
	}
	return models.EmptyDailyRecord(dateKey)
}

// AggregateMonth folds one month's records into week buckets, a monthly
// total and a category breakdown. Only approved days contribute; pending
// and missing days are wholly excluded.
//
// Week buckets partition the month into sequential 7-day chunks (the last
// chunk may be shorter) and sum the raw settled amounts. The month total
// and categories come from per-day reconciliation, so a day with no settled
// amount but itemized details still counts its categorized sum.
func AggregateMonth(records map[string]models.DailyRecord, year int, month time.Month) models.MonthlyReport {
	report := models.MonthlyReport{
		Year:       year,
		Month:      int(month),
		Weeks:      []models.WeekBucket{},
		Categories: models.NewCategoryTotals(),
	}

	daysInMonth := DaysInMonth(year, month)
	currentWeek := make([]int, 0, 7)
	weekTotal := 0.0

	for day := 1; day <= daysInMonth; day++ {
		record := recordFor(records, DateKey(year, month, day))

		if record.Approved {
			weekTotal += NormalizeAmount(record.Amount)

			dayCategories, effectiveTotal := Reconcile(record)
			for key, value := range dayCategories {
				report.Categories[key] += value
			}
			report.Total += effectiveTotal
		}

		currentWeek = append(currentWeek, day)
		if len(currentWeek) == 7 || day == daysInMonth {
			report.Weeks = append(report.Weeks, models.WeekBucket{
				Days:  append([]int(nil), currentWeek...),
				Total: weekTotal,
			})
			currentWeek = currentWeek[:0]
			weekTotal = 0
		}
	}

	return report
}

// CurrentWeekTotal sums approved amounts over the 7-day window containing
// today, anchored at today minus today's weekday and clipped to the current
// month's day range.
func CurrentWeekTotal(records map[string]models.DailyRecord, today time.Time) float64 {
	year, month := today.Year(), today.Month()
	daysInMonth := DaysInMonth(year, month)
	startOfWeek := today.Day() - int(today.Weekday())

	total := 0.0
	for i := 0; i < 7; i++ {
		day := startOfWeek + i
		if day < 1 || day > daysInMonth {
			continue
		}
		record := recordFor(records, DateKey(year, month, day))
		if record.Approved {
			total += NormalizeAmount(record.Amount)
		}
	}
	return total
}

// TrailingMonths aggregates the month ending at (year, month) plus the
// preceding count-1 months, oldest first. Each month is computed
// independently over its own day range; time.Date normalizes offsets across
// year boundaries.
func TrailingMonths(records map[string]models.DailyRecord, year int, month time.Month, count int) []models.MonthOverview {
	overviews := make([]models.MonthOverview, 0, count)
	for offset := -(count - 1); offset <= 0; offset++ {
		base := time.Date(year, month+time.Month(offset), 1, 0, 0, 0, 0, time.UTC)
		report := AggregateMonth(records, base.Year(), base.Month())
		overviews = append(overviews, models.MonthOverview{
			Key:        fmt.Sprintf("%04d-%02d", base.Year(), int(base.Month())),
			Year:       base.Year(),
			Month:      int(base.Month()),
			Total:      report.Total,
			Categories: report.Categories,
		})
	}
	return overviews
}
