package calc

import (
	"testing"
	"time"

	"github.com/neofit/paycalc_backend/models"
)

func approvedDay(dateKey string, amount float64, details ...models.SaleDetail) models.DailyRecord {
	return models.DailyRecord{Date: dateKey, Amount: amount, Approved: true, Details: details}
}

func TestAggregateMonth_OnlyApprovedDaysCount(t *testing.T) {
	t.Parallel()

	records := map[string]models.DailyRecord{
		"2025-03-01": approvedDay("2025-03-01", 100000),
		"2025-03-02": {Date: "2025-03-02", Amount: 999999, Approved: false},
		"2025-03-15": approvedDay("2025-03-15", 250000),
	}

	report := AggregateMonth(records, 2025, time.March)
	if report.Total != 350000 {
		t.Fatalf("month total = %v, want 350000", report.Total)
	}

	// Changing an unapproved day's amount must not move the total.
	records["2025-03-02"] = models.DailyRecord{Date: "2025-03-02", Amount: 5, Approved: false}
	if got := AggregateMonth(records, 2025, time.March).Total; got != 350000 {
		t.Fatalf("month total moved with unapproved amount: %v", got)
	}
}

func TestAggregateMonth_WeekBucketsPartitionMonth(t *testing.T) {
	t.Parallel()

	cases := []struct {
		year  int
		month time.Month
		days  int
	}{
		{2025, time.March, 31},
		{2024, time.February, 29}, // leap year
		{2025, time.February, 28},
		{2025, time.April, 30},
	}

	for _, tc := range cases {
		report := AggregateMonth(nil, tc.year, tc.month)

		seen := make(map[int]bool)
		previous := 0
		for _, week := range report.Weeks {
			if len(week.Days) == 0 || len(week.Days) > 7 {
				t.Fatalf("%d-%d: week size %d out of range", tc.year, tc.month, len(week.Days))
			}
			for _, day := range week.Days {
				if day != previous+1 {
					t.Fatalf("%d-%d: day %d follows %d", tc.year, tc.month, day, previous)
				}
				if seen[day] {
					t.Fatalf("%d-%d: day %d bucketed twice", tc.year, tc.month, day)
				}
				seen[day] = true
				previous = day
			}
		}
		if previous != tc.days {
			t.Fatalf("%d-%d: buckets end at %d, want %d", tc.year, tc.month, previous, tc.days)
		}
	}
}

func TestAggregateMonth_WeekTotalsUseRawAmounts(t *testing.T) {
	t.Parallel()

	records := map[string]models.DailyRecord{
		"2025-03-03": approvedDay("2025-03-03", 100000),
		"2025-03-05": {Date: "2025-03-05", Amount: 70000, Approved: false},
		"2025-03-10": approvedDay("2025-03-10", 40000),
		// Approved day with no settled amount: its itemized sum joins the
		// month total but not the week total.
		"2025-03-04": approvedDay("2025-03-04", 0, models.SaleDetail{ID: "a", Price: 30000, Category: "pt"}),
	}

	report := AggregateMonth(records, 2025, time.March)
	if report.Weeks[0].Total != 100000 {
		t.Fatalf("week 1 total = %v, want 100000", report.Weeks[0].Total)
	}
	if report.Weeks[1].Total != 40000 {
		t.Fatalf("week 2 total = %v, want 40000", report.Weeks[1].Total)
	}
	if report.Total != 170000 {
		t.Fatalf("month total = %v, want 170000", report.Total)
	}
	if report.Categories[models.CategoryPersonalTraining] != 30000 {
		t.Fatalf("pt category = %v, want 30000", report.Categories[models.CategoryPersonalTraining])
	}
}

func TestAggregateMonth_CategoriesSumAcrossDays(t *testing.T) {
	t.Parallel()

	records := map[string]models.DailyRecord{
		"2025-03-01": approvedDay("2025-03-01", 100000,
			models.SaleDetail{ID: "a", Price: 40000, Category: "pilates"},
			models.SaleDetail{ID: "b", Price: 40000, Category: "gym"},
		),
		"2025-03-02": approvedDay("2025-03-02", 60000,
			models.SaleDetail{ID: "c", Price: 60000, Category: "pilates"},
		),
	}

	report := AggregateMonth(records, 2025, time.March)
	if report.Categories[models.CategoryPilates] != 100000 {
		t.Fatalf("pilates = %v, want 100000", report.Categories[models.CategoryPilates])
	}
	if report.Categories[models.CategoryGymMembership] != 40000 {
		t.Fatalf("gym = %v, want 40000", report.Categories[models.CategoryGymMembership])
	}
	if report.Categories[models.CategoryMisc] != 20000 {
		t.Fatalf("misc = %v, want 20000", report.Categories[models.CategoryMisc])
	}
}

func TestCurrentWeekTotal_ClipsToMonth(t *testing.T) {
	t.Parallel()

	// Sunday 2025-03-02 anchors the window at days 2..8.
	records := map[string]models.DailyRecord{
		"2025-03-01": approvedDay("2025-03-01", 999999), // before the window
		"2025-03-02": approvedDay("2025-03-02", 10000),
		"2025-03-08": approvedDay("2025-03-08", 20000),
		"2025-03-09": approvedDay("2025-03-09", 999999), // after the window
	}
	today := time.Date(2025, time.March, 2, 12, 0, 0, 0, time.UTC)
	if got := CurrentWeekTotal(records, today); got != 30000 {
		t.Fatalf("week total on sunday = %v, want 30000", got)
	}

	// Saturday 2025-03-08 shares the same window start.
	today = time.Date(2025, time.March, 8, 12, 0, 0, 0, time.UTC)
	if got := CurrentWeekTotal(records, today); got != 30000 {
		t.Fatalf("week total on saturday = %v, want 30000", got)
	}

	// Early-month weekdays clip the leading out-of-month days.
	records = map[string]models.DailyRecord{
		"2025-05-01": approvedDay("2025-05-01", 5000),
		"2025-05-02": approvedDay("2025-05-02", 7000),
	}
	// Thursday 2025-05-01: window start is 1-4 = -3, clipped to day 1.
	today = time.Date(2025, time.May, 1, 9, 0, 0, 0, time.UTC)
	if got := CurrentWeekTotal(records, today); got != 12000 {
		t.Fatalf("clipped week total = %v, want 12000", got)
	}
}

func TestTrailingMonths_IndependentAndYearAware(t *testing.T) {
	t.Parallel()

	records := map[string]models.DailyRecord{
		"2024-12-10": approvedDay("2024-12-10", 80000),
		"2025-01-05": approvedDay("2025-01-05", 50000),
		"2025-02-14": {Date: "2025-02-14", Amount: 999999, Approved: false},
	}

	series := TrailingMonths(records, 2025, time.February, 6)
	if len(series) != 6 {
		t.Fatalf("series length = %d, want 6", len(series))
	}
	if series[0].Key != "2024-09" || series[5].Key != "2025-02" {
		t.Fatalf("series spans %s..%s, want 2024-09..2025-02", series[0].Key, series[5].Key)
	}

	byKey := make(map[string]models.MonthOverview)
	for _, overview := range series {
		byKey[overview.Key] = overview
	}
	if byKey["2024-12"].Total != 80000 {
		t.Fatalf("2024-12 total = %v, want 80000", byKey["2024-12"].Total)
	}
	if byKey["2025-01"].Total != 50000 {
		t.Fatalf("2025-01 total = %v, want 50000", byKey["2025-01"].Total)
	}
	if byKey["2025-02"].Total != 0 {
		t.Fatalf("2025-02 total = %v, want 0 (unapproved only)", byKey["2025-02"].Total)
	}
}

func TestDaysInMonth(t *testing.T) {
	t.Parallel()

	cases := []struct {
		year     int
		month    time.Month
		expected int
	}{
		{2024, time.February, 29},
		{2025, time.February, 28},
		{2000, time.February, 29},
		{1900, time.February, 28},
		{2025, time.December, 31},
	}
	for _, tc := range cases {
		if got := DaysInMonth(tc.year, tc.month); got != tc.expected {
			t.Fatalf("DaysInMonth(%d, %d) = %d, want %d", tc.year, tc.month, got, tc.expected)
		}
	}
}
