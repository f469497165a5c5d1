package calc

import (
	"math"
	"testing"

	"github.com/neofit/paycalc_backend/models"
)

func TestReconcile_ShortfallGoesToMisc(t *testing.T) {
	t.Parallel()

	// Itemized sum 80000 below the settled 100000: no scaling, the
	// 20000 gap lands in misc.
	record := models.DailyRecord{
		Date:   "2025-03-10",
		Amount: 100000,
		Details: []models.SaleDetail{
			{ID: "a", Price: 40000, Category: "pilates"},
			{ID: "b", Price: 40000, Category: "gym"},
		},
	}

	totals, effective := Reconcile(record)
	if effective != 100000 {
		t.Fatalf("effective total = %v, want 100000", effective)
	}
	if totals[models.CategoryPilates] != 40000 {
		t.Fatalf("pilates = %v, want 40000", totals[models.CategoryPilates])
	}
	if totals[models.CategoryGymMembership] != 40000 {
		t.Fatalf("gym = %v, want 40000", totals[models.CategoryGymMembership])
	}
	if totals[models.CategoryMisc] != 20000 {
		t.Fatalf("misc = %v, want 20000", totals[models.CategoryMisc])
	}
}

func TestReconcile_OversoldDetailsScaleDown(t *testing.T) {
	t.Parallel()

	// Itemized 100000 against a settled 50000: every category shrinks by
	// 0.5 and nothing is added to misc.
	record := models.DailyRecord{
		Date:   "2025-03-11",
		Amount: 50000,
		Details: []models.SaleDetail{
			{ID: "a", Price: 50000, Category: "pt"},
			{ID: "b", Price: 50000, Category: "pilates"},
		},
	}

	totals, effective := Reconcile(record)
	if effective != 50000 {
		t.Fatalf("effective total = %v, want 50000", effective)
	}
	if totals[models.CategoryPersonalTraining] != 25000 {
		t.Fatalf("pt = %v, want 25000", totals[models.CategoryPersonalTraining])
	}
	if totals[models.CategoryPilates] != 25000 {
		t.Fatalf("pilates = %v, want 25000", totals[models.CategoryPilates])
	}
	if totals[models.CategoryMisc] != 0 {
		t.Fatalf("misc = %v, want 0", totals[models.CategoryMisc])
	}
}

func TestReconcile_ZeroAmountUsesCategorizedSum(t *testing.T) {
	t.Parallel()

	record := models.DailyRecord{
		Date:   "2025-03-12",
		Amount: 0,
		Details: []models.SaleDetail{
			{ID: "a", Price: 30000, Category: "pt"},
		},
	}

	totals, effective := Reconcile(record)
	if effective != 30000 {
		t.Fatalf("effective total = %v, want 30000", effective)
	}
	if totals[models.CategoryPersonalTraining] != 30000 {
		t.Fatalf("pt = %v, want 30000", totals[models.CategoryPersonalTraining])
	}
}

func TestReconcile_NoDetailsAllMisc(t *testing.T) {
	t.Parallel()

	record := models.DailyRecord{Date: "2025-03-13", Amount: 75000}
	totals, effective := Reconcile(record)
	if effective != 75000 {
		t.Fatalf("effective total = %v, want 75000", effective)
	}
	if totals[models.CategoryMisc] != 75000 {
		t.Fatalf("misc = %v, want 75000", totals[models.CategoryMisc])
	}
}

func TestReconcile_EmptyDayContributesNothing(t *testing.T) {
	t.Parallel()

	totals, effective := Reconcile(models.EmptyDailyRecord("2025-03-14"))
	if effective != 0 {
		t.Fatalf("effective total = %v, want 0", effective)
	}
	for key, value := range totals {
		if value != 0 {
			t.Fatalf("category %s = %v, want 0", key, value)
		}
	}
	if len(totals) != len(models.CategoryKeys) {
		t.Fatalf("expected all %d category keys, got %d", len(models.CategoryKeys), len(totals))
	}
}

func TestReconcile_ZeroPriceDetailsSkipped(t *testing.T) {
	t.Parallel()

	record := models.DailyRecord{
		Date:   "2025-03-15",
		Amount: 0,
		Details: []models.SaleDetail{
			{ID: "a", Price: 0, Category: "pilates"},
		},
	}
	totals, effective := Reconcile(record)
	if effective != 0 || totals[models.CategoryPilates] != 0 {
		t.Fatalf("zero-price detail contributed: totals=%v effective=%v", totals, effective)
	}
}

func TestReconcile_Idempotent(t *testing.T) {
	t.Parallel()

	record := models.DailyRecord{
		Date:   "2025-03-16",
		Amount: 90000,
		Details: []models.SaleDetail{
			{ID: "a", Price: 40000, Product: "필라테스 이용권"},
			{ID: "b", Price: 30000, Product: "헬스권"},
		},
	}

	first, firstTotal := Reconcile(record)
	second, secondTotal := Reconcile(record)
	if firstTotal != secondTotal {
		t.Fatalf("effective totals differ: %v vs %v", firstTotal, secondTotal)
	}
	for key := range first {
		if first[key] != second[key] {
			t.Fatalf("category %s differs across runs: %v vs %v", key, first[key], second[key])
		}
	}
}

func TestReconcile_CategorySumNeverExceedsAmount(t *testing.T) {
	t.Parallel()

	records := []models.DailyRecord{
		{Amount: 100000, Details: []models.SaleDetail{
			{ID: "a", Price: 120000, Product: "PT 10회"},
			{ID: "b", Price: 45000, Product: "필라테스"},
		}},
		{Amount: 300000, Details: []models.SaleDetail{
			{ID: "a", Price: 50000, Product: "락커"},
		}},
		{Amount: 50, Details: []models.SaleDetail{
			{ID: "a", Price: 49.7, Product: "기타"},
		}},
	}
	for _, record := range records {
		totals, _ := Reconcile(record)
		sum := 0.0
		for _, value := range totals {
			sum += value
		}
		if sum > NormalizeAmount(record.Amount)+0.5 || math.IsNaN(sum) {
			t.Fatalf("category sum %v exceeds amount %v", sum, record.Amount)
		}
	}
}
