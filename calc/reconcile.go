// calc/reconcile.go
package calc

import "github.com/neofit/paycalc_backend/models"

// Reconcile resolves one day's itemized category breakdown against the
// day's authoritative settled total. It returns the per-category amounts
// (all six keys, zero-filled) and the day's effective total for
// aggregation.
//
// The settled Amount may include unitemized sales, so category attribution
// must never exceed it: when the itemized sum is larger the categories are
// scaled down proportionally, and when it is smaller the gap is parked in
// misc. The scaling never inflates known categories.
func Reconcile(record models.DailyRecord) (map[models.Category]float64, float64) {
	dayTotal := NormalizeAmount(record.Amount)

	itemized := make(map[models.Category]float64)
	for _, detail := range record.Details {
		price := NormalizeAmount(detail.Price)
		if price == 0 {
			continue
		}
		itemized[Classify(detail)] += price
	}

	categorizedSum := 0.0
	for _, value := range itemized {
		categorizedSum += value
	}

	totals := models.NewCategoryTotals()

	switch {
	case dayTotal > 0 && categorizedSum > 0:
		scalingFactor := 1.0
		if dayTotal < categorizedSum {
			scalingFactor = dayTotal / categorizedSum
		}

		scaledSum := 0.0
		for key, value := range itemized {
			adjusted := value * scalingFactor
			totals[key] += adjusted
			scaledSum += adjusted
		}

		if remainder := dayTotal - scaledSum; remainder > 0.5 {
			totals[models.CategoryMisc] += remainder
		}
		return totals, dayTotal

	case dayTotal > 0:
		totals[models.CategoryMisc] += dayTotal
		return totals, dayTotal

	case categorizedSum > 0:
		// No settled amount on record: the itemized sum stands in as the
		// day's effective total, uncapped.
		for key, value := range itemized {
			totals[key] += value
		}
		return totals, categorizedSum

	default:
		return totals, 0
	}
}
