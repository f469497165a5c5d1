// calc/normalize.go
package calc

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/neofit/paycalc_backend/models"
)

// NormalizeAmount coerces an arbitrary stored value into a finite money
// amount. Upstream data is inconsistently typed (numbers, "1,234,000원"
// strings, stray objects), so this never fails: anything that cannot be
// read as a finite number becomes 0. It is the single point of truth for
// stored amounts, shared by the aggregation engine and the repair endpoint.
func NormalizeAmount(value interface{}) float64 {
	switch v := value.(type) {
	case nil:
		return 0
	case bool:
		return 0
	case float64:
		return finiteOrZero(v)
	case float32:
		return finiteOrZero(float64(v))
	case int:
		return float64(v)
	case int8:
		return float64(v)
	case int16:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case uint:
		return float64(v)
	case uint8:
		return float64(v)
	case uint16:
		return float64(v)
	case uint32:
		return float64(v)
	case uint64:
		return float64(v)
	case string:
		return parseNumericText(v)
	default:
		return parseNumericText(fmt.Sprint(v))
	}
}

// NormalizeDetails returns a copy of details with every price normalized.
func NormalizeDetails(details []models.SaleDetail) []models.SaleDetail {
	normalized := make([]models.SaleDetail, len(details))
	for i, detail := range details {
		detail.Price = NormalizeAmount(detail.Price)
		normalized[i] = detail
	}
	return normalized
}

// parseNumericText strips everything that is not a digit, '.' or '-' and
// parses the remainder.
func parseNumericText(text string) float64 {
	var cleaned strings.Builder
	for _, r := range text {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			cleaned.WriteRune(r)
		}
	}
	if cleaned.Len() == 0 {
		return 0
	}

	numeric, err := strconv.ParseFloat(cleaned.String(), 64)
	if err != nil {
		return 0
	}
	return finiteOrZero(numeric)
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
