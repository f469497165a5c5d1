// calc/classifier.go
package calc

import (
	"strings"

	"github.com/neofit/paycalc_backend/models"
)

// categoryAliases maps a normalized explicit tag to its bucket. Explicit
// tags are trusted over free-text inference, so exact alias hits win before
// any keyword matching. Korean aliases come from live entry data.
var categoryAliases = map[string]models.Category{
	"health":          models.CategoryGymMembership,
	"헬스":              models.CategoryGymMembership,
	"헬스 이용권":          models.CategoryGymMembership,
	"헬스권":             models.CategoryGymMembership,
	"gym":             models.CategoryGymMembership,
	"fitness":         models.CategoryGymMembership,
	"membership":      models.CategoryGymMembership,
	"neofit":          models.CategoryFlagshipProgram,
	"네오핏":             models.CategoryFlagshipProgram,
	"pt":              models.CategoryPersonalTraining,
	"피티":              models.CategoryPersonalTraining,
	"1:1 pt":          models.CategoryPersonalTraining,
	"personal":        models.CategoryPersonalTraining,
	"training":        models.CategoryPersonalTraining,
	"trainer":         models.CategoryPersonalTraining,
	"pilates":         models.CategoryPilates,
	"필라테스":            models.CategoryPilates,
	"필라테스 이용권":        models.CategoryPilates,
	"clothing":        models.CategoryGearLocker,
	"locker":          models.CategoryGearLocker,
	"storage":         models.CategoryGearLocker,
	"gear":            models.CategoryGearLocker,
	"apparel":         models.CategoryGearLocker,
	"운동복":             models.CategoryGearLocker,
	"락커":              models.CategoryGearLocker,
	"운동복/락커":          models.CategoryGearLocker,
	"etc":             models.CategoryMisc,
	"misc":            models.CategoryMisc,
	"기타":              models.CategoryMisc,
}

// keywordRule tests a lowercased product name against one category's
// keywords. matchers run in ruleOrder; the first hit wins.
type keywordRule struct {
	category models.Category
	match    func(name string) bool
}

// productRules is the classification precedence for free-text product
// names. PT must outrank the month-count gym heuristic or a "PT 3개월" sale
// files as a plain membership; pilates outranks everything because pilates
// passes are the one product line reported separately.
var productRules = []keywordRule{
	{models.CategoryPilates, func(name string) bool {
		return strings.Contains(name, "필라테스") || strings.Contains(name, "pilates")
	}},
	{models.CategoryFlagshipProgram, func(name string) bool {
		return strings.Contains(name, "네오핏") || strings.Contains(name, "neofit")
	}},
	{models.CategoryPersonalTraining, func(name string) bool {
		return strings.Contains(name, "pt") ||
			strings.Contains(name, "피티") ||
			strings.Contains(name, "personal") ||
			strings.Contains(name, "트레이닝") ||
			strings.Contains(name, "개인")
	}},
	{models.CategoryGymMembership, func(name string) bool {
		if strings.Contains(name, "헬스") {
			return true
		}
		// A month-count marker reads as a membership term unless the name
		// also matches a pilates or gear keyword.
		return strings.Contains(name, "개월") &&
			!strings.Contains(name, "필라테스") &&
			!strings.Contains(name, "운동복") &&
			!strings.Contains(name, "락커")
	}},
	{models.CategoryGearLocker, func(name string) bool {
		return strings.Contains(name, "운동복") ||
			strings.Contains(name, "락커") ||
			strings.Contains(name, "locker") ||
			strings.Contains(name, "보관함") ||
			strings.Contains(name, "보관") ||
			strings.Contains(name, "apparel") ||
			strings.Contains(name, "gear")
	}},
}

// Classify maps a sale detail to its category bucket. Explicit tags first
// (alias table, then substring fallbacks on the tag), then the ordered
// keyword rules on the product name, then the misc fallback.
func Classify(detail models.SaleDetail) models.Category {
	tag := strings.ToLower(strings.TrimSpace(detail.Category))
	if tag != "" {
		if mapped, ok := categoryAliases[tag]; ok {
			return mapped
		}
		if strings.Contains(tag, "pilates") {
			return models.CategoryPilates
		}
		if strings.Contains(tag, "neo") {
			return models.CategoryFlagshipProgram
		}
		if strings.Contains(tag, "pt") || strings.Contains(tag, "trainer") {
			return models.CategoryPersonalTraining
		}
		if strings.Contains(tag, "health") || strings.Contains(tag, "fitness") {
			return models.CategoryGymMembership
		}
	}

	name := strings.ToLower(strings.TrimSpace(detail.Product))
	if name == "" {
		return models.CategoryMisc
	}

	for _, rule := range productRules {
		if rule.match(name) {
			return rule.category
		}
	}
	return models.CategoryMisc
}
