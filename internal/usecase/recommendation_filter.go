package usecase

import (
	"strings"

	"github.com/cafeassist/backend/internal/domain"
)

// MaxRecommendations is the presentation cap on returned products
const MaxRecommendations = 5

// RecommendationFilter selects catalog products that satisfy an intent
type RecommendationFilter struct {
	limit int
}

// NewRecommendationFilter creates a filter capped at MaxRecommendations
func NewRecommendationFilter() *RecommendationFilter {
	return &RecommendationFilter{limit: MaxRecommendations}
}

// Filter returns up to MaxRecommendations products that match the intent,
// preserving their order in the input. It never mutates products.
func (f *RecommendationFilter) Filter(intent domain.IntentRecord, products []domain.Product) []domain.Product {
	result := make([]domain.Product, 0, f.limit)

	for _, p := range products {
		if len(result) == f.limit {
			break
		}
		if Matches(intent, p) {
			result = append(result, p)
		}
	}

	return result
}

// Matches applies the per-product checks in order, stopping at the first failure
func Matches(intent domain.IntentRecord, p domain.Product) bool {
	if intent.Categories.Len() > 0 && !intent.Categories.Has(CanonicalCategory(p.Category)) {
		return false
	}

	labels := domain.NewLabelSet(p.Labels...)

	for l := range labels {
		if intent.ExcludeLabels.Has(l) {
			return false
		}
	}

	if intent.Vegan && !labels.Has(veganProductLabel) {
		return false
	}

	if intent.SugarFree && !hasAnyLabel(labels, sugarFreeProductLabels) {
		return false
	}

	if intent.LowCalorie && !labels.Has(lowCalorieProductLabel) {
		return false
	}

	return true
}

// CanonicalCategory maps a raw catalog category name to a canonical category.
// Names that match no keyword map to CategoryOther.
func CanonicalCategory(raw string) domain.Category {
	c := strings.ToLower(strings.TrimSpace(raw))
	if c == "" {
		return domain.CategoryOther
	}

	for _, ck := range categoryKeywords {
		if containsAny(c, ck.keywords) {
			return ck.category
		}
	}
	return domain.CategoryOther
}

func hasAnyLabel(labels domain.LabelSet, want []string) bool {
	for _, w := range want {
		if labels.Has(w) {
			return true
		}
	}
	return false
}
