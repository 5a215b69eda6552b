package services

import "dish-delivery-service/internal/domain"

// MatchIngredients partitions required into (available, missing) by
// exact match of normalized names against the shop inventory set.
//
// Each requirement entry is matched independently: the check is for
// presence, not consumption, so duplicate entries in required can all be
// satisfied by a single inventory name. The two returned slices always
// partition required exactly, preserving input order.
func MatchIngredients(
	required []domain.IngredientRequirement,
	inventory map[string]struct{},
) (available, missing []domain.IngredientRequirement) {
	available = make([]domain.IngredientRequirement, 0, len(required))
	missing = make([]domain.IngredientRequirement, 0)

	for _, req := range required {
		if _, ok := inventory[domain.NormalizeIngredient(req.Name)]; ok {
			available = append(available, req)
		} else {
			missing = append(missing, req)
		}
	}

	return available, missing
}

// CoveragePercent returns 100 * available / required, or 0 for an empty
// required list. Callers reject empty lists before matching; the zero
// return keeps the function total.
func CoveragePercent(availableCount, requiredCount int) float64 {
	if requiredCount == 0 {
		return 0
	}
	return 100 * float64(availableCount) / float64(requiredCount)
}
