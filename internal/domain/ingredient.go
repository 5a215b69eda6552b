package domain

import "strings"

// One line of a dish's required ingredient list, produced by the
// upstream recipe service and consumed read-only here. Quantity and Unit
// are optional pass-through values; matching uses only the name.
type IngredientRequirement struct {
	Name     string
	Quantity *float64
	Unit     string
}

// NormalizeIngredient lowercases and trims an ingredient name for
// comparison. Producers are not required to pre-normalize; all matching
// happens against the normalized form.
func NormalizeIngredient(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NewInventory builds a normalized ingredient-name set. Empty names are
// dropped; duplicates collapse under normalization.
func NewInventory(items []string) map[string]struct{} {
	inv := make(map[string]struct{}, len(items))
	for _, item := range items {
		n := NormalizeIngredient(item)
		if n == "" {
			continue
		}
		inv[n] = struct{}{}
	}
	return inv
}
