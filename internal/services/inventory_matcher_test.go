package services

import (
	"testing"

	"dish-delivery-service/internal/domain"
)

func TestMatchIngredientsPartition(t *testing.T) {
	required := []domain.IngredientRequirement{
		{Name: "Tomato"},
		{Name: "  basil "},
		{Name: "rare-spice"},
	}
	inventory := domain.NewInventory([]string{"tomato", "basil", "cheese"})

	available, missing := MatchIngredients(required, inventory)

	if len(available) != 2 {
		t.Fatalf("available = %d, want 2", len(available))
	}
	if available[0].Name != "Tomato" || available[1].Name != "  basil " {
		t.Errorf("available entries lost or reordered: %v", available)
	}
	if len(missing) != 1 || missing[0].Name != "rare-spice" {
		t.Fatalf("missing = %v, want [rare-spice]", missing)
	}

	// The partition must be exhaustive and disjoint.
	if len(available)+len(missing) != len(required) {
		t.Fatalf("partition size %d, want %d", len(available)+len(missing), len(required))
	}
}

func TestMatchIngredientsDuplicatesMatchIndependently(t *testing.T) {
	required := []domain.IngredientRequirement{
		{Name: "tomato"},
		{Name: "tomato"},
	}
	inventory := domain.NewInventory([]string{"tomato"})

	available, missing := MatchIngredients(required, inventory)
	if len(available) != 2 {
		t.Fatalf("available = %d, want 2 (presence, not consumption)", len(available))
	}
	if len(missing) != 0 {
		t.Fatalf("missing = %d, want 0", len(missing))
	}
}

func TestCoverageMonotonicUnderGrowingInventory(t *testing.T) {
	required := []domain.IngredientRequirement{
		{Name: "tomato"}, {Name: "basil"}, {Name: "cheese"}, {Name: "flour"},
	}

	items := []string{"tomato", "basil", "cheese", "flour"}
	prev := -1.0
	for i := 0; i <= len(items); i++ {
		inventory := domain.NewInventory(items[:i])
		available, _ := MatchIngredients(required, inventory)
		cov := CoveragePercent(len(available), len(required))
		if cov < prev {
			t.Fatalf("coverage decreased from %v to %v with inventory %v", prev, cov, items[:i])
		}
		prev = cov
	}
	if prev != 100 {
		t.Fatalf("final coverage = %v, want 100", prev)
	}
}

func TestCoveragePercentEmptyRequired(t *testing.T) {
	if cov := CoveragePercent(0, 0); cov != 0 {
		t.Fatalf("CoveragePercent(0, 0) = %v, want 0", cov)
	}
}
