package services

import (
	"context"
	"slices"
	"strings"

	"dish-delivery-service/internal/domain"

	"golang.org/x/sync/errgroup"
)

// RankerConfig holds optional gates applied before ranking. Zero values
// disable a gate: by default a zero-coverage shop is still rankable, so
// NoShopsAvailable fires only on an empty catalog.
type RankerConfig struct {
	// MaxDistanceKm excludes shops farther than this from the origin.
	MaxDistanceKm float64
	// MinCoveragePercent excludes shops below this coverage.
	MinCoveragePercent float64
}

// Bound on the per-shop scoring fan-out.
const scoreConcurrency = 8

// RankShops scores every candidate shop against the required ingredient
// list and returns results sorted by coverage (descending), distance
// from origin (ascending), then shop id. The ordering is total, so
// repeated calls over identical input always select the same shop.
//
// Scoring is pure per shop and runs concurrently with a bounded fan-out.
func RankShops(
	ctx context.Context,
	required []domain.IngredientRequirement,
	shops []*domain.Shop,
	origin domain.GeoPoint,
	cfg RankerConfig,
) []*domain.MatchResult {
	scored := make([]*domain.MatchResult, len(shops))

	var g errgroup.Group
	g.SetLimit(scoreConcurrency)

	for i, shop := range shops {
		i, shop := i, shop
		g.Go(func() error {
			scored[i] = scoreShop(required, shop, origin, cfg)
			return nil
		})
	}
	// Scoring never returns an error; Wait is only a join point.
	_ = g.Wait()

	ranked := make([]*domain.MatchResult, 0, len(scored))
	for _, r := range scored {
		if r != nil {
			ranked = append(ranked, r)
		}
	}

	slices.SortFunc(ranked, func(a, b *domain.MatchResult) int {
		if a.CoveragePercent != b.CoveragePercent {
			if a.CoveragePercent > b.CoveragePercent {
				return -1
			}
			return 1
		}
		if a.DistanceKm != b.DistanceKm {
			if a.DistanceKm < b.DistanceKm {
				return -1
			}
			return 1
		}
		// Tie-breaker ensures deterministic ordering when score and
		// distance are equal.
		return strings.Compare(a.Shop.ID, b.Shop.ID)
	})

	return ranked
}

// scoreShop computes one shop's MatchResult, or nil when a configured
// gate excludes the shop.
func scoreShop(
	required []domain.IngredientRequirement,
	shop *domain.Shop,
	origin domain.GeoPoint,
	cfg RankerConfig,
) *domain.MatchResult {
	distance := domain.DistanceKm(origin, shop.Location)
	if cfg.MaxDistanceKm > 0 && distance > cfg.MaxDistanceKm {
		return nil
	}

	available, missing := MatchIngredients(required, shop.Inventory)
	coverage := CoveragePercent(len(available), len(required))
	if cfg.MinCoveragePercent > 0 && coverage < cfg.MinCoveragePercent {
		return nil
	}

	return &domain.MatchResult{
		Shop:            shop,
		CoveragePercent: coverage,
		Available:       available,
		Missing:         missing,
		DistanceKm:      distance,
	}
}

// SelectBestShop returns the head of an already-ranked list, or a
// NoShopsAvailable failure when nothing ranked.
func SelectBestShop(ranked []*domain.MatchResult) (*domain.MatchResult, error) {
	if len(ranked) == 0 {
		return nil, newFailure(FailureNoShopsAvailable, "no shops available for matching")
	}
	return ranked[0], nil
}
