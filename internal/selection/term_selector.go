package selection

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"slang-quiz-service/internal/models"
)

// TermSelector picks the next quiz term from the term bank, weighted toward
// fresher terms and never repeating a term already used in the session.
type TermSelector struct {
	source TermSource
	weight WeightFunc
	rand   *rand.Rand
}

func NewTermSelector(source TermSource) *TermSelector {
	return &TermSelector{
		source: source,
		weight: FreshnessWeight,
		rand:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetWeightFunc swaps the weighting strategy. Passing nil restores the
// default freshness weighting.
func (s *TermSelector) SetWeightFunc(fn WeightFunc) {
	if fn == nil {
		fn = FreshnessWeight
	}
	s.weight = fn
}

// Next selects one term for the given tier, excluding IDs already used in
// the session. Returns ErrNoEligibleTerms when the pool is exhausted.
func (s *TermSelector) Next(ctx context.Context, difficulty, category string, excludeIDs []string) (*models.Term, error) {
	terms, err := s.source.FindEligible(ctx, difficulty, category, excludeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load eligible terms: %w", err)
	}
	if len(terms) == 0 {
		return nil, ErrNoEligibleTerms
	}

	weighted := s.calculateWeights(terms)
	picked := s.weightedRandomPick(weighted)
	return &picked, nil
}

func (s *TermSelector) calculateWeights(terms []models.Term) []WeightedTerm {
	weighted := make([]WeightedTerm, 0, len(terms))
	for _, term := range terms {
		weighted = append(weighted, WeightedTerm{
			Term:   term,
			Weight: s.weight(term.QuizScore),
		})
	}
	return weighted
}

// weightedRandomPick draws one term proportionally to its weight. When no
// scoring signal is available (all weights zero) it falls back to a uniform
// choice.
func (s *TermSelector) weightedRandomPick(weighted []WeightedTerm) models.Term {
	totalWeight := 0.0
	for _, wt := range weighted {
		totalWeight += wt.Weight
	}

	if totalWeight == 0 {
		return weighted[s.rand.Intn(len(weighted))].Term
	}

	r := s.rand.Float64() * totalWeight
	cumulative := 0.0
	for _, wt := range weighted {
		cumulative += wt.Weight
		if r <= cumulative {
			return wt.Term
		}
	}

	// Float rounding can leave r a hair past the last cumulative sum.
	return weighted[len(weighted)-1].Term
}
