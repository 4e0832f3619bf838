package selection

import (
	"context"
	"errors"
	"testing"

	"slang-quiz-service/internal/models"
)

type stubTermSource struct {
	terms []models.Term
	err   error
}

func (s *stubTermSource) FindEligible(ctx context.Context, difficulty, category string, excludeIDs []string) ([]models.Term, error) {
	if s.err != nil {
		return nil, s.err
	}
	excluded := make(map[string]bool, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = true
	}
	var out []models.Term
	for _, term := range s.terms {
		if term.Difficulty != difficulty || excluded[term.ID] {
			continue
		}
		if category != "" && term.Category != category {
			continue
		}
		out = append(out, term)
	}
	return out, nil
}

func TestNextExcludesUsedTerms(t *testing.T) {
	source := &stubTermSource{terms: []models.Term{
		{ID: "t1", Difficulty: "beginner"},
		{ID: "t2", Difficulty: "beginner"},
		{ID: "t3", Difficulty: "beginner"},
	}}
	selector := NewTermSelector(source)

	for i := 0; i < 50; i++ {
		term, err := selector.Next(context.Background(), "beginner", "", []string{"t1", "t3"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if term.ID != "t2" {
			t.Fatalf("expected only t2 to be eligible, got %s", term.ID)
		}
	}
}

func TestNextExhaustedPool(t *testing.T) {
	source := &stubTermSource{terms: []models.Term{
		{ID: "t1", Difficulty: "beginner"},
	}}
	selector := NewTermSelector(source)

	_, err := selector.Next(context.Background(), "beginner", "", []string{"t1"})
	if !errors.Is(err, ErrNoEligibleTerms) {
		t.Fatalf("expected ErrNoEligibleTerms, got %v", err)
	}
}

func TestNextPrefersFreshTerms(t *testing.T) {
	// t_fresh has no quiz score, t_stale is heavily over-tested; over many
	// draws the fresh term must dominate.
	source := &stubTermSource{terms: []models.Term{
		{ID: "t_fresh", Difficulty: "beginner", QuizScore: 0},
		{ID: "t_stale", Difficulty: "beginner", QuizScore: 99},
	}}
	selector := NewTermSelector(source)

	freshCount := 0
	const draws = 500
	for i := 0; i < draws; i++ {
		term, err := selector.Next(context.Background(), "beginner", "", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if term.ID == "t_fresh" {
			freshCount++
		}
	}

	// Expected fresh share is 1 / (1 + 1/100) ≈ 99%; anything below 90%
	// would indicate the weighting is not applied.
	if freshCount < draws*9/10 {
		t.Errorf("fresh term drawn %d/%d times, expected heavy preference", freshCount, draws)
	}
}

func TestNextUniformFallbackWithoutSignal(t *testing.T) {
	source := &stubTermSource{terms: []models.Term{
		{ID: "t1", Difficulty: "advanced"},
		{ID: "t2", Difficulty: "advanced"},
	}}
	selector := NewTermSelector(source)
	selector.SetWeightFunc(func(float64) float64 { return 0 })

	seen := map[string]int{}
	for i := 0; i < 200; i++ {
		term, err := selector.Next(context.Background(), "advanced", "", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		seen[term.ID]++
	}
	if seen["t1"] == 0 || seen["t2"] == 0 {
		t.Errorf("uniform fallback never drew one of the terms: %v", seen)
	}
}

func TestNextCategoryFilter(t *testing.T) {
	source := &stubTermSource{terms: []models.Term{
		{ID: "t1", Difficulty: "beginner", Category: "internet"},
		{ID: "t2", Difficulty: "beginner", Category: "street"},
	}}
	selector := NewTermSelector(source)

	term, err := selector.Next(context.Background(), "beginner", "street", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if term.ID != "t2" {
		t.Errorf("expected category filter to pick t2, got %s", term.ID)
	}
}
