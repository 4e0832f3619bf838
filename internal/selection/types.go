package selection

import (
	"context"
	"errors"

	"slang-quiz-service/internal/models"
)

// ErrNoEligibleTerms is returned when the eligible pool minus the exclusion
// set is empty for the requested tier.
var ErrNoEligibleTerms = errors.New("no eligible terms for selection")

// TermSource supplies candidate terms. Satisfied by the Mongo term
// repository in production and by fixtures in tests.
type TermSource interface {
	FindEligible(ctx context.Context, difficulty, category string, excludeIDs []string) ([]models.Term, error)
}

// WeightFunc maps a term's historical quiz score to a selection weight.
// The quiz score is a calibration signal maintained by the term bank:
// higher means the term has been over-tested recently. The exact weighting
// is a tuning knob, so it lives behind this type rather than inside the
// session manager.
type WeightFunc func(quizScore float64) float64

// FreshnessWeight is the default weighting: inverse in the quiz score, so
// over-tested terms surface less often. A zero or missing score yields the
// maximum weight of 1.
func FreshnessWeight(quizScore float64) float64 {
	if quizScore < 0 {
		quizScore = 0
	}
	return 1 / (1 + quizScore)
}

// WeightedTerm pairs a candidate with its computed selection weight.
type WeightedTerm struct {
	Term   models.Term `json:"term"`
	Weight float64     `json:"weight"`
}
