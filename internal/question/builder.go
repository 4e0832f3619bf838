// Package question turns a selected term into a presentable multiple-choice
// question.
package question

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"slang-quiz-service/internal/models"
)

// OptionCount is the fixed number of answer options per question: one
// correct definition plus three distractors.
const OptionCount = 4

// DistractorSource supplies wrong-answer candidates. FindDistractors reads
// the curated pool for a category/difficulty pair; FindDefinitions is the
// fallback that borrows definitions from other terms when the pool is thin.
type DistractorSource interface {
	FindDistractors(ctx context.Context, category, difficulty string) ([]string, error)
	FindDefinitions(ctx context.Context, category, difficulty, excludeTermID string, limit int) ([]string, error)
}

type Builder struct {
	source DistractorSource
	rand   *rand.Rand
}

func NewBuilder(source DistractorSource) *Builder {
	return &Builder{
		source: source,
		rand:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Build assembles the pending question for a term: prompt, masked context
// hint and four shuffled options. The correct option ID is recorded on the
// pending question only; callers must hand the client the stripped
// Question() view.
func (b *Builder) Build(ctx context.Context, term *models.Term) (*models.PendingQuestion, error) {
	distractors, err := b.collectDistractors(ctx, term)
	if err != nil {
		return nil, err
	}

	texts := append([]string{term.Definition}, distractors...)
	b.rand.Shuffle(len(texts), func(i, j int) {
		texts[i], texts[j] = texts[j], texts[i]
	})

	options := make([]models.Option, len(texts))
	correctOptionID := ""
	for i, text := range texts {
		id := fmt.Sprintf("opt_%d", i+1)
		options[i] = models.Option{ID: id, Text: text}
		if text == term.Definition {
			correctOptionID = id
		}
	}

	explanation := term.Explanation
	if explanation == "" {
		explanation = term.Definition
	}

	return &models.PendingQuestion{
		QuestionID:      primitive.NewObjectID().Hex(),
		TermID:          term.ID,
		Prompt:          fmt.Sprintf("What does %q mean?", term.Text),
		ContextHint:     maskTerm(term.Example, term.Text),
		Options:         options,
		CorrectOptionID: correctOptionID,
		Explanation:     explanation,
	}, nil
}

// collectDistractors gathers three wrong answers distinct from each other
// and from the correct definition, preferring the curated pool and falling
// back to other terms' definitions.
func (b *Builder) collectDistractors(ctx context.Context, term *models.Term) ([]string, error) {
	const needed = OptionCount - 1

	pool, err := b.source.FindDistractors(ctx, term.Category, term.Difficulty)
	if err != nil {
		return nil, fmt.Errorf("failed to load distractor pool: %w", err)
	}

	picked := b.pickDistinct(pool, term.Definition, nil, needed)
	if len(picked) < needed {
		fallback, err := b.source.FindDefinitions(ctx, term.Category, term.Difficulty, term.ID, needed*3)
		if err != nil {
			return nil, fmt.Errorf("failed to load fallback definitions: %w", err)
		}
		picked = append(picked, b.pickDistinct(fallback, term.Definition, picked, needed-len(picked))...)
	}

	if len(picked) < needed {
		return nil, fmt.Errorf("not enough distractors for term %s (%s/%s)", term.ID, term.Category, term.Difficulty)
	}
	return picked, nil
}

// pickDistinct draws up to count entries from candidates in random order,
// skipping the correct answer and anything already taken.
func (b *Builder) pickDistinct(candidates []string, correct string, taken []string, count int) []string {
	if count <= 0 || len(candidates) == 0 {
		return nil
	}

	used := make(map[string]bool, len(taken)+1)
	used[strings.TrimSpace(correct)] = true
	for _, t := range taken {
		used[strings.TrimSpace(t)] = true
	}

	shuffled := make([]string, len(candidates))
	copy(shuffled, candidates)
	b.rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	picked := make([]string, 0, count)
	for _, candidate := range shuffled {
		key := strings.TrimSpace(candidate)
		if key == "" || used[key] {
			continue
		}
		picked = append(picked, candidate)
		used[key] = true
		if len(picked) == count {
			break
		}
	}
	return picked
}

// maskTerm blanks the term out of its example sentence so the hint does not
// give the answer away.
func maskTerm(example, term string) string {
	if example == "" || term == "" {
		return example
	}
	masked := strings.ReplaceAll(example, term, "____")
	lower := strings.ToLower(term)
	if lower != term {
		masked = strings.ReplaceAll(masked, lower, "____")
	}
	title := strings.ToUpper(term[:1]) + term[1:]
	if title != term {
		masked = strings.ReplaceAll(masked, title, "____")
	}
	return masked
}
