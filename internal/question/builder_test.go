package question

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"slang-quiz-service/internal/models"
)

type stubDistractorSource struct {
	pool        []string
	definitions []string
}

func (s *stubDistractorSource) FindDistractors(ctx context.Context, category, difficulty string) ([]string, error) {
	return s.pool, nil
}

func (s *stubDistractorSource) FindDefinitions(ctx context.Context, category, difficulty, excludeTermID string, limit int) ([]string, error) {
	if limit > len(s.definitions) {
		limit = len(s.definitions)
	}
	return s.definitions[:limit], nil
}

func testTerm() *models.Term {
	return &models.Term{
		ID:          "t1",
		Text:        "ghosting",
		Definition:  "cutting off all contact without explanation",
		Example:     "She was ghosting him after the second date.",
		Explanation: "Ghosting means disappearing from someone's life without notice.",
		Category:    "dating",
		Difficulty:  "beginner",
	}
}

func TestBuildProducesFourDistinctOptions(t *testing.T) {
	builder := NewBuilder(&stubDistractorSource{
		pool: []string{
			"a kind of pasta dish",
			"being extremely tired",
			"a celebratory dance",
			"cutting off all contact without explanation", // duplicate of correct, must be skipped
			"a kind of pasta dish",                        // duplicate entry, must be skipped
		},
	})

	pending, err := builder.Build(context.Background(), testTerm())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(pending.Options) != OptionCount {
		t.Fatalf("expected %d options, got %d", OptionCount, len(pending.Options))
	}

	seen := map[string]bool{}
	correctSeen := 0
	for _, opt := range pending.Options {
		if seen[opt.Text] {
			t.Errorf("duplicate option text %q", opt.Text)
		}
		seen[opt.Text] = true
		if opt.ID == pending.CorrectOptionID {
			correctSeen++
			if opt.Text != testTerm().Definition {
				t.Errorf("correct option text = %q, want the definition", opt.Text)
			}
		}
	}
	if correctSeen != 1 {
		t.Errorf("expected exactly one correct option, got %d", correctSeen)
	}
}

func TestBuildFallsBackToDefinitions(t *testing.T) {
	builder := NewBuilder(&stubDistractorSource{
		pool: []string{"being extremely tired"},
		definitions: []string{
			"a sudden burst of energy",
			"an overly dramatic reaction",
			"being extremely tired", // already taken from the pool
		},
	})

	pending, err := builder.Build(context.Background(), testTerm())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pending.Options) != OptionCount {
		t.Fatalf("expected %d options, got %d", OptionCount, len(pending.Options))
	}
}

func TestBuildFailsWithoutEnoughDistractors(t *testing.T) {
	builder := NewBuilder(&stubDistractorSource{
		pool:        []string{"being extremely tired"},
		definitions: nil,
	})

	if _, err := builder.Build(context.Background(), testTerm()); err == nil {
		t.Fatal("expected an error when distractors cannot be assembled")
	}
}

func TestBuildMasksTermInContextHint(t *testing.T) {
	builder := NewBuilder(&stubDistractorSource{
		pool: []string{"one", "two", "three"},
	})

	pending, err := builder.Build(context.Background(), testTerm())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(strings.ToLower(pending.ContextHint), "ghosting") {
		t.Errorf("context hint leaks the term: %q", pending.ContextHint)
	}
}

func TestClientQuestionOmitsAnswerData(t *testing.T) {
	builder := NewBuilder(&stubDistractorSource{
		pool: []string{"one", "two", "three"},
	})

	pending, err := builder.Build(context.Background(), testTerm())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	payload, err := json.Marshal(pending.Question())
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	body := string(payload)
	if strings.Contains(body, "correct_option_id") || strings.Contains(body, pending.Explanation) {
		t.Errorf("client payload leaks answer data: %s", body)
	}
}
