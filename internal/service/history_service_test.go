package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"slang-quiz-service/internal/models"
)

func newHistoryHarness() (*HistoryService, *memHistoryStore, *time.Time) {
	store := newMemHistoryStore()
	svc := NewHistoryService(store, zap.NewNop())
	clock := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }
	return svc, store, &clock
}

func TestRecordSessionAggregates(t *testing.T) {
	svc, store, _ := newHistoryHarness()
	ctx := context.Background()

	results := []models.QuizResult{
		{UserID: "u1", SessionID: "s1", Score: 12, CorrectCount: 3, TotalQuestions: 5},
		{UserID: "u1", SessionID: "s2", Score: 30, CorrectCount: 5, TotalQuestions: 5},
		{UserID: "u1", SessionID: "s3", Score: 18, CorrectCount: 4, TotalQuestions: 6},
	}
	for i := range results {
		if err := svc.RecordSession(ctx, &results[i]); err != nil {
			t.Fatalf("RecordSession %d failed: %v", i, err)
		}
	}

	record, _ := store.Find(ctx, "u1")
	if record.TotalQuizzes != 3 {
		t.Errorf("totalQuizzes = %d, want 3", record.TotalQuizzes)
	}
	if record.TotalCorrect != 12 || record.TotalQuestions != 16 {
		t.Errorf("lifetime totals = %d/%d, want 12/16", record.TotalCorrect, record.TotalQuestions)
	}
	if record.BestScore != 30 {
		t.Errorf("bestScore = %d, want 30", record.BestScore)
	}
	if record.AverageScore != 20 {
		t.Errorf("averageScore = %v, want 20", record.AverageScore)
	}
	if record.QuizzesToday != 3 {
		t.Errorf("quizzesToday = %d, want 3", record.QuizzesToday)
	}
}

func TestDailyCounterResetsAtDayBoundary(t *testing.T) {
	svc, store, clock := newHistoryHarness()
	ctx := context.Background()

	res := models.QuizResult{UserID: "u1", Score: 5, CorrectCount: 1, TotalQuestions: 2}
	if err := svc.RecordSession(ctx, &res); err != nil {
		t.Fatalf("RecordSession failed: %v", err)
	}

	*clock = clock.Add(24 * time.Hour)
	if err := svc.RecordSession(ctx, &res); err != nil {
		t.Fatalf("RecordSession failed: %v", err)
	}

	record, _ := store.Find(ctx, "u1")
	if record.QuizzesToday != 1 {
		t.Errorf("quizzesToday = %d after day rollover, want 1", record.QuizzesToday)
	}
	if record.TotalQuizzes != 2 {
		t.Errorf("totalQuizzes = %d, want 2 (lifetime totals survive the reset)", record.TotalQuizzes)
	}
}

func TestCheckDailyCap(t *testing.T) {
	svc, store, _ := newHistoryHarness()
	ctx := context.Background()
	store.caps["free-user"] = 2
	store.caps["premium-user"] = -1

	res := models.QuizResult{UserID: "free-user", Score: 5, CorrectCount: 1, TotalQuestions: 2}
	for i := 0; i < 2; i++ {
		if err := svc.CheckDailyCap(ctx, "free-user"); err != nil {
			t.Fatalf("cap check %d failed: %v", i, err)
		}
		if err := svc.RecordSession(ctx, &res); err != nil {
			t.Fatalf("RecordSession %d failed: %v", i, err)
		}
	}

	if err := svc.CheckDailyCap(ctx, "free-user"); !errors.Is(err, ErrDailyLimitReached) {
		t.Errorf("expected ErrDailyLimitReached at cap, got %v", err)
	}
	if err := svc.CheckDailyCap(ctx, "premium-user"); err != nil {
		t.Errorf("premium user should be uncapped, got %v", err)
	}
}

func TestGetSummary(t *testing.T) {
	svc, store, clock := newHistoryHarness()
	ctx := context.Background()
	store.caps["u1"] = 5

	res := models.QuizResult{UserID: "u1", Score: 14, CorrectCount: 4, TotalQuestions: 5}
	if err := svc.RecordSession(ctx, &res); err != nil {
		t.Fatalf("RecordSession failed: %v", err)
	}

	summary, err := svc.GetSummary(ctx, "u1")
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}
	if summary.QuizzesToday != 1 || !summary.CanTakeQuiz {
		t.Errorf("summary = %+v, want quizzesToday 1 and canTakeQuiz true", summary)
	}
	if summary.BestScore != 14 {
		t.Errorf("bestScore = %d, want 14", summary.BestScore)
	}

	// Yesterday's counter reads as zero without a write.
	*clock = clock.Add(24 * time.Hour)
	summary, err = svc.GetSummary(ctx, "u1")
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}
	if summary.QuizzesToday != 0 {
		t.Errorf("quizzesToday = %d on the next day, want 0", summary.QuizzesToday)
	}
}

func TestGetSummaryFreshUser(t *testing.T) {
	svc, _, _ := newHistoryHarness()
	summary, err := svc.GetSummary(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}
	if summary.TotalQuizzes != 0 || !summary.CanTakeQuiz {
		t.Errorf("fresh user summary = %+v, want empty stats and canTakeQuiz", summary)
	}
}
