package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"slang-quiz-service/internal/models"
)

const dayFormat = "2006-01-02"

// HistoryService folds finished sessions into lifetime statistics and
// enforces the daily quiz-attempt quota.
type HistoryService struct {
	store  HistoryStore
	logger *zap.Logger
	now    func() time.Time
}

func NewHistoryService(store HistoryStore, logger *zap.Logger) *HistoryService {
	return &HistoryService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

func (s *HistoryService) today() string {
	return s.now().UTC().Format(dayFormat)
}

// RecordSession aggregates one finished session. The caller guarantees
// at-most-once invocation per session.
func (s *HistoryService) RecordSession(ctx context.Context, res *models.QuizResult) error {
	if err := s.store.RecordSession(ctx, res, s.today()); err != nil {
		return err
	}
	s.logger.Info("session folded into history",
		zap.String("user_id", res.UserID),
		zap.String("session_id", res.SessionID),
		zap.Int("score", res.Score),
		zap.String("completion_type", res.CompletionType),
	)
	return nil
}

// CheckDailyCap returns ErrDailyLimitReached when the user has no attempts
// left today. A negative cap means unlimited.
func (s *HistoryService) CheckDailyCap(ctx context.Context, userID string) error {
	cap, err := s.store.DailyCap(ctx, userID)
	if err != nil {
		return err
	}
	if cap < 0 {
		return nil
	}
	count, err := s.store.DailyQuizCount(ctx, userID, s.today())
	if err != nil {
		return err
	}
	if count >= cap {
		return ErrDailyLimitReached
	}
	return nil
}

// GetSummary returns the caller-facing lifetime stats plus quota state.
func (s *HistoryService) GetSummary(ctx context.Context, userID string) (*models.HistorySummary, error) {
	record, err := s.store.Find(ctx, userID)
	if err != nil {
		return nil, err
	}
	cap, err := s.store.DailyCap(ctx, userID)
	if err != nil {
		return nil, err
	}

	quizzesToday := record.QuizzesToday
	if record.LastQuizDay != s.today() {
		quizzesToday = 0
	}

	return &models.HistorySummary{
		TotalQuizzes:   record.TotalQuizzes,
		TotalCorrect:   record.TotalCorrect,
		TotalQuestions: record.TotalQuestions,
		BestScore:      record.BestScore,
		AverageScore:   record.AverageScore,
		QuizzesToday:   quizzesToday,
		DailyCap:       cap,
		CanTakeQuiz:    cap < 0 || quizzesToday < cap,
	}, nil
}
