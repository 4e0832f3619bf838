package service

import (
	"context"

	"slang-quiz-service/internal/models"
)

// SessionStore is the conditional-create/TTL key-value store holding active
// sessions. Find methods return (nil, nil) for missing records so callers
// can distinguish absence from store failure.
type SessionStore interface {
	FindByID(ctx context.Context, sessionID string) (*models.QuizSession, error)
	FindActiveByUser(ctx context.Context, userID string) (*models.QuizSession, error)
	// CreateForUser claims the user's single active-session slot. When the
	// claim already exists, created is false and existingID names the
	// session that won the race.
	CreateForUser(ctx context.Context, session *models.QuizSession) (created bool, existingID string, err error)
	Update(ctx context.Context, session *models.QuizSession) error
	// ReleaseUser drops the claim iff it still points at sessionID; the
	// true result is observed by exactly one caller per session.
	ReleaseUser(ctx context.Context, userID, sessionID string) (bool, error)
	Delete(ctx context.Context, sessionID string) error
}

// TermPicker selects the next quiz term, never repeating an excluded ID.
type TermPicker interface {
	Next(ctx context.Context, difficulty, category string, excludeIDs []string) (*models.Term, error)
}

// QuestionBuilder turns a term into a pending question with shuffled
// options and server-side answer data.
type QuestionBuilder interface {
	Build(ctx context.Context, term *models.Term) (*models.PendingQuestion, error)
}

// HistoryStore persists lifetime aggregates and answers usage questions.
// day parameters are UTC date strings ("2006-01-02") supplied by the
// history service so the store stays clock-free.
type HistoryStore interface {
	Find(ctx context.Context, userID string) (*models.QuizHistoryRecord, error)
	RecordSession(ctx context.Context, res *models.QuizResult, day string) error
	DailyQuizCount(ctx context.Context, userID, day string) (int, error)
	DailyCap(ctx context.Context, userID string) (int, error)
}

// AnswerLog records accepted submissions for audit.
type AnswerLog interface {
	Append(ctx context.Context, answer *models.AnswerRecord) error
}

// EventSink publishes lifecycle events. May be left nil on the services,
// in which case no events are emitted.
type EventSink interface {
	Publish(eventType string, payload any) error
}
