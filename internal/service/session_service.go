package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"slang-quiz-service/internal/models"
	"slang-quiz-service/internal/scoring"
	"slang-quiz-service/internal/selection"
)

// Lifecycle event routing keys.
const (
	EventSessionStarted   = "quiz.session.started"
	EventAnswerSubmitted  = "quiz.answer.submitted"
	EventSessionCompleted = "quiz.session.completed"
	EventSessionExpired   = "quiz.session.expired"
)

const (
	CompletionEnded   = "ended"
	CompletionExpired = "expired"
)

// SessionService owns the session state machine: lazy creation, question
// issuance, answer recording, lazy expiry and termination.
type SessionService struct {
	sessions SessionStore
	terms    TermPicker
	builder  QuestionBuilder
	history  *HistoryService
	answers  AnswerLog
	events   EventSink
	logger   *zap.Logger

	inactivityWindow time.Duration
	sessionTTL       time.Duration
	now              func() time.Time
}

func NewSessionService(
	sessions SessionStore,
	terms TermPicker,
	builder QuestionBuilder,
	history *HistoryService,
	answers AnswerLog,
	logger *zap.Logger,
	inactivityWindow, sessionTTL time.Duration,
) *SessionService {
	return &SessionService{
		sessions:         sessions,
		terms:            terms,
		builder:          builder,
		history:          history,
		answers:          answers,
		logger:           logger,
		inactivityWindow: inactivityWindow,
		sessionTTL:       sessionTTL,
		now:              time.Now,
	}
}

// SetEventSink wires the lifecycle event publisher. Events are optional;
// without a sink the service runs silently.
func (s *SessionService) SetEventSink(sink EventSink) {
	s.events = sink
}

func (s *SessionService) publish(eventType string, payload any) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(eventType, payload); err != nil {
		s.logger.Warn("failed to publish event", zap.String("type", eventType), zap.Error(err))
	}
}

// GetNextQuestion returns the outstanding question of the caller's active
// session, creating a session first when none is alive. The difficulty and
// category parameters are only honored at creation; an existing session
// keeps its own.
func (s *SessionService) GetNextQuestion(ctx context.Context, userID, difficulty, category string) (*models.QuizSession, *models.QuizQuestion, error) {
	session, err := s.sessions.FindActiveByUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if session != nil && session.IsStale(s.now(), s.inactivityWindow) {
		s.flushExpired(ctx, session)
		session = nil
	}

	if session == nil {
		session, err = s.createSession(ctx, userID, difficulty, category)
		if err != nil {
			return nil, nil, err
		}
	}

	// A still-unanswered question is re-issued as-is, original issuance
	// time included, so refreshing the client never resets the clock.
	if session.Pending != nil {
		session.LastActivityAt = s.now()
		if err := s.sessions.Update(ctx, session); err != nil {
			return nil, nil, err
		}
		return session, session.Pending.Question(), nil
	}

	term, err := s.terms.Next(ctx, session.Difficulty, session.Category, session.UsedTermIDs)
	if errors.Is(err, selection.ErrNoEligibleTerms) {
		return nil, nil, ErrTermBankExhausted
	}
	if err != nil {
		return nil, nil, err
	}

	pending, err := s.builder.Build(ctx, term)
	if err != nil {
		return nil, nil, err
	}
	now := s.now()
	pending.IssuedAt = now
	pending.TimeLimitSeconds = models.QuestionTimeLimits[session.Difficulty]

	session.Pending = pending
	session.LastActivityAt = now
	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, nil, err
	}

	return session, pending.Question(), nil
}

func (s *SessionService) createSession(ctx context.Context, userID, difficulty, category string) (*models.QuizSession, error) {
	if difficulty == "" {
		difficulty = models.DifficultyBeginner
	}
	if !models.ValidDifficulty(difficulty) {
		return nil, ErrInvalidDifficulty
	}

	if err := s.history.CheckDailyCap(ctx, userID); err != nil {
		return nil, err
	}

	now := s.now()
	session := &models.QuizSession{
		SessionID:      primitive.NewObjectID().Hex(),
		UserID:         userID,
		Difficulty:     difficulty,
		Category:       category,
		Status:         models.SessionStatusActive,
		UsedTermIDs:    []string{},
		CreatedAt:      now,
		LastActivityAt: now,
		ExpiresAt:      now.Add(s.sessionTTL),
	}

	created, existingID, err := s.sessions.CreateForUser(ctx, session)
	if err != nil {
		return nil, err
	}
	if !created {
		// Lost the creation race; adopt the winner's session.
		existing, err := s.sessions.FindByID(ctx, existingID)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, fmt.Errorf("concurrent session %s vanished before adoption", existingID)
		}
		return existing, nil
	}

	s.logger.Info("quiz session created",
		zap.String("session_id", session.SessionID),
		zap.String("user_id", userID),
		zap.String("difficulty", difficulty),
	)
	s.publish(EventSessionStarted, map[string]any{
		"session_id": session.SessionID,
		"user_id":    userID,
		"difficulty": difficulty,
	})
	return session, nil
}

// SubmitAnswer settles the outstanding question of a session. The elapsed
// time used for scoring is the server's receipt time minus the issuance
// time, clamped to the question's window; the client-reported time is kept
// on the audit record only.
func (s *SessionService) SubmitAnswer(ctx context.Context, userID, sessionID, questionID, selectedOptionID string, clientTimeSeconds int) (*models.AnswerFeedback, error) {
	session, err := s.findOwnedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsStale(s.now(), s.inactivityWindow) {
		s.flushExpired(ctx, session)
		return nil, ErrInvalidSession
	}

	if session.Pending == nil || session.Pending.QuestionID != questionID {
		return nil, ErrStaleQuestion
	}
	pending := session.Pending

	now := s.now()
	elapsed := scoring.ClampElapsed(int(now.Sub(pending.IssuedAt).Seconds()), pending.TimeLimitSeconds)

	// An empty option is the timeout sentinel and always incorrect.
	correct := selectedOptionID != "" && selectedOptionID == pending.CorrectOptionID
	points := scoring.Score(correct, elapsed, pending.TimeLimitSeconds)

	session.QuestionsAnswered++
	if correct {
		session.CorrectCount++
	}
	session.TotalScore += points
	session.TimeSpentSeconds += elapsed
	session.UsedTermIDs = append(session.UsedTermIDs, pending.TermID)
	session.Pending = nil
	session.LastActivityAt = now

	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, err
	}

	if s.answers != nil {
		record := &models.AnswerRecord{
			SessionID:         session.SessionID,
			UserID:            userID,
			QuestionID:        pending.QuestionID,
			TermID:            pending.TermID,
			SelectedOptionID:  selectedOptionID,
			IsCorrect:         correct,
			PointsEarned:      points,
			TimeTakenSeconds:  elapsed,
			ClientTimeSeconds: clientTimeSeconds,
			QuestionSequence:  session.QuestionsAnswered,
			AnsweredAt:        now,
		}
		if err := s.answers.Append(ctx, record); err != nil {
			s.logger.Warn("failed to append answer record", zap.String("session_id", sessionID), zap.Error(err))
		}
	}

	s.publish(EventAnswerSubmitted, map[string]any{
		"session_id": session.SessionID,
		"user_id":    userID,
		"correct":    correct,
		"points":     points,
	})

	return &models.AnswerFeedback{
		Correct:         correct,
		PointsEarned:    points,
		CorrectOptionID: pending.CorrectOptionID,
		Explanation:     pending.Explanation,
		Progress:        session.Progress(),
	}, nil
}

// GetProgress returns a read-only snapshot of the running aggregates.
func (s *SessionService) GetProgress(ctx context.Context, userID, sessionID string) (*models.SessionProgress, error) {
	session, err := s.findOwnedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsStale(s.now(), s.inactivityWindow) {
		s.flushExpired(ctx, session)
		return nil, ErrInvalidSession
	}
	progress := session.Progress()
	return &progress, nil
}

// EndSession terminates a session, folds it into history exactly once and
// deletes the record from active storage. An outstanding unanswered
// question is simply dropped from the tally.
func (s *SessionService) EndSession(ctx context.Context, userID, sessionID string) (*models.QuizResult, error) {
	session, err := s.findOwnedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	completion := CompletionEnded
	if session.IsStale(s.now(), s.inactivityWindow) {
		completion = CompletionExpired
	}

	result, err := s.finalize(ctx, session, completion)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// findOwnedSession loads a session and checks caller ownership and status.
func (s *SessionService) findOwnedSession(ctx context.Context, userID, sessionID string) (*models.QuizSession, error) {
	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil || session.UserID != userID || session.Status != models.SessionStatusActive {
		return nil, ErrInvalidSession
	}
	return session, nil
}

// flushExpired folds a stale session into history and removes it. Failures
// are logged, not propagated: the caller's own operation proceeds against a
// fresh session either way, and the store's TTL is the backstop.
func (s *SessionService) flushExpired(ctx context.Context, session *models.QuizSession) {
	if _, err := s.finalize(ctx, session, CompletionExpired); err != nil {
		if !errors.Is(err, ErrInvalidSession) {
			s.logger.Warn("failed to flush expired session",
				zap.String("session_id", session.SessionID), zap.Error(err))
		}
	}
}

// finalize transitions a session out of active, aggregates it and deletes
// it. The claim release is the idempotency guard: only the caller that
// observes the release performs the history write, so a session is never
// flushed twice even under concurrent termination.
func (s *SessionService) finalize(ctx context.Context, session *models.QuizSession, completionType string) (*models.QuizResult, error) {
	released, err := s.sessions.ReleaseUser(ctx, session.UserID, session.SessionID)
	if err != nil {
		return nil, err
	}
	if !released {
		return nil, ErrInvalidSession
	}

	result := &models.QuizResult{
		SessionID:        session.SessionID,
		UserID:           session.UserID,
		Difficulty:       session.Difficulty,
		Score:            session.TotalScore,
		CorrectCount:     session.CorrectCount,
		TotalQuestions:   session.QuestionsAnswered,
		TimeTakenSeconds: session.TimeSpentSeconds,
		CompletionType:   completionType,
		ShareText:        shareText(session),
	}

	if err := s.history.RecordSession(ctx, result); err != nil {
		return nil, err
	}
	if err := s.sessions.Delete(ctx, session.SessionID); err != nil {
		s.logger.Warn("failed to delete finished session",
			zap.String("session_id", session.SessionID), zap.Error(err))
	}

	event := EventSessionCompleted
	if completionType == CompletionExpired {
		event = EventSessionExpired
	}
	s.publish(event, map[string]any{
		"session_id": session.SessionID,
		"user_id":    session.UserID,
		"score":      result.Score,
	})
	return result, nil
}

func shareText(session *models.QuizSession) string {
	return fmt.Sprintf("I scored %d points with %d/%d correct on the %s slang quiz — think you can beat that?",
		session.TotalScore, session.CorrectCount, session.QuestionsAnswered, session.Difficulty)
}
