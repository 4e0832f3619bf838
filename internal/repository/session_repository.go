package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"slang-quiz-service/internal/models"
)

// SessionRepository stores active quiz sessions in Redis. Each session is a
// JSON document under its session ID; a separate per-user claim key holds
// the active session ID and is created with SETNX so that two concurrent
// session creations for the same user resolve to exactly one session. Both
// keys carry the hard TTL, so abandoned sessions are reclaimed by Redis
// without any application-level sweep.
type SessionRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSessionRepository(rdb *redis.Client, ttl time.Duration) *SessionRepository {
	return &SessionRepository{rdb: rdb, ttl: ttl}
}

func sessionKey(sessionID string) string {
	return "quiz:session:" + sessionID
}

func userClaimKey(userID string) string {
	return "quiz:user:" + userID + ":active"
}

// FindByID loads a session document. Returns (nil, nil) when the key is
// missing or already expired.
func (r *SessionRepository) FindByID(ctx context.Context, sessionID string) (*models.QuizSession, error) {
	raw, err := r.rdb.Get(ctx, sessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session %s: %w", sessionID, err)
	}

	var session models.QuizSession
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", sessionID, err)
	}
	return &session, nil
}

// FindActiveByUser resolves the user's claim key to a session document.
// A dangling claim (session document gone, e.g. TTL fired between the two
// reads) is cleaned up and reported as no active session.
func (r *SessionRepository) FindActiveByUser(ctx context.Context, userID string) (*models.QuizSession, error) {
	sessionID, err := r.rdb.Get(ctx, userClaimKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session claim for user %s: %w", userID, err)
	}

	session, err := r.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		_ = r.rdb.Del(ctx, userClaimKey(userID)).Err()
		return nil, nil
	}
	return session, nil
}

// CreateForUser atomically claims the user's active-session slot and stores
// the session document. When the claim is already held, created is false
// and existingID names the winner's session; the caller is expected to
// adopt that session instead.
func (r *SessionRepository) CreateForUser(ctx context.Context, session *models.QuizSession) (created bool, existingID string, err error) {
	ok, err := r.rdb.SetNX(ctx, userClaimKey(session.UserID), session.SessionID, r.ttl).Result()
	if err != nil {
		return false, "", fmt.Errorf("failed to claim session slot for user %s: %w", session.UserID, err)
	}
	if !ok {
		existing, err := r.rdb.Get(ctx, userClaimKey(session.UserID)).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return false, "", fmt.Errorf("failed to read competing session claim: %w", err)
		}
		return false, existing, nil
	}

	raw, err := json.Marshal(session)
	if err != nil {
		return false, "", fmt.Errorf("failed to encode session: %w", err)
	}
	if err := r.rdb.Set(ctx, sessionKey(session.SessionID), raw, r.ttl).Err(); err != nil {
		// Roll the claim back so the user is not locked out until the TTL.
		_ = r.rdb.Del(ctx, userClaimKey(session.UserID)).Err()
		return false, "", fmt.Errorf("failed to store session: %w", err)
	}
	return true, "", nil
}

// Update rewrites the session document, preserving the TTL set at creation
// so the hard expiry stays absolute.
func (r *SessionRepository) Update(ctx context.Context, session *models.QuizSession) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := r.rdb.Set(ctx, sessionKey(session.SessionID), raw, redis.KeepTTL).Err(); err != nil {
		return fmt.Errorf("failed to update session %s: %w", session.SessionID, err)
	}
	return nil
}

// ReleaseUser removes the user's claim, but only while it still points at
// the given session. The boolean result is the idempotency guard for
// history aggregation: exactly one caller observes true per session.
func (r *SessionRepository) ReleaseUser(ctx context.Context, userID, sessionID string) (bool, error) {
	current, err := r.rdb.Get(ctx, userClaimKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read session claim for user %s: %w", userID, err)
	}
	if current != sessionID {
		return false, nil
	}

	n, err := r.rdb.Del(ctx, userClaimKey(userID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to release session claim for user %s: %w", userID, err)
	}
	return n == 1, nil
}

// Delete removes the session document.
func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.rdb.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session %s: %w", sessionID, err)
	}
	return nil
}
