package models

import "time"

const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

const (
	SessionStatusActive  = "active"
	SessionStatusExpired = "expired"
	SessionStatusEnded   = "ended"
)

// QuestionTimeLimits maps difficulty to the per-question answer window.
var QuestionTimeLimits = map[string]int{
	DifficultyBeginner:     15,
	DifficultyIntermediate: 12,
	DifficultyAdvanced:     10,
}

// ValidDifficulty reports whether d is a known difficulty tier.
func ValidDifficulty(d string) bool {
	_, ok := QuestionTimeLimits[d]
	return ok
}

// QuizSession is one active quiz attempt by one user. It lives in the
// session store as a JSON document under its session ID, with a separate
// per-user claim key enforcing the one-active-session invariant.
type QuizSession struct {
	SessionID         string           `json:"session_id"`
	UserID            string           `json:"user_id"`
	Difficulty        string           `json:"difficulty"`
	Category          string           `json:"category,omitempty"`
	Status            string           `json:"status"`
	QuestionsAnswered int              `json:"questions_answered"`
	CorrectCount      int              `json:"correct_count"`
	TotalScore        int              `json:"total_score"`
	TimeSpentSeconds  int              `json:"time_spent_seconds"`
	UsedTermIDs       []string         `json:"used_term_ids"`
	Pending           *PendingQuestion `json:"pending,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	LastActivityAt    time.Time        `json:"last_activity_at"`
	ExpiresAt         time.Time        `json:"expires_at"`
}

// IsStale reports whether the session has sat untouched longer than the
// inactivity window. Stale sessions are treated as expired even before the
// store's TTL physically removes them.
func (s *QuizSession) IsStale(now time.Time, window time.Duration) bool {
	return now.Sub(s.LastActivityAt) > window
}

// HasUsedTerm reports whether the term was already asked in this session.
func (s *QuizSession) HasUsedTerm(termID string) bool {
	for _, id := range s.UsedTermIDs {
		if id == termID {
			return true
		}
	}
	return false
}

// Accuracy is correct answers over answered questions, 0 for a fresh session.
func (s *QuizSession) Accuracy() float64 {
	if s.QuestionsAnswered == 0 {
		return 0
	}
	return float64(s.CorrectCount) / float64(s.QuestionsAnswered)
}

// Progress snapshots the running aggregates.
func (s *QuizSession) Progress() SessionProgress {
	return SessionProgress{
		SessionID:         s.SessionID,
		Difficulty:        s.Difficulty,
		QuestionsAnswered: s.QuestionsAnswered,
		CorrectCount:      s.CorrectCount,
		TotalScore:        s.TotalScore,
		Accuracy:          s.Accuracy(),
		TimeSpentSeconds:  s.TimeSpentSeconds,
	}
}

type SessionProgress struct {
	SessionID         string  `json:"session_id"`
	Difficulty        string  `json:"difficulty"`
	QuestionsAnswered int     `json:"questions_answered"`
	CorrectCount      int     `json:"correct_count"`
	TotalScore        int     `json:"total_score"`
	Accuracy          float64 `json:"accuracy"`
	TimeSpentSeconds  int     `json:"time_spent_seconds"`
}
