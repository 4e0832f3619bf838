package models

import "time"

// Account tiers and their daily quiz-attempt caps. A negative cap means
// unlimited.
const (
	TierFree    = "free"
	TierPremium = "premium"
)

var DailyQuizCaps = map[string]int{
	TierFree:    5,
	TierPremium: -1,
}

// DailyCapForTier returns the attempt cap for a tier, defaulting unknown
// tiers to the free cap.
func DailyCapForTier(tier string) int {
	if cap, ok := DailyQuizCaps[tier]; ok {
		return cap
	}
	return DailyQuizCaps[TierFree]
}

// QuizHistoryRecord is the per-user lifetime aggregate, one document per
// user keyed by user ID. QuizzesToday is only meaningful together with
// LastQuizDay: a record whose LastQuizDay is not today counts as zero.
type QuizHistoryRecord struct {
	UserID         string    `bson:"_id" json:"user_id"`
	TotalQuizzes   int       `bson:"total_quizzes" json:"total_quizzes"`
	TotalCorrect   int       `bson:"total_correct" json:"total_correct"`
	TotalQuestions int       `bson:"total_questions" json:"total_questions"`
	BestScore      int       `bson:"best_score" json:"best_score"`
	TotalScoreSum  int       `bson:"total_score_sum" json:"-"`
	AverageScore   float64   `bson:"average_score" json:"average_score"`
	QuizzesToday   int       `bson:"quizzes_today" json:"quizzes_today"`
	LastQuizDay    string    `bson:"last_quiz_day" json:"last_quiz_day"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updated_at"`
}

// QuizResult is the final tally of a finished session.
type QuizResult struct {
	SessionID        string `json:"session_id"`
	UserID           string `json:"user_id"`
	Difficulty       string `json:"difficulty"`
	Score            int    `json:"score"`
	CorrectCount     int    `json:"correct_count"`
	TotalQuestions   int    `json:"total_questions"`
	TimeTakenSeconds int    `json:"time_taken_seconds"`
	CompletionType   string `json:"completion_type"`
	ShareText        string `json:"share_text"`
}

// HistorySummary is the caller-facing view of lifetime stats plus the
// daily-quota state.
type HistorySummary struct {
	TotalQuizzes   int     `json:"total_quizzes"`
	TotalCorrect   int     `json:"total_correct"`
	TotalQuestions int     `json:"total_questions"`
	BestScore      int     `json:"best_score"`
	AverageScore   float64 `json:"average_score"`
	QuizzesToday   int     `json:"quizzes_today"`
	DailyCap       int     `json:"daily_cap"`
	CanTakeQuiz    bool    `json:"can_take_quiz"`
}
