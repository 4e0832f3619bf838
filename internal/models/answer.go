package models

import "time"

// AnswerRecord is the persisted audit entry for one accepted submission.
// TimeTakenSeconds is the server-computed elapsed time used for scoring;
// ClientTimeSeconds is the advisory value the client reported.
type AnswerRecord struct {
	ID                string    `bson:"_id,omitempty" json:"id"`
	SessionID         string    `bson:"session_id" json:"session_id"`
	UserID            string    `bson:"user_id" json:"user_id"`
	QuestionID        string    `bson:"question_id" json:"question_id"`
	TermID            string    `bson:"term_id" json:"term_id"`
	SelectedOptionID  string    `bson:"selected_option_id" json:"selected_option_id"`
	IsCorrect         bool      `bson:"is_correct" json:"is_correct"`
	PointsEarned      int       `bson:"points_earned" json:"points_earned"`
	TimeTakenSeconds  int       `bson:"time_taken_seconds" json:"time_taken_seconds"`
	ClientTimeSeconds int       `bson:"client_time_seconds" json:"client_time_seconds"`
	QuestionSequence  int       `bson:"question_sequence" json:"question_sequence"`
	AnsweredAt        time.Time `bson:"answered_at" json:"answered_at"`
}

// AnswerFeedback is the immediate response to a submission. Correctness data
// is safe to include here because the question is already settled.
type AnswerFeedback struct {
	Correct         bool            `json:"correct"`
	PointsEarned    int             `json:"points_earned"`
	CorrectOptionID string          `json:"correct_option_id"`
	Explanation     string          `json:"explanation"`
	Progress        SessionProgress `json:"progress"`
}
