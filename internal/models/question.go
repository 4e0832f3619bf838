package models

import "time"

type Option struct {
	ID   string `bson:"id" json:"id"`
	Text string `bson:"text" json:"text"`
}

// QuizQuestion is the payload handed to the client. It deliberately carries
// no correctness information; the correct option ID stays server-side on the
// session's pending question until the answer comes back.
type QuizQuestion struct {
	QuestionID       string   `json:"question_id"`
	TermID           string   `json:"term_id"`
	Prompt           string   `json:"prompt"`
	ContextHint      string   `json:"context_hint,omitempty"`
	Options          []Option `json:"options"`
	TimeLimitSeconds int      `json:"time_limit_seconds"`
}

// PendingQuestion is the outstanding question of a session, stored with the
// session record. It is the server-side source of truth for correctness and
// for the issuance time used in scoring.
type PendingQuestion struct {
	QuestionID       string    `json:"question_id"`
	TermID           string    `json:"term_id"`
	Prompt           string    `json:"prompt"`
	ContextHint      string    `json:"context_hint,omitempty"`
	Options          []Option  `json:"options"`
	CorrectOptionID  string    `json:"correct_option_id"`
	Explanation      string    `json:"explanation"`
	IssuedAt         time.Time `json:"issued_at"`
	TimeLimitSeconds int       `json:"time_limit_seconds"`
}

// Question strips the answer data off a pending question for delivery.
func (p *PendingQuestion) Question() *QuizQuestion {
	return &QuizQuestion{
		QuestionID:       p.QuestionID,
		TermID:           p.TermID,
		Prompt:           p.Prompt,
		ContextHint:      p.ContextHint,
		Options:          p.Options,
		TimeLimitSeconds: p.TimeLimitSeconds,
	}
}
