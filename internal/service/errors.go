package service

import "errors"

// Business and client-state errors surfaced to the transport layer.
// DailyLimitReached and TermBankExhausted are expected user conditions, not
// faults; InvalidSession and StaleQuestion indicate client desync and the
// caller is expected to restart via the next-question flow. Anything else
// bubbling out of the services is a transient persistence failure.
var (
	ErrDailyLimitReached = errors.New("daily quiz limit reached")
	ErrTermBankExhausted = errors.New("no unused terms left for this quiz")
	ErrInvalidSession    = errors.New("no matching active quiz session")
	ErrStaleQuestion     = errors.New("question already answered or outdated")
	ErrInvalidDifficulty = errors.New("unknown difficulty tier")
)
