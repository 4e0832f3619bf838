package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"slang-quiz-service/internal/service"
)

// UserIDHeader carries the authenticated caller identity, set by the
// gateway after token validation.
const UserIDHeader = "X-User-ID"

type SessionHandler struct {
	Service *service.SessionService
}

func NewSessionHandler(s *service.SessionService) *SessionHandler {
	return &SessionHandler{Service: s}
}

// respondError maps the engine's error taxonomy onto HTTP statuses.
// Business conditions and client desync get specific codes the client can
// act on; anything else is a generic transient failure.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDailyLimitReached):
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Daily quiz limit reached, come back tomorrow",
			"code":  "DAILY_LIMIT_REACHED",
		})
	case errors.Is(err, service.ErrTermBankExhausted):
		c.JSON(http.StatusConflict, gin.H{
			"error": "No more questions available for this quiz",
			"code":  "TERM_BANK_EXHAUSTED",
		})
	case errors.Is(err, service.ErrInvalidSession):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "No active quiz session, request a new question to start over",
			"code":  "INVALID_SESSION",
		})
	case errors.Is(err, service.ErrStaleQuestion):
		c.JSON(http.StatusConflict, gin.H{
			"error": "This question was already answered",
			"code":  "STALE_QUESTION",
		})
	case errors.Is(err, service.ErrInvalidDifficulty):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Unknown difficulty tier",
			"code":  "INVALID_DIFFICULTY",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Service temporarily unavailable",
			"code":  "INTERNAL",
		})
	}
}

// NextQuestion returns the caller's outstanding question, lazily creating
// a session when none is active.
func (h *SessionHandler) NextQuestion(c *gin.Context) {
	userID := c.GetHeader(UserIDHeader)

	var req struct {
		Difficulty string `json:"difficulty"`
		Category   string `json:"category"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
			return
		}
	}

	session, q, err := h.Service.GetNextQuestion(c.Request.Context(), userID, req.Difficulty, req.Category)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id": session.SessionID,
		"difficulty": session.Difficulty,
		"question":   q,
	})
}

// SubmitAnswer settles the outstanding question. An absent selected option
// is the timeout sentinel.
func (h *SessionHandler) SubmitAnswer(c *gin.Context) {
	userID := c.GetHeader(UserIDHeader)
	sessionID := c.Param("id")

	var req struct {
		QuestionID       string `json:"question_id" binding:"required"`
		SelectedOptionID string `json:"selected_option_id"`
		TimeTakenSeconds int    `json:"time_taken_seconds"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid answer format", "details": err.Error()})
		return
	}

	feedback, err := h.Service.SubmitAnswer(c.Request.Context(), userID, sessionID,
		req.QuestionID, req.SelectedOptionID, req.TimeTakenSeconds)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, feedback)
}

// GetProgress returns the running aggregates of an active session.
func (h *SessionHandler) GetProgress(c *gin.Context) {
	userID := c.GetHeader(UserIDHeader)
	sessionID := c.Param("id")

	progress, err := h.Service.GetProgress(c.Request.Context(), userID, sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

// EndSession terminates the session and returns the final tally.
func (h *SessionHandler) EndSession(c *gin.Context) {
	userID := c.GetHeader(UserIDHeader)
	sessionID := c.Param("id")

	result, err := h.Service.EndSession(c.Request.Context(), userID, sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
