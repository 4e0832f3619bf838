package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"slang-quiz-service/internal/service"
)

type HistoryHandler struct {
	Service *service.HistoryService
}

func NewHistoryHandler(s *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{Service: s}
}

// GetHistory returns the caller's lifetime quiz statistics and daily-quota
// state.
func (h *HistoryHandler) GetHistory(c *gin.Context) {
	userID := c.GetHeader(UserIDHeader)

	summary, err := h.Service.GetSummary(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
