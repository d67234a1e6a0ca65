package handler

import (
	"net/http"

	"chartview/internal/session"
	"chartview/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionHandler exposes the session-state reducer to the front end
type SessionHandler struct {
	logger *zap.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(logger *zap.Logger) *SessionHandler {
	return &SessionHandler{logger: logger}
}

// DispatchRequest carries the current state and the action to apply
type DispatchRequest struct {
	State  session.State  `json:"state"`
	Action session.Action `json:"action" binding:"required"`
}

// Dispatch handles applying one navigation action to a session state
// POST /api/v1/session
func (h *SessionHandler) Dispatch(c *gin.Context) {
	var req DispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendErrorResponse(c, http.StatusBadRequest, "Invalid session request")
		return
	}

	c.JSON(http.StatusOK, session.Reduce(req.State, req.Action))
}
