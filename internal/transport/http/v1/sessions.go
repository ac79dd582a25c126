package v1

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/devishh/chloe-api/internal/domain"
)

// StartSession creates a new session and returns the opening greeting.
// POST /v1/sessions
func (h *Handler) StartSession(c echo.Context) error {
	resp, err := h.service.StartSession(c.Request().Context(), userID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// ResumeSession greets the caller on an existing session.
// POST /v1/sessions/:session_id/resume
func (h *Handler) ResumeSession(c echo.Context) error {
	sessionID := c.Param("session_id")

	resp, err := h.service.ResumeSession(c.Request().Context(), userID(c), sessionID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// SendMessage posts a user turn and returns the assistant's reply.
// POST /v1/sessions/:session_id/messages
func (h *Handler) SendMessage(c echo.Context) error {
	sessionID := c.Param("session_id")

	var req domain.ReplyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.Role != domain.RoleUser {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "role must be user"})
	}
	if strings.TrimSpace(req.Content) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "content is required"})
	}

	resp, err := h.service.SendReply(c.Request().Context(), userID(c), sessionID, req.Content)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}
