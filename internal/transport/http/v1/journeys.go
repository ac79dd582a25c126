package v1

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/devishh/chloe-api/internal/domain"
)

// ListJourneys returns the active journey catalog.
// GET /v1/journeys
func (h *Handler) ListJourneys(c echo.Context) error {
	items, err := h.service.ListJourneys(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"journeys": items,
	})
}

// ResolveJourney resolves or creates the caller's journey conversation
// for a classification key.
// POST /v1/journeys/resolve
func (h *Handler) ResolveJourney(c echo.Context) error {
	var req domain.ResolveJourneyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if strings.TrimSpace(req.Key) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "key is required"})
	}

	resp, err := h.service.ResolveJourney(c.Request().Context(), userID(c), req.Key)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// KickoffJourney produces the first assistant turn of a journey.
// POST /v1/journeys/:conversation_id/kickoff
func (h *Handler) KickoffJourney(c echo.Context) error {
	conversationID := c.Param("conversation_id")

	resp, err := h.service.KickoffJourney(c.Request().Context(), userID(c), conversationID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}
