// Package v1 provides the HTTP handlers for the chloe API.
package v1

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/devishh/chloe-api/internal/adapter/auth"
	"github.com/devishh/chloe-api/internal/domain"
	"github.com/devishh/chloe-api/internal/service"
)

// Handler handles HTTP requests.
type Handler struct {
	service  *service.Service
	verifier auth.Verifier
}

// NewHandler creates a new handler.
func NewHandler(service *service.Service, verifier auth.Verifier) *Handler {
	return &Handler{
		service:  service,
		verifier: verifier,
	}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/v1", h.requireAuth)

	// Session API
	g.POST("/sessions", h.StartSession)
	g.POST("/sessions/:session_id/resume", h.ResumeSession)
	g.POST("/sessions/:session_id/messages", h.SendMessage)

	// Journey API
	g.GET("/journeys", h.ListJourneys)
	g.POST("/journeys/resolve", h.ResolveJourney)
	g.POST("/journeys/:conversation_id/kickoff", h.KickoffJourney)

	e.GET("/health", h.Health)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}

const userIDKey = "user_id"

// requireAuth verifies the bearer credential and stores the resolved user
// ID on the request context.
func (h *Handler) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if token == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
		}

		userID, err := h.verifier.Verify(c.Request().Context(), token)
		if err != nil {
			if errors.Is(err, auth.ErrUnauthorized) {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
			}
			log.Printf("ERROR: credential verification failed: %v", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
		}

		c.Set(userIDKey, userID)
		return next(c)
	}
}

// bearerToken extracts the token from an Authorization header value.
func bearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}

// userID returns the authenticated user ID set by requireAuth.
func userID(c echo.Context) string {
	id, _ := c.Get(userIDKey).(string)
	return id
}

// writeError maps service errors onto HTTP responses. Error bodies carry
// a short message only; internals go to the log.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, domain.ErrJourneyStarted):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "journey already started"})
	default:
		log.Printf("ERROR: %s %s: %v", c.Request().Method, c.Path(), err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
