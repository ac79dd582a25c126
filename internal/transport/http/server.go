// Package http provides the HTTP server for the chloe API.
package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/devishh/chloe-api/internal/adapter/auth"
	"github.com/devishh/chloe-api/internal/service"
	v1 "github.com/devishh/chloe-api/internal/transport/http/v1"
)

// NewServer creates and configures the HTTP server. CORS preflight and
// method-not-allowed handling come from the framework; handlers only see
// business requests.
func NewServer(svc *service.Service, verifier auth.Verifier) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Handlers
	handler := v1.NewHandler(svc, verifier)
	handler.RegisterRoutes(e)

	return e
}
