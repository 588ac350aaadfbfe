// Package router builds the Echo instance and registers every route of the
// API under /api.
package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/movitour/internal/handler"
	"github.com/iliyamo/movitour/internal/logger"
	"github.com/iliyamo/movitour/internal/middleware"
)

// Handlers groups the handlers the router mounts.
type Handlers struct {
	Auth         *handler.AuthHandler
	Catalog      *handler.CatalogHandler
	Reservations *handler.ReservationHandler
	Support      *handler.SupportHandler
}

// New returns an Echo instance with the global middleware and all routes
// registered. verifier checks bearer tokens on protected routes.
func New(log *logger.Logger, h Handlers, verifier middleware.TokenVerifier) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.HTTPErrorHandler

	// Request id first so every later log line carries it; Recover sits
	// inside the logger so a panic is logged as a 500.
	e.Use(
		middleware.RequestID(log),
		middleware.RequestLogger(),
		echomw.Recover(),
		echomw.CORS(),
	)

	RegisterRoutes(e)
	RegisterAuth(e, h.Auth)
	RegisterPublic(e, h.Catalog, h.Support)
	RegisterCustomer(e, h.Reservations, verifier)
	return e
}

// RegisterRoutes registers the health check used by load balancers and
// monitoring.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/api/health", handler.Health)
}

// RegisterAuth registers registration and login. Neither requires a token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler) {
	g := e.Group("/api/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
}

// RegisterPublic registers the unauthenticated catalog and support routes.
// /ofertas/buscar is a static segment, so Echo matches it before /ofertas/:id.
func RegisterPublic(e *echo.Echo, c *handler.CatalogHandler, s *handler.SupportHandler) {
	g := e.Group("/api")
	g.GET("/ciudades", c.ListCities)
	g.GET("/ciudades/:id", c.GetCity)
	g.GET("/ofertas", c.ListOffers)
	g.GET("/ofertas/buscar", c.SearchOffers)
	g.GET("/ofertas/:id", c.GetOffer)
	g.POST("/soporte", s.Send)
}
