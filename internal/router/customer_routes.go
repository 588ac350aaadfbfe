package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movitour/internal/handler"
	"github.com/iliyamo/movitour/internal/middleware"
)

// RegisterCustomer registers the reservation endpoints. Both require a
// valid access token; customers only ever see their own reservations.
func RegisterCustomer(e *echo.Echo, h *handler.ReservationHandler, verifier middleware.TokenVerifier) {
	g := e.Group("/api/reservas", middleware.JWTAuth(verifier))
	g.POST("", h.Create)
	g.GET("", h.List)
}
