// Package middleware holds the Echo middleware of the API: bearer token
// authentication and request-scoped logging.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movitour/internal/logger"
	"github.com/iliyamo/movitour/internal/service"
	"github.com/iliyamo/movitour/internal/utils"
)

// TokenVerifier validates a raw access token.
type TokenVerifier interface {
	Verify(raw string) (*utils.Claims, error)
}

// JWTAuth protects a route with an access token passed as
// "Authorization: Bearer <token>". A missing token is answered with 401, a
// token that fails verification with 403. On success the user id and email
// are stored in the context (see UserID and Email).
func JWTAuth(v TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// The token is the second word of the header, as in "Bearer <token>".
			var raw string
			if parts := strings.Fields(c.Request().Header.Get(echo.HeaderAuthorization)); len(parts) >= 2 {
				raw = parts[1]
			}

			claims, err := v.Verify(raw)
			if errors.Is(err, service.ErrTokenRequired) {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Token de acceso requerido"})
			}
			if err != nil {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "Token inválido"})
			}

			c.Set(ContextUserID, claims.UserID)
			c.Set(ContextEmail, claims.Email)

			req := c.Request()
			l := logger.FromContext(req.Context()).With().Int64("user_id", claims.UserID).Logger()
			c.SetRequest(req.WithContext(l.WithContext(req.Context())))
			return next(c)
		}
	}
}
