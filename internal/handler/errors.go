package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movitour/internal/logger"
	"github.com/iliyamo/movitour/internal/service"
)

const (
	msgInternal    = "Error interno del servidor"
	msgInvalidBody = "Cuerpo de la solicitud inválido"
)

type apiError struct {
	status  int
	message string
}

var errorTable = map[error]apiError{
	service.ErrMissingFields:        {http.StatusBadRequest, "Todos los campos son requeridos"},
	service.ErrPasswordTooShort:     {http.StatusBadRequest, "La contraseña debe tener al menos 4 caracteres"},
	service.ErrMissingCredentials:   {http.StatusBadRequest, "Email y contraseña son requeridos"},
	service.ErrMissingOfferID:       {http.StatusBadRequest, "ID de oferta requerido"},
	service.ErrInvalidPartySize:     {http.StatusBadRequest, "La cantidad de personas debe ser al menos 1"},
	service.ErrMissingSupportFields: {http.StatusBadRequest, "Todos los campos son obligatorios."},
	service.ErrInvalidSupportEmail:  {http.StatusBadRequest, "Email inválido"},

	service.ErrInvalidCredentials: {http.StatusUnauthorized, "Credenciales inválidas"},
	service.ErrTokenRequired:      {http.StatusUnauthorized, "Token de acceso requerido"},
	service.ErrInvalidToken:       {http.StatusForbidden, "Token inválido"},

	service.ErrUserExists: {http.StatusConflict, "El usuario ya existe"},

	service.ErrCityNotFound:  {http.StatusNotFound, "Ciudad no encontrada"},
	service.ErrOfferNotFound: {http.StatusNotFound, "Oferta no encontrada"},

	service.ErrInsufficientSeats: {http.StatusBadRequest, "No hay suficientes cupos disponibles"},

	service.ErrDeliveryFailed: {http.StatusInternalServerError, "Error al enviar el mensaje. Inténtalo de nuevo más tarde."},
}

// statusFromError maps a service error to its status and client message.
// Anything not in the table is an internal error with a generic message.
func statusFromError(err error) (int, string) {
	for target, e := range errorTable {
		if errors.Is(err, target) {
			return e.status, e.message
		}
	}
	return http.StatusInternalServerError, msgInternal
}

// respondError writes {"error": message} for err. Server-side failures are
// logged with the request-scoped logger; the cause is never sent.
func respondError(c echo.Context, err error) error {
	status, msg := statusFromError(err)
	if status >= http.StatusInternalServerError {
		logger.FromContext(c.Request().Context()).Error().Err(err).Msg("request failed")
	}
	return c.JSON(status, echo.Map{"error": msg})
}

// HTTPErrorHandler renders errors that reach Echo (unknown routes, wrong
// methods, panics recovered by middleware) in the same {"error": ...} shape
// handlers use.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if !errors.As(err, &he) {
		_ = respondError(c, err)
		return
	}

	msg := http.StatusText(he.Code)
	switch he.Code {
	case http.StatusNotFound:
		msg = "Ruta no encontrada"
	case http.StatusMethodNotAllowed:
		msg = "Método no permitido"
	case http.StatusInternalServerError:
		logger.FromContext(c.Request().Context()).Error().Err(err).Msg("request failed")
		msg = msgInternal
	}
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(he.Code)
		return
	}
	_ = c.JSON(he.Code, echo.Map{"error": msg})
}
