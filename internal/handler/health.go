package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// isoMillis is the timestamp format of the health response (UTC, ms).
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// Health is a liveness endpoint for load balancers and monitoring. It does
// not touch the database.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message":   "Servidor MoviTour funcionando correctamente",
		"timestamp": time.Now().UTC().Format(isoMillis),
	})
}
