package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movitour/internal/middleware"
	"github.com/iliyamo/movitour/internal/service"
)

// ReservationHandler serves the customer's reservations. Routes are behind
// JWTAuth, so the user id is always in the context.
type ReservationHandler struct {
	Reservations ReservationService
}

func NewReservationHandler(reservations ReservationService) *ReservationHandler {
	return &ReservationHandler{Reservations: reservations}
}

type createReservationReq struct {
	OfferID   int64 `json:"oferta_id"`
	PartySize *int  `json:"cantidad_personas"` // absent means 1
}

// Create handles POST /api/reservas.
func (h *ReservationHandler) Create(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return respondError(c, service.ErrTokenRequired)
	}
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msgInvalidBody})
	}
	partySize := 1
	if req.PartySize != nil {
		partySize = *req.PartySize
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	res, err := h.Reservations.CreateReservation(ctx, userID, req.OfferID, partySize)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Reserva creada exitosamente",
		"reserva": res,
	})
}

// List handles GET /api/reservas.
func (h *ReservationHandler) List(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return respondError(c, service.ErrTokenRequired)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	list, err := h.Reservations.ListReservations(ctx, userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"reservas": list})
}
