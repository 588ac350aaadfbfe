// Package handler exposes the HTTP handlers of the booking API. Handlers
// bind the request, call a service and translate its result (or error) to
// JSON. All responses use the Spanish field names of the public API.
package handler

import (
	"context"
	"time"

	"github.com/iliyamo/movitour/internal/model"
	"github.com/iliyamo/movitour/internal/service"
	"github.com/iliyamo/movitour/internal/utils"
)

// requestTimeout bounds the service call made by each handler.
const requestTimeout = 5 * time.Second

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (model.PublicUser, error)
	Login(ctx context.Context, email, password string) (service.LoginResult, error)
	Verify(raw string) (*utils.Claims, error)
}

type CatalogService interface {
	ListCities(ctx context.Context) ([]model.City, error)
	GetCity(ctx context.Context, id int64) (model.City, error)
	ListOffers(ctx context.Context, f model.OfferFilter) ([]model.Offer, error)
	GetOffer(ctx context.Context, id int64) (model.Offer, error)
}

type ReservationService interface {
	CreateReservation(ctx context.Context, userID, offerID int64, partySize int) (model.Reservation, error)
	ListReservations(ctx context.Context, userID int64) ([]model.ReservationDetail, error)
}

type SupportService interface {
	Send(ctx context.Context, name, email, message string) error
}
