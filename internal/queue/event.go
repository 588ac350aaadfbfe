// Package queue carries booking events over RabbitMQ: a publisher used by
// the reservation service and a consumer that appends each event to the
// booking log.
package queue

import (
	"time"

	"github.com/iliyamo/movitour/internal/model"
)

// ReservationCreatedQueue is the durable queue reservation events go to,
// routed through the default exchange.
const ReservationCreatedQueue = "reservation.created"

// ReservationCreatedEvent is published once a reservation has committed.
// It carries enough for downstream consumers to log or notify without
// querying the primary database.
type ReservationCreatedEvent struct {
	ReservationID int64   `json:"reservation_id"`
	UserID        int64   `json:"user_id"`
	OfferID       int64   `json:"offer_id"`
	PartySize     int     `json:"party_size"`
	Total         float64 `json:"total"`
	CreatedAt     string  `json:"created_at"` // RFC3339, UTC
}

// NewReservationCreatedEvent builds the event for a stored reservation.
func NewReservationCreatedEvent(r model.Reservation) ReservationCreatedEvent {
	return ReservationCreatedEvent{
		ReservationID: r.ID,
		UserID:        r.UserID,
		OfferID:       r.OfferID,
		PartySize:     r.PartySize,
		Total:         r.Total,
		CreatedAt:     r.CreatedAt.UTC().Format(time.RFC3339),
	}
}
