package service

import (
	"context"
	"errors"
	"time"

	"github.com/iliyamo/movitour/internal/logger"
	"github.com/iliyamo/movitour/internal/model"
	"github.com/iliyamo/movitour/internal/queue"
	"github.com/iliyamo/movitour/internal/repository"
)

const publishTimeout = 5 * time.Second

type ReservationStore interface {
	Create(ctx context.Context, userID, offerID int64, partySize int) (model.Reservation, error)
	ListByUser(ctx context.Context, userID int64) ([]model.ReservationDetail, error)
}

// EventPublisher receives an event for every committed reservation.
type EventPublisher interface {
	PublishReservationCreated(ctx context.Context, ev queue.ReservationCreatedEvent) error
}

type ReservationService struct {
	store     ReservationStore
	publisher EventPublisher // nil disables events
	log       *logger.Logger
}

func NewReservationService(store ReservationStore, publisher EventPublisher, log *logger.Logger) *ReservationService {
	return &ReservationService{store: store, publisher: publisher, log: log}
}

// CreateReservation books partySize seats on offerID for userID. Seat
// accounting and the insert are atomic in the store; the event is sent
// afterwards and its failure never fails the booking.
func (s *ReservationService) CreateReservation(ctx context.Context, userID, offerID int64, partySize int) (model.Reservation, error) {
	if offerID <= 0 {
		return model.Reservation{}, ErrMissingOfferID
	}
	if partySize < 1 {
		return model.Reservation{}, ErrInvalidPartySize
	}

	res, err := s.store.Create(ctx, userID, offerID, partySize)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return model.Reservation{}, ErrOfferNotFound
	case errors.Is(err, repository.ErrInsufficientSeats):
		return model.Reservation{}, ErrInsufficientSeats
	case err != nil:
		return model.Reservation{}, err
	}

	if s.publisher != nil {
		go s.publish(queue.NewReservationCreatedEvent(res))
	}
	return res, nil
}

func (s *ReservationService) publish(ev queue.ReservationCreatedEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := s.publisher.PublishReservationCreated(ctx, ev); err != nil {
		s.log.Warn().Err(err).Int64("reservation_id", ev.ReservationID).Msg("publish reservation event failed")
	}
}

func (s *ReservationService) ListReservations(ctx context.Context, userID int64) ([]model.ReservationDetail, error) {
	return s.store.ListByUser(ctx, userID)
}
