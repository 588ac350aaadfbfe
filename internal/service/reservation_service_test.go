package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movitour/internal/logger"
	"github.com/iliyamo/movitour/internal/queue"
)

func newStore(seats int, price float64) *fakeReservationStore {
	return &fakeReservationStore{
		seats:  map[int64]int{7: seats},
		prices: map[int64]float64{7: price},
	}
}

func TestCreateReservation(t *testing.T) {
	store := newStore(10, 150000)
	svc := NewReservationService(store, nil, logger.Nop())

	res, err := svc.CreateReservation(context.Background(), 5, 7, 3)
	require.NoError(t, err)
	assert.Equal(t, 450000.0, res.Total)
	assert.Equal(t, "pendiente", res.Status)
	assert.Equal(t, 7, store.seats[7])
}

func TestCreateReservation_Errors(t *testing.T) {
	store := newStore(2, 100)
	svc := NewReservationService(store, nil, logger.Nop())
	ctx := context.Background()

	_, err := svc.CreateReservation(ctx, 5, 0, 1)
	assert.ErrorIs(t, err, ErrMissingOfferID)

	_, err = svc.CreateReservation(ctx, 5, 7, 0)
	assert.ErrorIs(t, err, ErrInvalidPartySize)

	_, err = svc.CreateReservation(ctx, 5, 99, 1)
	assert.ErrorIs(t, err, ErrOfferNotFound)

	_, err = svc.CreateReservation(ctx, 5, 7, 3)
	assert.ErrorIs(t, err, ErrInsufficientSeats)
	assert.Equal(t, 2, store.seats[7], "failed booking must not change seats")
}

func TestCreateReservation_Concurrent(t *testing.T) {
	const seats, clients = 5, 20
	store := newStore(seats, 100)
	svc := NewReservationService(store, nil, logger.Nop())

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok, full int
	)
	for i := 0; i < clients; i++ {
		wg.Add(1)
		go func(user int64) {
			defer wg.Done()
			_, err := svc.CreateReservation(context.Background(), user, 7, 1)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, ErrInsufficientSeats):
				full++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(int64(i + 1))
	}
	wg.Wait()

	assert.Equal(t, seats, ok)
	assert.Equal(t, clients-seats, full)
	assert.Equal(t, 0, store.seats[7])
}

func TestCreateReservation_PublishesEvent(t *testing.T) {
	pub := &fakePublisher{events: make(chan queue.ReservationCreatedEvent, 1)}
	svc := NewReservationService(newStore(3, 50), pub, logger.Nop())

	res, err := svc.CreateReservation(context.Background(), 5, 7, 2)
	require.NoError(t, err)

	select {
	case ev := <-pub.events:
		assert.Equal(t, res.ID, ev.ReservationID)
		assert.Equal(t, 2, ev.PartySize)
		assert.Equal(t, 100.0, ev.Total)
	case <-time.After(2 * time.Second):
		t.Fatal("event was not published")
	}
}

func TestCreateReservation_PublishFailureIgnored(t *testing.T) {
	pub := &fakePublisher{events: make(chan queue.ReservationCreatedEvent, 1), err: errors.New("broker down")}
	svc := NewReservationService(newStore(3, 50), pub, logger.Nop())

	_, err := svc.CreateReservation(context.Background(), 5, 7, 1)
	require.NoError(t, err)
	<-pub.events
}

func TestListReservations(t *testing.T) {
	store := newStore(10, 10)
	svc := NewReservationService(store, nil, logger.Nop())
	ctx := context.Background()

	_, err := svc.CreateReservation(ctx, 5, 7, 1)
	require.NoError(t, err)
	_, err = svc.CreateReservation(ctx, 6, 7, 1)
	require.NoError(t, err)
	_, err = svc.CreateReservation(ctx, 5, 7, 2)
	require.NoError(t, err)

	list, err := svc.ListReservations(ctx, 5)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(3), list[0].ID)

	list, err = svc.ListReservations(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, list)
}
