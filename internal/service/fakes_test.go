package service

import (
	"context"
	"sync"
	"time"

	"github.com/iliyamo/movitour/internal/model"
	"github.com/iliyamo/movitour/internal/notify"
	"github.com/iliyamo/movitour/internal/queue"
	"github.com/iliyamo/movitour/internal/repository"
)

type fakeUserStore struct {
	mu      sync.Mutex
	byEmail map[string]model.User
	nextID  int64
	calls   int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: map[string]model.User{}}
}

func (f *fakeUserStore) Create(_ context.Context, name, email, hash string) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if _, ok := f.byEmail[email]; ok {
		return model.User{}, repository.ErrEmailExists
	}
	f.nextID++
	u := model.User{ID: f.nextID, Name: name, Email: email, PasswordHash: hash, Active: true}
	f.byEmail[email] = u
	return u, nil
}

func (f *fakeUserStore) GetActiveByEmail(_ context.Context, email string) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	u, ok := f.byEmail[email]
	if !ok || !u.Active {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

// fakeReservationStore keeps offers in memory and applies the same
// conditional decrement the SQL store does.
type fakeReservationStore struct {
	mu     sync.Mutex
	seats  map[int64]int
	prices map[int64]float64
	rows   []model.Reservation
}

func (f *fakeReservationStore) Create(_ context.Context, userID, offerID int64, n int) (model.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	left, ok := f.seats[offerID]
	if !ok {
		return model.Reservation{}, repository.ErrNotFound
	}
	if left < n {
		return model.Reservation{}, repository.ErrInsufficientSeats
	}
	f.seats[offerID] = left - n
	r := model.Reservation{
		ID:        int64(len(f.rows) + 1),
		UserID:    userID,
		OfferID:   offerID,
		PartySize: n,
		Total:     f.prices[offerID] * float64(n),
		CreatedAt: time.Now().UTC(),
		Status:    model.StatusPending,
	}
	f.rows = append(f.rows, r)
	return r, nil
}

func (f *fakeReservationStore) ListByUser(_ context.Context, userID int64) ([]model.ReservationDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.ReservationDetail, 0)
	for i := len(f.rows) - 1; i >= 0; i-- {
		r := f.rows[i]
		if r.UserID == userID {
			out = append(out, model.ReservationDetail{ID: r.ID, PartySize: r.PartySize, Total: r.Total, Status: r.Status})
		}
	}
	return out, nil
}

type fakePublisher struct {
	events chan queue.ReservationCreatedEvent
	err    error
}

func (f *fakePublisher) PublishReservationCreated(_ context.Context, ev queue.ReservationCreatedEvent) error {
	f.events <- ev
	return f.err
}

type fakeSender struct {
	sent []notify.SupportMessage
	err  error
}

func (f *fakeSender) SendSupportMessage(_ context.Context, msg notify.SupportMessage) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type fakeCityStore struct {
	cities []model.City
}

func (f *fakeCityStore) ListActive(context.Context) ([]model.City, error) { return f.cities, nil }

func (f *fakeCityStore) GetActive(_ context.Context, id int64) (model.City, error) {
	for _, c := range f.cities {
		if c.ID == id {
			return c, nil
		}
	}
	return model.City{}, repository.ErrNotFound
}

type fakeOfferStore struct {
	last   *model.OfferFilter
	offers []model.Offer
}

func (f *fakeOfferStore) List(_ context.Context, filter model.OfferFilter) ([]model.Offer, error) {
	f.last = &filter
	return f.offers, nil
}

func (f *fakeOfferStore) GetVisible(_ context.Context, id int64) (model.Offer, error) {
	for _, o := range f.offers {
		if o.ID == id {
			return o, nil
		}
	}
	return model.Offer{}, repository.ErrNotFound
}
