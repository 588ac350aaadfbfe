package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/movitour/internal/model"
	"github.com/iliyamo/movitour/internal/repository"
)

type CityStore interface {
	ListActive(ctx context.Context) ([]model.City, error)
	GetActive(ctx context.Context, id int64) (model.City, error)
}

type OfferStore interface {
	List(ctx context.Context, f model.OfferFilter) ([]model.Offer, error)
	GetVisible(ctx context.Context, id int64) (model.Offer, error)
}

// CatalogService serves the read-only city and offer catalog.
type CatalogService struct {
	cities CityStore
	offers OfferStore
}

func NewCatalogService(cities CityStore, offers OfferStore) *CatalogService {
	return &CatalogService{cities: cities, offers: offers}
}

func (s *CatalogService) ListCities(ctx context.Context) ([]model.City, error) {
	return s.cities.ListActive(ctx)
}

func (s *CatalogService) GetCity(ctx context.Context, id int64) (model.City, error) {
	if id <= 0 {
		return model.City{}, ErrCityNotFound
	}
	c, err := s.cities.GetActive(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return model.City{}, ErrCityNotFound
	}
	return c, err
}

// ListOffers returns visible offers matching f. Date and time filters are
// normalized to the stored text forms; a value that is not a valid date or
// time cannot match any offer, so the result is empty.
func (s *CatalogService) ListOffers(ctx context.Context, f model.OfferFilter) ([]model.Offer, error) {
	f.City = strings.TrimSpace(f.City)
	if f.Date = strings.TrimSpace(f.Date); f.Date != "" {
		d, ok := normalizeDate(f.Date)
		if !ok {
			return []model.Offer{}, nil
		}
		f.Date = d
	}
	if f.Time = strings.TrimSpace(f.Time); f.Time != "" {
		t, ok := normalizeTime(f.Time)
		if !ok {
			return []model.Offer{}, nil
		}
		f.Time = t
	}
	return s.offers.List(ctx, f)
}

func (s *CatalogService) GetOffer(ctx context.Context, id int64) (model.Offer, error) {
	if id <= 0 {
		return model.Offer{}, ErrOfferNotFound
	}
	o, err := s.offers.GetVisible(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return model.Offer{}, ErrOfferNotFound
	}
	return o, err
}

func normalizeDate(v string) (string, bool) {
	d, err := time.Parse(time.DateOnly, v)
	if err != nil {
		return "", false
	}
	return d.Format(time.DateOnly), true
}

// normalizeTime accepts HH:MM and HH:MM:SS.
func normalizeTime(v string) (string, bool) {
	for _, layout := range []string{time.TimeOnly, "15:04"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format(time.TimeOnly), true
		}
	}
	return "", false
}
