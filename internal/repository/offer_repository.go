package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/iliyamo/movitour/internal/database"
	"github.com/iliyamo/movitour/internal/model"
)

// OfferRepo reads offers joined with their city. Only active offers in
// active cities are visible.
type OfferRepo struct{ db *database.DB }

func NewOfferRepo(db *database.DB) *OfferRepo { return &OfferRepo{db: db} }

// offerColumns renders dates and times as text so both drivers scan them
// into strings (YYYY-MM-DD and HH:MM:SS).
var offerColumns = []string{
	"o.id",
	"o.titulo",
	"COALESCE(o.descripcion, '')",
	"o.precio",
	"CAST(o.fecha_disponible AS CHAR(10))",
	"CAST(o.hora_disponible AS CHAR(8))",
	"o.cupos_disponibles",
	"c.nombre",
}

func (r *OfferRepo) selectVisible(extra ...string) sq.SelectBuilder {
	cols := append(append([]string{}, offerColumns...), extra...)
	return r.db.Dialect.Builder().
		Select(cols...).
		From("ofertas o").
		Join("ciudades c ON o.ciudad_id = c.id").
		Where("o.activa = TRUE").
		Where("c.activa = TRUE")
}

// List returns visible offers matching f ordered by date and time. Empty
// filter fields add no condition.
func (r *OfferRepo) List(ctx context.Context, f model.OfferFilter) ([]model.Offer, error) {
	b := r.selectVisible()
	if f.City != "" {
		b = b.Where("LOWER(c.nombre) LIKE LOWER(?)", "%"+f.City+"%")
	}
	if f.Date != "" {
		b = b.Where("o.fecha_disponible = ?", f.Date)
	}
	if f.Time != "" {
		b = b.Where("o.hora_disponible = ?", f.Time)
	}
	query, args, err := b.OrderBy("o.fecha_disponible", "o.hora_disponible").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list offers: %w", err)
	}
	defer rows.Close()

	out := make([]model.Offer, 0)
	for rows.Next() {
		var o model.Offer
		if err := rows.Scan(&o.ID, &o.Title, &o.Description, &o.Price, &o.Date, &o.Time, &o.Seats, &o.CityName); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// GetVisible returns one visible offer, including its city id, or
// ErrNotFound.
func (r *OfferRepo) GetVisible(ctx context.Context, id int64) (model.Offer, error) {
	query, args, err := r.selectVisible("c.id").Where("o.id = ?", id).ToSql()
	if err != nil {
		return model.Offer{}, err
	}
	var o model.Offer
	err = r.db.QueryRowContext(ctx, query, args...).
		Scan(&o.ID, &o.Title, &o.Description, &o.Price, &o.Date, &o.Time, &o.Seats, &o.CityName, &o.CityID)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Offer{}, ErrNotFound
	}
	if err != nil {
		return model.Offer{}, fmt.Errorf("get offer: %w", err)
	}
	return o, nil
}
