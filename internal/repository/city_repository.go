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

// CityRepo reads the ciudades table. Cities are never written through the
// API.
type CityRepo struct{ db *database.DB }

func NewCityRepo(db *database.DB) *CityRepo { return &CityRepo{db: db} }

func (r *CityRepo) selectActive() sq.SelectBuilder {
	return r.db.Dialect.Builder().
		Select("id", "nombre", "COALESCE(descripcion, '')", "COALESCE(imagen_url, '')").
		From("ciudades").
		Where("activa = TRUE")
}

// ListActive returns active cities ordered by name.
func (r *CityRepo) ListActive(ctx context.Context) ([]model.City, error) {
	query, args, err := r.selectActive().OrderBy("nombre").ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}
	defer rows.Close()

	out := make([]model.City, 0)
	for rows.Next() {
		var c model.City
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.ImageURL); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetActive returns one active city or ErrNotFound.
func (r *CityRepo) GetActive(ctx context.Context, id int64) (model.City, error) {
	query, args, err := r.selectActive().Where("id = ?", id).ToSql()
	if err != nil {
		return model.City{}, err
	}
	var c model.City
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.Name, &c.Description, &c.ImageURL)
	if errors.Is(err, sql.ErrNoRows) {
		return model.City{}, ErrNotFound
	}
	if err != nil {
		return model.City{}, fmt.Errorf("get city: %w", err)
	}
	return c, nil
}
