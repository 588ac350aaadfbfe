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

// ReservationRepo persists reservations and keeps offer seat counts in step
// with them.
type ReservationRepo struct {
	db *database.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *database.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// Create books partySize seats on an offer for a user. The seat decrement
// and the reservation insert run in one transaction: either both happen or
// neither does. The decrement is a single conditional UPDATE, so two
// concurrent bookings can never take the same last seats.
//
// ErrNotFound is returned when the offer does not exist or is inactive and
// ErrInsufficientSeats when it has fewer seats than requested.
func (r *ReservationRepo) Create(ctx context.Context, userID, offerID int64, partySize int) (model.Reservation, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Reservation{}, fmt.Errorf("begin reservation: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := r.takeSeatsTx(ctx, tx, offerID, partySize); err != nil {
		return model.Reservation{}, err
	}

	res, err := r.createTx(ctx, tx, userID, offerID, partySize)
	if err != nil {
		return model.Reservation{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.Reservation{}, fmt.Errorf("commit reservation: %w", err)
	}
	committed = true
	return res, nil
}

// takeSeatsTx decrements the offer's remaining seats when enough are left.
// When nothing was updated it looks at the offer to report why.
func (r *ReservationRepo) takeSeatsTx(ctx context.Context, tx *sql.Tx, offerID int64, n int) error {
	b := r.db.Dialect.Builder()
	query, args, err := b.Update("ofertas").
		Set("cupos_disponibles", sq.Expr("cupos_disponibles - ?", n)).
		Where("id = ?", offerID).
		Where("activa = TRUE").
		Where("cupos_disponibles >= ?", n).
		ToSql()
	if err != nil {
		return err
	}
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("decrement seats: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 1 {
		return nil
	}

	query, args, err = b.Select("cupos_disponibles").
		From("ofertas").
		Where("id = ?", offerID).
		Where("activa = TRUE").
		ToSql()
	if err != nil {
		return err
	}
	var seats int
	err = tx.QueryRowContext(ctx, query, args...).Scan(&seats)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("read offer seats: %w", err)
	}
	return ErrInsufficientSeats
}

// createTx inserts the reservation row with total = price × partySize,
// computed from the offer's price inside the same transaction, and reads
// the stored row back so defaults are populated.
func (r *ReservationRepo) createTx(ctx context.Context, tx *sql.Tx, userID, offerID int64, partySize int) (model.Reservation, error) {
	b := r.db.Dialect.Builder()
	ins := b.Insert("reservas").
		Columns("usuario_id", "oferta_id", "cantidad_personas", "total").
		Values(userID, offerID, partySize,
			sq.Expr("(SELECT precio FROM ofertas WHERE id = ?) * ?", offerID, partySize))

	id, err := insertID(ctx, tx, r.db.Dialect, ins)
	if err != nil {
		return model.Reservation{}, fmt.Errorf("insert reservation: %w", err)
	}

	query, args, err := b.Select("id", "usuario_id", "oferta_id", "cantidad_personas", "total", "fecha_reserva", "estado").
		From("reservas").
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return model.Reservation{}, err
	}
	var res model.Reservation
	err = tx.QueryRowContext(ctx, query, args...).Scan(
		&res.ID, &res.UserID, &res.OfferID, &res.PartySize, &res.Total, &res.CreatedAt, &res.Status,
	)
	if err != nil {
		return model.Reservation{}, fmt.Errorf("select reservation: %w", err)
	}
	return res, nil
}

// ListByUser returns the user's reservations with offer and city details,
// newest first.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID int64) ([]model.ReservationDetail, error) {
	query, args, err := r.db.Dialect.Builder().
		Select(
			"r.id", "r.fecha_reserva", "r.estado", "r.cantidad_personas", "r.total",
			"o.titulo", "COALESCE(o.descripcion, '')",
			"CAST(o.fecha_disponible AS CHAR(10))", "CAST(o.hora_disponible AS CHAR(8))",
			"c.nombre",
		).
		From("reservas r").
		Join("ofertas o ON r.oferta_id = o.id").
		Join("ciudades c ON o.ciudad_id = c.id").
		Where("r.usuario_id = ?", userID).
		OrderBy("r.fecha_reserva DESC", "r.id DESC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	defer rows.Close()

	out := make([]model.ReservationDetail, 0)
	for rows.Next() {
		var d model.ReservationDetail
		if err := rows.Scan(
			&d.ID, &d.CreatedAt, &d.Status, &d.PartySize, &d.Total,
			&d.Title, &d.Description, &d.Date, &d.Time, &d.CityName,
		); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
