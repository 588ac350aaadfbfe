package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/movitour/internal/database"
	"github.com/iliyamo/movitour/internal/model"
)

type UserRepo struct{ db *database.DB }

func NewUserRepo(db *database.DB) *UserRepo { return &UserRepo{db: db} }

// Create inserts an active user with an already hashed password. The
// unique constraint on email is the only duplicate check.
func (r *UserRepo) Create(ctx context.Context, name, email, passwordHash string) (model.User, error) {
	ins := r.db.Dialect.Builder().
		Insert("usuarios").
		Columns("nombre", "email", "password").
		Values(name, email, passwordHash)

	id, err := insertID(ctx, r.db, r.db.Dialect, ins)
	if err != nil {
		if r.db.Dialect.IsUniqueViolation(err) {
			return model.User{}, ErrEmailExists
		}
		return model.User{}, fmt.Errorf("insert user: %w", err)
	}
	return model.User{ID: id, Name: name, Email: email, PasswordHash: passwordHash, Active: true}, nil
}

// GetActiveByEmail fetches an active user by exact email.
func (r *UserRepo) GetActiveByEmail(ctx context.Context, email string) (model.User, error) {
	query, args, err := r.db.Dialect.Builder().
		Select("id", "nombre", "email", "password", "activo", "fecha_registro").
		From("usuarios").
		Where("email = ?", email).
		Where("activo = TRUE").
		ToSql()
	if err != nil {
		return model.User{}, err
	}

	var u model.User
	err = r.db.QueryRowContext(ctx, query, args...).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Active, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("select user: %w", err)
	}
	return u, nil
}
