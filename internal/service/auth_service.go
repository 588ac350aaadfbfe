package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/iliyamo/movitour/internal/config"
	"github.com/iliyamo/movitour/internal/model"
	"github.com/iliyamo/movitour/internal/repository"
	"github.com/iliyamo/movitour/internal/utils"
)

const minPasswordLength = 4

// UserStore is the persistence AuthService needs.
type UserStore interface {
	Create(ctx context.Context, name, email, passwordHash string) (model.User, error)
	GetActiveByEmail(ctx context.Context, email string) (model.User, error)
}

// AuthService registers users, checks credentials and issues and verifies
// access tokens.
type AuthService struct {
	users  UserStore
	secret string
	ttl    time.Duration
	cost   int

	// dummyHash is compared against when no user matches so a failed login
	// costs one bcrypt comparison either way.
	dummyHash string
}

func NewAuthService(users UserStore, cfg config.Auth) (*AuthService, error) {
	dummy, err := utils.HashPassword("movitour-dummy-password", cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("dummy hash: %w", err)
	}
	return &AuthService{
		users:     users,
		secret:    cfg.JWTSecret,
		ttl:       cfg.TokenTTL,
		cost:      cfg.BcryptCost,
		dummyHash: dummy,
	}, nil
}

// LoginResult is a signed token plus the public user fields.
type LoginResult struct {
	Token string
	User  model.PublicUser
}

// Register creates an active user with a bcrypt-hashed password.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (model.PublicUser, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return model.PublicUser{}, ErrMissingFields
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		return model.PublicUser{}, ErrPasswordTooShort
	}

	hash, err := utils.HashPassword(password, s.cost)
	if err != nil {
		return model.PublicUser{}, fmt.Errorf("hash password: %w", err)
	}
	u, err := s.users.Create(ctx, name, email, hash)
	if errors.Is(err, repository.ErrEmailExists) {
		return model.PublicUser{}, ErrUserExists
	}
	if err != nil {
		return model.PublicUser{}, err
	}
	return u.Public(), nil
}

// Login checks credentials and issues a token. An unknown email and a wrong
// password return the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return LoginResult{}, ErrMissingCredentials
	}

	u, err := s.users.GetActiveByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		utils.VerifyPassword(s.dummyHash, password)
		return LoginResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return LoginResult{}, err
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return LoginResult{}, ErrInvalidCredentials
	}

	tok, err := utils.NewAccessToken(s.secret, u.ID, u.Email, s.ttl)
	if err != nil {
		return LoginResult{}, fmt.Errorf("sign token: %w", err)
	}
	return LoginResult{Token: tok.Token, User: u.Public()}, nil
}

// Verify validates a raw bearer token and returns its claims.
func (s *AuthService) Verify(raw string) (*utils.Claims, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrTokenRequired
	}
	claims, err := utils.ParseAccessToken(s.secret, raw)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
