// Package service holds the business rules of the booking API. Services
// depend on small interfaces so handlers and tests can swap the storage,
// mail and event implementations.
package service

import "errors"

// Validation errors.
var (
	ErrMissingFields        = errors.New("missing required fields")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrMissingCredentials   = errors.New("missing credentials")
	ErrMissingOfferID       = errors.New("missing offer id")
	ErrInvalidPartySize     = errors.New("party size must be at least 1")
	ErrMissingSupportFields = errors.New("missing support message fields")
	ErrInvalidSupportEmail  = errors.New("invalid support reply address")
)

// Authentication errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenRequired      = errors.New("access token required")
	ErrInvalidToken       = errors.New("invalid token")
)

// ErrUserExists is the conflict raised for a taken email.
var ErrUserExists = errors.New("user already exists")

// Lookup errors.
var (
	ErrCityNotFound  = errors.New("city not found")
	ErrOfferNotFound = errors.New("offer not found")
)

// ErrInsufficientSeats means the offer has fewer seats left than requested.
var ErrInsufficientSeats = errors.New("insufficient seats")

// ErrDeliveryFailed wraps SMTP transport failures.
var ErrDeliveryFailed = errors.New("support message delivery failed")
