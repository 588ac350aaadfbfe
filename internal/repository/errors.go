// Package repository holds the SQL for each entity. Queries are built with
// squirrel so the same code runs against PostgreSQL and MySQL.
//
// The sentinel values below let higher layers tell failure causes apart
// without inspecting driver errors.
package repository

import "errors"

// ErrNotFound is returned when a row does not exist or is inactive.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when the unique email constraint rejects an
// insert.
var ErrEmailExists = errors.New("email already exists")

// ErrInsufficientSeats is returned when an offer exists and is active but
// has fewer remaining seats than requested.
var ErrInsufficientSeats = errors.New("insufficient seats")
