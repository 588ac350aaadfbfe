package model

import "time"

// User represents a row of the `usuarios` table.
//
// Fields:
//  ID           – primary key identifier.
//  Name         – display name.
//  Email        – unique email address, matched exactly (case-sensitive).
//  PasswordHash – bcrypt hash; never serialized.
//  Active       – soft-delete flag; inactive users cannot log in.
//  CreatedAt    – registration timestamp.
type User struct {
	ID           int64     // usuarios.id
	Name         string    // usuarios.nombre
	Email        string    // usuarios.email
	PasswordHash string    // usuarios.password
	Active       bool      // usuarios.activo
	CreatedAt    time.Time // usuarios.fecha_registro
}

// PublicUser is the part of a user that is returned to clients.
type PublicUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"nombre"`
	Email string `json:"email"`
}

// Public strips the password hash and flags.
func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email}
}
