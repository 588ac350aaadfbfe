package model

import "time"

// StatusPending is the state every reservation starts in.
const StatusPending = "pendiente"

// Reservation records a user's booking for an offer (`reservas` table).
// Total is price × party size at booking time and is never recomputed.
type Reservation struct {
	ID        int64     `json:"id"`                // reservas.id
	UserID    int64     `json:"usuario_id"`        // reservas.usuario_id
	OfferID   int64     `json:"oferta_id"`         // reservas.oferta_id
	PartySize int       `json:"cantidad_personas"` // reservas.cantidad_personas
	Total     float64   `json:"total"`             // reservas.total
	CreatedAt time.Time `json:"fecha_reserva"`     // reservas.fecha_reserva
	Status    string    `json:"estado"`            // reservas.estado
}

// ReservationDetail is a reservation joined with its offer and city, as
// listed to the customer who made it.
type ReservationDetail struct {
	ID          int64     `json:"id"`
	CreatedAt   time.Time `json:"fecha_reserva"`
	Status      string    `json:"estado"`
	PartySize   int       `json:"cantidad_personas"`
	Total       float64   `json:"total"`
	Title       string    `json:"titulo"`
	Description string    `json:"descripcion"`
	Date        string    `json:"fecha_disponible"`
	Time        string    `json:"hora_disponible"`
	CityName    string    `json:"ciudad_nombre"`
}
