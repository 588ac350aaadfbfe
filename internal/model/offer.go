package model

// Offer represents a bookable tour slot (`ofertas` table) joined with the
// name of its city.
//
// Fields:
//  ID          – primary key identifier.
//  Title       – tour title.
//  Description – free text description.
//  Price       – price per person.
//  Date        – availability date, YYYY-MM-DD.
//  Time        – availability time, HH:MM:SS.
//  Seats       – remaining seats; decremented by reservations, never negative.
//  CityName    – ciudades.nombre of the owning city.
//  CityID      – owning city id; only filled for single-offer lookups.
type Offer struct {
	ID          int64   `json:"id"`
	Title       string  `json:"titulo"`
	Description string  `json:"descripcion"`
	Price       float64 `json:"precio"`
	Date        string  `json:"fecha_disponible"`
	Time        string  `json:"hora_disponible"`
	Seats       int     `json:"cupos_disponibles"`
	CityName    string  `json:"ciudad_nombre"`
	CityID      int64   `json:"ciudad_id,omitempty"`
}

// OfferFilter narrows offer listings. Empty fields are ignored.
type OfferFilter struct {
	City string // case-insensitive substring of the city name
	Date string // exact availability date
	Time string // exact availability time
}
