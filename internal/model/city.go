package model

// City is a bookable destination (`ciudades` table). Cities are seeded
// out of band and only read through the API; inactive ones are hidden.
type City struct {
	ID          int64  `json:"id"`          // ciudades.id
	Name        string `json:"nombre"`      // ciudades.nombre
	Description string `json:"descripcion"` // ciudades.descripcion
	ImageURL    string `json:"imagen_url"`  // ciudades.imagen_url
}
