package dtos

type CityCreationRequest struct {
	Name         string   `json:"name" binding:"required"`
	Latitude     *float64 `json:"latitude" binding:"required"`
	Longitude    *float64 `json:"longitude" binding:"required"`
	NbPopulation *int     `json:"nb_population" binding:"required"`
	NbDoctors    *int     `json:"nb_doctors" binding:"required"`
}

// CityUpdateRequest carries a partial update; only set fields are applied.
type CityUpdateRequest struct {
	Name         *string  `json:"name"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	NbPopulation *int     `json:"nb_population"`
	NbDoctors    *int     `json:"nb_doctors"`
}
