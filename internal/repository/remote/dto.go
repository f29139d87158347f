package remote

import "github.com/cinelog/cinelog/internal/domain"

// movieDTO is the wire shape for movie records in API responses.
type movieDTO struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Director    string  `json:"director"`
	ReleaseYear int     `json:"releaseYear"`
	Genre       string  `json:"genre"`
	Rating      float64 `json:"rating"`
	Favorite    *bool   `json:"favorite,omitempty"`
}

// writeDTO is the request body for create and update. It never carries an
// ID; the server (or path parameter) owns identity.
type writeDTO struct {
	Title       string  `json:"title"`
	Director    string  `json:"director"`
	ReleaseYear int     `json:"releaseYear"`
	Genre       string  `json:"genre"`
	Rating      float64 `json:"rating"`
	Favorite    bool    `json:"favorite"`
}

// toDomain maps a wire record to the domain shape. A missing favorite flag
// defaults to false.
func toDomain(d movieDTO) domain.Movie {
	m := domain.Movie{
		ID:          d.ID,
		Title:       d.Title,
		Director:    d.Director,
		ReleaseYear: d.ReleaseYear,
		Genre:       d.Genre,
		Rating:      d.Rating,
	}
	if d.Favorite != nil {
		m.Favorite = *d.Favorite
	}
	return m
}

// toWire maps a domain movie to the request body shape, dropping the ID.
func toWire(m domain.Movie) writeDTO {
	return writeDTO{
		Title:       m.Title,
		Director:    m.Director,
		ReleaseYear: m.ReleaseYear,
		Genre:       m.Genre,
		Rating:      m.Rating,
		Favorite:    m.Favorite,
	}
}
