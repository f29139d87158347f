package domain

import "fmt"

// Movie is the sole domain entity: a single record in the user's collection.
type Movie struct {
	ID          string  `json:"id"`          // Assigned by the repository on creation, immutable afterward
	Title       string  `json:"title"`       // Display title
	Director    string  `json:"director"`    // Director name
	ReleaseYear int     `json:"releaseYear"` // Release year
	Genre       string  `json:"genre"`       // Free-form genre label
	Rating      float64 `json:"rating"`      // Audience rating, 0-10 scale
	Favorite    bool    `json:"favorite"`    // User favorite flag
}

// Description returns secondary info for display (e.g., "2014 · Sci-Fi").
func (m Movie) Description() string {
	if m.Genre != "" {
		return fmt.Sprintf("%d · %s", m.ReleaseYear, m.Genre)
	}
	return fmt.Sprintf("%d", m.ReleaseYear)
}
