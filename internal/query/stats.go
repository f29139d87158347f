package query

import (
	"sort"
	"time"

	"github.com/cinelog/cinelog/internal/domain"
)

// Genres returns the unique genres in the collection, sorted.
func Genres(movies []domain.Movie) []string {
	seen := make(map[string]bool)
	var genres []string
	for _, m := range movies {
		if m.Genre != "" && !seen[m.Genre] {
			seen[m.Genre] = true
			genres = append(genres, m.Genre)
		}
	}
	sort.Strings(genres)
	return genres
}

// YearRange returns the minimum and maximum release year. An empty
// collection yields the current year for both bounds.
func YearRange(movies []domain.Movie) (min, max int) {
	if len(movies) == 0 {
		year := time.Now().Year()
		return year, year
	}
	min, max = movies[0].ReleaseYear, movies[0].ReleaseYear
	for _, m := range movies[1:] {
		if m.ReleaseYear < min {
			min = m.ReleaseYear
		}
		if m.ReleaseYear > max {
			max = m.ReleaseYear
		}
	}
	return min, max
}

// RatingRange returns the minimum and maximum rating. An empty collection
// yields the full 0-10 scale.
func RatingRange(movies []domain.Movie) (min, max float64) {
	if len(movies) == 0 {
		return domain.MinRating, domain.MaxRating
	}
	min, max = movies[0].Rating, movies[0].Rating
	for _, m := range movies[1:] {
		if m.Rating < min {
			min = m.Rating
		}
		if m.Rating > max {
			max = m.Rating
		}
	}
	return min, max
}
