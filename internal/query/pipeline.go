// Package query implements the pure filter/sort pipeline applied to a movie
// collection for display. Every function returns a new slice and leaves its
// input untouched, so applying the same Filters twice yields the same result.
package query

import (
	"sort"
	"strconv"
	"strings"

	"github.com/cinelog/cinelog/internal/domain"
)

// Criteria selects which field a free-text search matches against.
type Criteria string

const (
	CriteriaTitle       Criteria = "title"
	CriteriaDirector    Criteria = "director"
	CriteriaReleaseYear Criteria = "releaseYear"
	CriteriaRating      Criteria = "rating"
	CriteriaAny         Criteria = "any"
)

// SortKey selects the display ordering of a filtered collection.
type SortKey string

const (
	SortNone        SortKey = ""
	SortTitle       SortKey = "title"
	SortDirector    SortKey = "director"
	SortReleaseYear SortKey = "releaseYear"
	SortRating      SortKey = "rating"
)

// AllGenres is the sentinel genre value meaning "no genre filter".
const AllGenres = "all"

// Filters is the full filter/sort configuration for one rendering pass.
type Filters struct {
	OnlyFavorites bool
	Query         string
	Criteria      Criteria
	Genre         string
	SortBy        SortKey
}

// Apply runs the fixed pipeline: favorites, search, genre, sort. Each stage
// receives the previous stage's output regardless of which filters are active.
func Apply(movies []domain.Movie, f Filters) []domain.Movie {
	out := ByFavorites(movies, f.OnlyFavorites)
	out = BySearch(out, f.Query, f.Criteria)
	out = ByGenre(out, f.Genre)
	return Sort(out, f.SortBy)
}

// ByFavorites keeps only favorited movies when only is set.
func ByFavorites(movies []domain.Movie, only bool) []domain.Movie {
	if !only {
		return copyMovies(movies)
	}
	out := make([]domain.Movie, 0, len(movies))
	for _, m := range movies {
		if m.Favorite {
			out = append(out, m)
		}
	}
	return out
}

// BySearch keeps movies whose selected field contains the query as a
// case-insensitive substring. A query that trims to empty passes everything
// through. Year and rating match against their decimal string renderings, so
// "199" matches 1994 and 1999.
func BySearch(movies []domain.Movie, query string, criteria Criteria) []domain.Movie {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return copyMovies(movies)
	}
	out := make([]domain.Movie, 0, len(movies))
	for _, m := range movies {
		if matches(m, q, criteria) {
			out = append(out, m)
		}
	}
	return out
}

func matches(m domain.Movie, q string, criteria Criteria) bool {
	switch criteria {
	case CriteriaTitle:
		return strings.Contains(strings.ToLower(m.Title), q)
	case CriteriaDirector:
		return strings.Contains(strings.ToLower(m.Director), q)
	case CriteriaReleaseYear:
		return strings.Contains(strconv.Itoa(m.ReleaseYear), q)
	case CriteriaRating:
		return strings.Contains(formatRating(m.Rating), q)
	default:
		// "any": title or director, not genre, not year
		return strings.Contains(strings.ToLower(m.Title), q) ||
			strings.Contains(strings.ToLower(m.Director), q)
	}
}

// formatRating renders a rating the way users type it: 9.0 as "9", 8.8 as "8.8".
func formatRating(r float64) string {
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// ByGenre keeps exact genre matches. Empty or the AllGenres sentinel passes
// everything through. Matching is case-sensitive.
func ByGenre(movies []domain.Movie, genre string) []domain.Movie {
	if genre == "" || genre == AllGenres {
		return copyMovies(movies)
	}
	out := make([]domain.Movie, 0, len(movies))
	for _, m := range movies {
		if m.Genre == genre {
			out = append(out, m)
		}
	}
	return out
}

// Sort orders a copy of the collection by the given key. Title and director
// sort ascending (case-insensitive); release year and rating sort descending,
// newest and highest first. SortNone preserves the current order.
func Sort(movies []domain.Movie, key SortKey) []domain.Movie {
	out := copyMovies(movies)
	switch key {
	case SortTitle:
		sort.SliceStable(out, func(i, j int) bool {
			return lessFold(out[i].Title, out[j].Title)
		})
	case SortDirector:
		sort.SliceStable(out, func(i, j int) bool {
			return lessFold(out[i].Director, out[j].Director)
		})
	case SortReleaseYear:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].ReleaseYear > out[j].ReleaseYear
		})
	case SortRating:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Rating > out[j].Rating
		})
	}
	return out
}

func lessFold(a, b string) bool {
	return strings.ToLower(a) < strings.ToLower(b)
}

func copyMovies(movies []domain.Movie) []domain.Movie {
	out := make([]domain.Movie, len(movies))
	copy(out, movies)
	return out
}
