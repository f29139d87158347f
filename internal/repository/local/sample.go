package local

import "github.com/cinelog/cinelog/internal/domain"

// sampleMovies is the built-in dataset used when the store holds nothing
// usable. IDs use the sample- prefix so they never collide with generated
// local- IDs.
var sampleMovies = []domain.Movie{
	{ID: "sample-1", Title: "The Shawshank Redemption", Director: "Frank Darabont", ReleaseYear: 1994, Genre: "Drama", Rating: 9.3, Favorite: true},
	{ID: "sample-2", Title: "The Godfather", Director: "Francis Ford Coppola", ReleaseYear: 1972, Genre: "Crime", Rating: 9.2, Favorite: false},
	{ID: "sample-3", Title: "The Dark Knight", Director: "Christopher Nolan", ReleaseYear: 2008, Genre: "Action", Rating: 9.0, Favorite: true},
	{ID: "sample-4", Title: "Pulp Fiction", Director: "Quentin Tarantino", ReleaseYear: 1994, Genre: "Crime", Rating: 8.9, Favorite: false},
	{ID: "sample-5", Title: "Inception", Director: "Christopher Nolan", ReleaseYear: 2010, Genre: "Sci-Fi", Rating: 8.8, Favorite: false},
	{ID: "sample-6", Title: "Spirited Away", Director: "Hayao Miyazaki", ReleaseYear: 2001, Genre: "Animation", Rating: 8.6, Favorite: false},
	{ID: "sample-7", Title: "Parasite", Director: "Bong Joon-ho", ReleaseYear: 2019, Genre: "Thriller", Rating: 8.5, Favorite: false},
	{ID: "sample-8", Title: "The Matrix", Director: "Lana Wachowski", ReleaseYear: 1999, Genre: "Sci-Fi", Rating: 8.7, Favorite: false},
}

// SampleMovies returns a copy of the built-in sample dataset. It never
// touches the store.
func SampleMovies() []domain.Movie {
	out := make([]domain.Movie, len(sampleMovies))
	copy(out, sampleMovies)
	return out
}
