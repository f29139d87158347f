package domain

import "context"

// MovieRepository is the uniform CRUD contract both backends satisfy.
// Absence is reported through return values, not errors: FindByID and
// Update return nil for an unknown ID, Delete returns false.
type MovieRepository interface {
	// FindAll returns every movie in the collection.
	FindAll(ctx context.Context) ([]Movie, error)

	// FindByID returns the movie with the given ID, or nil if absent.
	FindByID(ctx context.Context, id string) (*Movie, error)

	// Create stores a new movie and returns it with a freshly assigned ID.
	// Any ID present on the input is ignored.
	Create(ctx context.Context, movie Movie) (Movie, error)

	// Update replaces the stored movie. The stored ID always wins over any
	// ID carried in the payload. Returns nil if the ID does not exist.
	Update(ctx context.Context, id string, movie Movie) (*Movie, error)

	// Delete removes a movie. Returns true if a record was removed.
	Delete(ctx context.Context, id string) (bool, error)
}
