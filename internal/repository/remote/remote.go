// Package remote implements the movie repository against a REST API through
// the generic httpx client. The server is the source of truth; this package
// holds no state beyond the client itself.
package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/cinelog/cinelog/internal/domain"
	"github.com/cinelog/cinelog/internal/httpx"
)

const basePath = "/movies"

// Repository translates CRUD calls into HTTP requests.
type Repository struct {
	client *httpx.Client
}

// NewRepository creates a repository over the given client.
func NewRepository(client *httpx.Client) *Repository {
	return &Repository{client: client}
}

func itemPath(id string) string {
	return basePath + "/" + url.PathEscape(id)
}

// classify marks transport failures, where no HTTP response arrived at all,
// as ErrServerOffline. Status errors and caller cancellations pass through.
func classify(err error) error {
	var he *httpx.Error
	if errors.As(err, &he) {
		return err
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrServerOffline, err)
}

// FindAll fetches the whole collection.
func (r *Repository) FindAll(ctx context.Context) ([]domain.Movie, error) {
	resp, err := r.client.Get(ctx, basePath)
	if err != nil {
		return nil, fmt.Errorf("fetch movies: %w", classify(err))
	}
	var dtos []movieDTO
	if err := resp.Decode(&dtos); err != nil {
		return nil, fmt.Errorf("fetch movies: %w", err)
	}
	movies := make([]domain.Movie, len(dtos))
	for i, d := range dtos {
		movies[i] = toDomain(d)
	}
	return movies, nil
}

// FindByID fetches one movie. A 404 maps to nil, not an error.
func (r *Repository) FindByID(ctx context.Context, id string) (*domain.Movie, error) {
	resp, err := r.client.Get(ctx, itemPath(id))
	if err != nil {
		if httpx.IsStatus(err, http.StatusNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch movie %s: %w", id, classify(err))
	}
	var dto movieDTO
	if err := resp.Decode(&dto); err != nil {
		return nil, fmt.Errorf("fetch movie %s: %w", id, err)
	}
	m := toDomain(dto)
	return &m, nil
}

// Create posts the movie and returns the server-assigned record.
func (r *Repository) Create(ctx context.Context, movie domain.Movie) (domain.Movie, error) {
	resp, err := r.client.Post(ctx, basePath, toWire(movie))
	if err != nil {
		return domain.Movie{}, fmt.Errorf("create movie: %w", classify(err))
	}
	var dto movieDTO
	if err := resp.Decode(&dto); err != nil {
		return domain.Movie{}, fmt.Errorf("create movie: %w", err)
	}
	return toDomain(dto), nil
}

// Update puts the movie. A 404 maps to nil; the path ID wins over any ID in
// the payload.
func (r *Repository) Update(ctx context.Context, id string, movie domain.Movie) (*domain.Movie, error) {
	resp, err := r.client.Put(ctx, itemPath(id), toWire(movie))
	if err != nil {
		if httpx.IsStatus(err, http.StatusNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("update movie %s: %w", id, classify(err))
	}
	var dto movieDTO
	if err := resp.Decode(&dto); err != nil {
		return nil, fmt.Errorf("update movie %s: %w", id, err)
	}
	updated := toDomain(dto)
	updated.ID = id
	return &updated, nil
}

// Delete removes the movie. A 404 maps to false, not an error.
func (r *Repository) Delete(ctx context.Context, id string) (bool, error) {
	if _, err := r.client.Delete(ctx, itemPath(id)); err != nil {
		if httpx.IsStatus(err, http.StatusNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("delete movie %s: %w", id, classify(err))
	}
	return true, nil
}
