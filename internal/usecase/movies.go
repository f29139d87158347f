// Package usecase wraps repository calls with input validation and
// consistent error messages. Absence becomes an explicit error here for the
// operations that require an existing record.
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cinelog/cinelog/internal/domain"
)

// Service orchestrates movie operations over a repository backend.
type Service struct {
	repo   domain.MovieRepository
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a new Service instance.
func NewService(repo domain.MovieRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// GetAll returns the whole collection.
func (s *Service) GetAll(ctx context.Context) ([]domain.Movie, error) {
	movies, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("failed to retrieve movies", "error", err)
		return nil, fmt.Errorf("failed to retrieve movies: %w", err)
	}
	return movies, nil
}

// GetByID returns one movie, or nil when the ID is unknown. Absence is not
// an error here; callers that require existence check the nil themselves.
func (s *Service) GetByID(ctx context.Context, id string) (*domain.Movie, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrIDRequired
	}
	movie, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to retrieve movie", "error", err, "id", id)
		return nil, fmt.Errorf("failed to retrieve movie with ID %s: %w", id, err)
	}
	return movie, nil
}

// Create validates and sanitizes the input, then stores it.
func (s *Service) Create(ctx context.Context, movie domain.Movie) (domain.Movie, error) {
	if err := domain.Validate(movie); err != nil {
		return domain.Movie{}, err
	}
	created, err := s.repo.Create(ctx, domain.Sanitize(movie))
	if err != nil {
		s.logger.Error("failed to create movie", "error", err, "title", movie.Title)
		return domain.Movie{}, fmt.Errorf("failed to create movie: %w", err)
	}
	s.logger.Debug("created movie", "id", created.ID, "title", created.Title)
	return created, nil
}

// UpdateInput carries a partial update; nil fields are left unchanged.
type UpdateInput struct {
	Title       *string
	Director    *string
	ReleaseYear *int
	Genre       *string
	Rating      *float64
	Favorite    *bool
}

// validate checks only the fields present in the partial payload.
func (in UpdateInput) validate() error {
	if in.Title != nil {
		if err := domain.ValidateTitle(*in.Title); err != nil {
			return err
		}
	}
	if in.Director != nil {
		if err := domain.ValidateDirector(*in.Director); err != nil {
			return err
		}
	}
	if in.Genre != nil {
		if err := domain.ValidateGenre(*in.Genre); err != nil {
			return err
		}
	}
	if in.ReleaseYear != nil {
		if err := domain.ValidateReleaseYear(*in.ReleaseYear); err != nil {
			return err
		}
	}
	if in.Rating != nil {
		if err := domain.ValidateRating(*in.Rating); err != nil {
			return err
		}
	}
	return nil
}

// merge applies the payload onto the existing record, trimming updated
// string fields and preserving everything unspecified.
func (in UpdateInput) merge(m domain.Movie) domain.Movie {
	if in.Title != nil {
		m.Title = strings.TrimSpace(*in.Title)
	}
	if in.Director != nil {
		m.Director = strings.TrimSpace(*in.Director)
	}
	if in.Genre != nil {
		m.Genre = strings.TrimSpace(*in.Genre)
	}
	if in.ReleaseYear != nil {
		m.ReleaseYear = *in.ReleaseYear
	}
	if in.Rating != nil {
		m.Rating = *in.Rating
	}
	if in.Favorite != nil {
		m.Favorite = *in.Favorite
	}
	return m
}

// Update applies a partial update to an existing movie. The stored ID is
// always preserved.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*domain.Movie, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrIDRequired
	}
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("movie with ID %s: %w", id, domain.ErrNotFound)
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, in.merge(*existing))
	if err != nil {
		s.logger.Error("failed to update movie", "error", err, "id", id)
		return nil, fmt.Errorf("failed to update movie with ID %s: %w", id, err)
	}
	if updated == nil {
		return nil, fmt.Errorf("movie with ID %s: %w", id, domain.ErrNotFound)
	}
	return updated, nil
}

// Delete removes an existing movie; an unknown ID is an error.
func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return domain.ErrIDRequired
	}
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("movie with ID %s: %w", id, domain.ErrNotFound)
	}
	if _, err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete movie", "error", err, "id", id)
		return fmt.Errorf("failed to delete movie with ID %s: %w", id, err)
	}
	return nil
}

// ToggleFavorite flips the favorite flag on an existing movie.
func (s *Service) ToggleFavorite(ctx context.Context, id string) (*domain.Movie, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrIDRequired
	}
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("movie with ID %s: %w", id, domain.ErrNotFound)
	}

	flipped := *existing
	flipped.Favorite = !flipped.Favorite
	updated, err := s.repo.Update(ctx, id, flipped)
	if err != nil {
		s.logger.Error("failed to toggle favorite", "error", err, "id", id)
		return nil, fmt.Errorf("failed to toggle favorite for ID %s: %w", id, err)
	}
	if updated == nil {
		return nil, fmt.Errorf("movie with ID %s: %w", id, domain.ErrNotFound)
	}
	return updated, nil
}
