package usecase

import (
	"context"

	"github.com/cinelog/cinelog/internal/query"
)

// Search runs a fuzzy title search over the whole collection, best matches
// first.
func (s *Service) Search(ctx context.Context, q string) ([]query.Match, error) {
	movies, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return query.NewIndex(movies).Search(q), nil
}
