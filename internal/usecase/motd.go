package usecase

import (
	"context"

	"github.com/cinelog/cinelog/internal/domain"
	"github.com/cinelog/cinelog/internal/query"
)

// MovieOfTheDay picks one favorite deterministically for the current day:
// the same movie for every call within a day, a different one the next,
// cycling through the favorites list. Returns nil when there are no
// favorites; repository failures are logged and mapped to nil, never
// surfaced.
func (s *Service) MovieOfTheDay(ctx context.Context) (*domain.Movie, error) {
	movies, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Warn("movie of the day unavailable", "error", err)
		return nil, nil
	}

	favorites := query.ByFavorites(movies, true)
	if len(favorites) == 0 {
		return nil, nil
	}

	pick := favorites[s.now().YearDay()%len(favorites)]
	return &pick, nil
}
