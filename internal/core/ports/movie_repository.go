package ports

import (
	"context"

	"github.com/angelrl48/ex-peliculas-mongo/internal/core/domain"
)

// MovieRepository defines persistence operations for movies.
// Malformed ids surface as domain.ErrInvalidMovieID, unknown ones as
// domain.ErrMovieNotFound.
type MovieRepository interface {
	List(ctx context.Context) ([]domain.Movie, error)
	FindByID(ctx context.Context, id string) (*domain.Movie, error)
	Create(ctx context.Context, m *domain.Movie) (string, error)
	Update(ctx context.Context, id string, m *domain.Movie) error
	Delete(ctx context.Context, id string) error
}

// MovieCache is an optional read-through cache in front of MovieRepository.
type MovieCache interface {
	Get(ctx context.Context, id string) (*domain.Movie, bool, error)
	Set(ctx context.Context, m *domain.Movie) error
	Invalidate(ctx context.Context, id string) error
}
