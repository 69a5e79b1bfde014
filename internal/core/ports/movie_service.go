package ports

import (
	"context"

	"github.com/angelrl48/ex-peliculas-mongo/internal/core/domain"
)

// MovieInput carries the schema-valid fields of a create or update request.
type MovieInput struct {
	Name        string
	Actors      []string
	Director    string
	Genre       string
	Rating      float64
	ReleaseYear int
}

// MovieService defines use-case operations for movies.
type MovieService interface {
	ListMovies(ctx context.Context) ([]domain.Movie, error)
	GetMovie(ctx context.Context, id string) (*domain.Movie, error)
	CreateMovie(ctx context.Context, input MovieInput) (string, error)
	UpdateMovie(ctx context.Context, id string, input MovieInput) error
	DeleteMovie(ctx context.Context, id string) error
}
