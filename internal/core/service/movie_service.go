package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/angelrl48/ex-peliculas-mongo/internal/core/domain"
	"github.com/angelrl48/ex-peliculas-mongo/internal/core/ports"
)

type MovieService struct {
	repo   ports.MovieRepository
	cache  ports.MovieCache
	logger zerolog.Logger

	emptyListNotFound bool
}

// MovieOption configures optional MovieService behaviour.
type MovieOption func(*MovieService)

// WithCache puts cache in front of the repository for single-movie reads.
func WithCache(cache ports.MovieCache) MovieOption {
	return func(s *MovieService) { s.cache = cache }
}

// WithEmptyListNotFound controls whether listing an empty collection
// reports domain.ErrNoMovies (true) or an empty slice (false).
func WithEmptyListNotFound(v bool) MovieOption {
	return func(s *MovieService) { s.emptyListNotFound = v }
}

func NewMovieService(repo ports.MovieRepository, logger zerolog.Logger, opts ...MovieOption) *MovieService {
	s := &MovieService{repo: repo, logger: logger, emptyListNotFound: true}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MovieService) ListMovies(ctx context.Context) ([]domain.Movie, error) {
	movies, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(movies) == 0 {
		if s.emptyListNotFound {
			return nil, domain.ErrNoMovies
		}
		movies = []domain.Movie{}
	}

	s.logger.Info().Str("user", actor(ctx)).Int("count", len(movies)).Msg("movies listed")
	return movies, nil
}

// GetMovie returns a single movie, consulting the cache first when one is
// configured. Cache failures are logged and fall through to the repository.
func (s *MovieService) GetMovie(ctx context.Context, id string) (*domain.Movie, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, id)
		if err != nil {
			s.logger.Warn().Err(err).Str("movie_id", id).Msg("cache lookup failed, reading from store")
		} else if ok {
			s.logger.Info().Str("user", actor(ctx)).Str("movie", cached.Name).Bool("cached", true).Msg("movie fetched")
			return cached, nil
		}
	}

	movie, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, movie); err != nil {
			s.logger.Warn().Err(err).Str("movie_id", id).Msg("failed to cache movie")
		}
	}

	s.logger.Info().Str("user", actor(ctx)).Str("movie", movie.Name).Msg("movie fetched")
	return movie, nil
}

func (s *MovieService) CreateMovie(ctx context.Context, input ports.MovieInput) (string, error) {
	movie := toMovie(input)
	id, err := s.repo.Create(ctx, movie)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create movie")
		return "", err
	}

	s.logger.Info().Str("user", actor(ctx)).Str("movie", movie.Name).Str("movie_id", id).Msg("movie created")
	return id, nil
}

func (s *MovieService) UpdateMovie(ctx context.Context, id string, input ports.MovieInput) error {
	if err := s.repo.Update(ctx, id, toMovie(input)); err != nil {
		if errors.Is(err, domain.ErrMovieNotFound) {
			s.logger.Warn().Str("movie_id", id).Msg("movie not found for update")
		}
		return err
	}
	s.invalidate(ctx, id)

	s.logger.Info().Str("user", actor(ctx)).Str("movie_id", id).Msg("movie updated")
	return nil
}

func (s *MovieService) DeleteMovie(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrMovieNotFound) {
			s.logger.Warn().Str("movie_id", id).Msg("movie not found for delete")
		}
		return err
	}
	s.invalidate(ctx, id)

	s.logger.Info().Str("user", actor(ctx)).Str("movie_id", id).Msg("movie deleted")
	return nil
}

func (s *MovieService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("movie_id", id).Msg("failed to invalidate cached movie")
	}
}

func toMovie(in ports.MovieInput) *domain.Movie {
	actors := make([]string, len(in.Actors))
	copy(actors, in.Actors)
	return &domain.Movie{
		Name:        in.Name,
		Actors:      actors,
		Director:    in.Director,
		Genre:       in.Genre,
		Rating:      in.Rating,
		ReleaseYear: in.ReleaseYear,
	}
}

// actor names the authenticated user for log lines.
func actor(ctx context.Context) string {
	if u, ok := domain.UserFromContext(ctx); ok {
		return u.Username
	}
	return "anonymous"
}
