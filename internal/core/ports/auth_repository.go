package ports

import (
	"context"

	"github.com/angelrl48/ex-peliculas-mongo/internal/core/domain"
)

// AuthRepository defines the interface for user credential persistence.
type AuthRepository interface {
	// Create inserts the user. A username collision returns domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
