package ports

import (
	"context"

	"github.com/angelrl48/ex-peliculas-mongo/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	Authenticator
}

// Authenticator resolves a raw token into the user it was issued to.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}
