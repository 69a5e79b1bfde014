package service

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/angelrl48/ex-peliculas-mongo/internal/core/domain"
	"github.com/angelrl48/ex-peliculas-mongo/internal/core/ports"
)

// AuthService implements registration, login and token authentication.
type AuthService struct {
	repo       ports.AuthRepository
	tokens     ports.TokenManager
	logger     zerolog.Logger
	bcryptCost int
}

func NewAuthService(repo ports.AuthRepository, tokens ports.TokenManager, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, logger: logger, bcryptCost: bcrypt.DefaultCost}
}

// WithBcryptCost overrides the hashing cost. Values outside bcrypt's range
// are ignored.
func (s *AuthService) WithBcryptCost(cost int) *AuthService {
	if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
		s.bcryptCost = cost
	}
	return s
}

func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword(passwordDigest(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			s.logger.Warn().Str("user", username).Msg("registration rejected: username taken")
		}
		return nil, err
	}

	s.logger.Info().Str("user", username).Str("user_id", created.ID).Msg("user registered")
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.logger.Warn().Str("user", username).Msg("login failed: unknown user")
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), passwordDigest(password)) != nil {
		s.logger.Warn().Str("user", username).Msg("login failed: wrong password")
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	s.logger.Info().Str("user", username).Msg("user logged in")
	return token, user, nil
}

// Authenticate verifies token and resolves the user it names. A token whose
// subject no longer exists yields domain.ErrUserNotFound.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrTokenMissing
	}

	userID, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// passwordDigest maps a password of any length to the 44-byte bcrypt input
// that is actually hashed. bcrypt itself rejects inputs over 72 bytes.
func passwordDigest(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}
