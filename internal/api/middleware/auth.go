package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/angelrl48/ex-peliculas-mongo/internal/api/handler"
	"github.com/angelrl48/ex-peliculas-mongo/internal/api/metrics"
	"github.com/angelrl48/ex-peliculas-mongo/internal/core/domain"
	"github.com/angelrl48/ex-peliculas-mongo/internal/core/ports"
)

// TokenHeader carries the raw access token, without any scheme prefix.
const TokenHeader = "x-access-token"

// Auth resolves the x-access-token header into a user and injects it into
// both the echo context and the request context.
func Auth(authenticator ports.Authenticator, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			user, err := authenticator.Authenticate(req.Context(), req.Header.Get(TokenHeader))
			if err != nil {
				status, msg, ok := handler.ResolveError(err)
				if !ok || status != http.StatusUnauthorized {
					return err
				}

				reason := failureReason(err)
				metrics.AuthFailuresTotal.WithLabelValues(reason).Inc()
				log.Warn().
					Str("reason", reason).
					Str("method", req.Method).
					Str("path", c.Path()).
					Msg("request rejected")

				return echo.NewHTTPError(status, msg).SetInternal(err)
			}

			c.Set(handler.UserContextKey, user)
			c.SetRequest(req.WithContext(domain.WithUser(req.Context(), user)))
			return next(c)
		}
	}
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrTokenMissing):
		return "missing"
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	case errors.Is(err, domain.ErrUserNotFound):
		return "unknown_user"
	default:
		return "invalid"
	}
}
