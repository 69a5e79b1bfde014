package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/angelrl48/ex-peliculas-mongo/internal/api/handler"
	"github.com/angelrl48/ex-peliculas-mongo/internal/api/metrics"
	"github.com/angelrl48/ex-peliculas-mongo/internal/core/domain"
)

type stubAuthenticator struct {
	authenticateFn func(ctx context.Context, token string) (*domain.User, error)
}

func (s *stubAuthenticator) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	return s.authenticateFn(ctx, token)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TokenHeader, "good")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	stub := &stubAuthenticator{
		authenticateFn: func(ctx context.Context, token string) (*domain.User, error) {
			if token != "good" {
				t.Fatalf("unexpected token %q", token)
			}
			return &domain.User{ID: "u1", Username: "angel"}, nil
		},
	}

	called := false
	mw := Auth(stub, zerolog.Nop())
	h := mw(func(c echo.Context) error {
		called = true
		u, ok := handler.CurrentUser(c)
		if !ok || u.Username != "angel" {
			t.Fatalf("user not set on echo context")
		}
		ru, ok := domain.UserFromContext(c.Request().Context())
		if !ok || ru.ID != "u1" {
			t.Fatalf("user not set on request context")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		reason  string
		message string
	}{
		{"missing", domain.ErrTokenMissing, "missing", "Token no encontrado!"},
		{"expired", domain.ErrTokenExpired, "expired", "El token ha expirado"},
		{"invalid", domain.ErrTokenInvalid, "invalid", "El token es inválido"},
		{"unknown user", domain.ErrUserNotFound, "unknown_user", "Usuario del token no encontrado"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
			counter := metrics.AuthFailuresTotal.WithLabelValues(tc.reason)
			before := testutil.ToFloat64(counter)

			stub := &stubAuthenticator{
				authenticateFn: func(context.Context, string) (*domain.User, error) { return nil, tc.err },
			}
			h := Auth(stub, zerolog.Nop())(func(c echo.Context) error {
				t.Fatalf("should not reach next")
				return nil
			})

			err := h(c)
			var he *echo.HTTPError
			if !errors.As(err, &he) {
				t.Fatalf("expected *echo.HTTPError, got %v", err)
			}
			if he.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", he.Code)
			}
			if he.Message != tc.message {
				t.Fatalf("expected %q, got %v", tc.message, he.Message)
			}
			if !errors.Is(err, tc.err) {
				t.Fatalf("expected wrapped %v", tc.err)
			}
			if got := testutil.ToFloat64(counter) - before; got != 1 {
				t.Fatalf("expected failure counted once, got %v", got)
			}
		})
	}
}

func TestAuthMiddleware_PassesThroughInternalErrors(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	boom := errors.New("mongo unavailable")

	stub := &stubAuthenticator{
		authenticateFn: func(context.Context, string) (*domain.User, error) { return nil, boom },
	}
	h := Auth(stub, zerolog.Nop())(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := h(c); !errors.Is(err, boom) {
		t.Fatalf("expected internal error to pass through, got %v", err)
	}
}

func TestAuthMiddleware_ReadsTokenHeaderOnly(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")
	c := e.NewContext(req, httptest.NewRecorder())

	var seen string
	stub := &stubAuthenticator{
		authenticateFn: func(_ context.Context, token string) (*domain.User, error) {
			seen = token
			return nil, domain.ErrTokenMissing
		},
	}

	_ = Auth(stub, zerolog.Nop())(func(echo.Context) error { return nil })(c)
	if seen != "" {
		t.Fatalf("expected empty token from x-access-token, got %q", seen)
	}
}
