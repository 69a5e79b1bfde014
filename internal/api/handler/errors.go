package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/angelrl48/ex-peliculas-mongo/internal/core/domain"
)

const loginRealm = `Basic realm="Inténtalo de nuevo!"`

// ErrorResponse is the canonical error envelope for all API errors.
type ErrorResponse struct {
	Error  string              `json:"error"`
	Fields map[string][]string `json:"fields,omitempty"`
}

// ResolveError maps known domain errors to a status code and client message.
// ok is false when err has no mapping and should be treated as internal.
func ResolveError(err error) (status int, msg string, ok bool) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, "Datos inválidos", true
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusBadRequest, "El nombre de usuario ya existe, ingresa otro", true
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Error al iniciar sesión", true
	case errors.Is(err, domain.ErrTokenMissing):
		return http.StatusUnauthorized, "Token no encontrado!", true
	case errors.Is(err, domain.ErrTokenExpired):
		return http.StatusUnauthorized, "El token ha expirado", true
	case errors.Is(err, domain.ErrTokenInvalid):
		return http.StatusUnauthorized, "El token es inválido", true
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusUnauthorized, "Usuario del token no encontrado", true
	case errors.Is(err, domain.ErrInvalidMovieID):
		return http.StatusBadRequest, "ID de pelicula inválido", true
	case errors.Is(err, domain.ErrNoMovies):
		return http.StatusNotFound, "PELICULAS NO ENCONTRADAS", true
	case errors.Is(err, domain.ErrMovieNotFound):
		return http.StatusNotFound, "Pelicula no encontrada", true
	}
	return 0, "", false
}

// RenderError writes the error envelope for err when it has a known mapping.
// handled is false, and nothing is written, otherwise.
func RenderError(c echo.Context, err error) (handled bool, writeErr error) {
	status, msg, ok := ResolveError(err)
	if !ok {
		return false, nil
	}

	resp := ErrorResponse{Error: msg}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		resp.Fields = verr.Fields
	}
	if errors.Is(err, domain.ErrInvalidCredentials) {
		c.Response().Header().Set(echo.HeaderWWWAuthenticate, loginRealm)
	}
	return true, c.JSON(status, resp)
}

// respondError renders known errors and hands anything else to the central
// HTTP error handler.
func respondError(c echo.Context, err error) error {
	if handled, werr := RenderError(c, err); handled {
		return werr
	}
	return err
}
