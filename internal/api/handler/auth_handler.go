package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/angelrl48/ex-peliculas-mongo/internal/api/metrics"
	"github.com/angelrl48/ex-peliculas-mongo/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "User credentials"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /registro [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req credentialsRequest
	if err := decodeJSON(c, &req); err != nil {
		return respondError(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err)
	}

	username, password := req.credentials()
	if _, err := h.authService.Register(c.Request().Context(), username, password); err != nil {
		return respondError(c, err)
	}

	metrics.UsersRegisteredTotal.Inc()
	return c.JSON(http.StatusCreated, messageResponse{Message: "Usuario registrado correctamente"})
}

// Login authenticates a user and returns an access token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "User credentials"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsRequest
	if err := decodeJSON(c, &req); err != nil {
		return respondError(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err)
	}

	username, password := req.credentials()
	token, _, err := h.authService.Login(c.Request().Context(), username, password)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		return respondError(c, err)
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}
