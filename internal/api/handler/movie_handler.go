package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/angelrl48/ex-peliculas-mongo/internal/api/metrics"
	"github.com/angelrl48/ex-peliculas-mongo/internal/core/ports"
)

// MovieHandler handles HTTP requests for movie operations. Every route is
// mounted behind the Auth middleware.
type MovieHandler struct {
	service ports.MovieService
}

func NewMovieHandler(service ports.MovieService) *MovieHandler {
	return &MovieHandler{service: service}
}

// List returns every stored movie.
//
// @Summary      List movies
// @Tags         peliculas
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {array}   domain.Movie
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /peliculas [get]
func (h *MovieHandler) List(c echo.Context) error {
	movies, err := h.service.ListMovies(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}

	metrics.MovieOperationsTotal.WithLabelValues("list").Inc()
	return c.JSON(http.StatusOK, movies)
}

// Get returns a single movie by id.
//
// @Summary      Get a movie
// @Tags         peliculas
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id   path      string  true  "Movie id"
// @Success      200  {object}  domain.Movie
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /peliculas/{id} [get]
func (h *MovieHandler) Get(c echo.Context) error {
	movie, err := h.service.GetMovie(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}

	metrics.MovieOperationsTotal.WithLabelValues("get").Inc()
	return c.JSON(http.StatusOK, movie)
}

// Create stores a new movie.
//
// @Summary      Create a movie
// @Tags         peliculas
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        body  body      movieRequest  true  "Movie"
// @Success      201   {object}  createdResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Router       /peliculas [post]
func (h *MovieHandler) Create(c echo.Context) error {
	var req movieRequest
	if err := decodeJSON(c, &req); err != nil {
		return respondError(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err)
	}

	id, err := h.service.CreateMovie(c.Request().Context(), req.toInput())
	if err != nil {
		return respondError(c, err)
	}

	metrics.MovieOperationsTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, createdResponse{ID: id})
}

// Update replaces the fields of an existing movie.
//
// @Summary      Update a movie
// @Tags         peliculas
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id    path      string        true  "Movie id"
// @Param        body  body      movieRequest  true  "Movie"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /peliculas/{id} [put]
func (h *MovieHandler) Update(c echo.Context) error {
	var req movieRequest
	if err := decodeJSON(c, &req); err != nil {
		return respondError(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, err)
	}

	if err := h.service.UpdateMovie(c.Request().Context(), c.Param("id"), req.toInput()); err != nil {
		return respondError(c, err)
	}

	metrics.MovieOperationsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Pelicula actualizada correctamente"})
}

// Delete removes a movie.
//
// @Summary      Delete a movie
// @Tags         peliculas
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id   path      string  true  "Movie id"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /peliculas/{id} [delete]
func (h *MovieHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteMovie(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err)
	}

	metrics.MovieOperationsTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Pelicula eliminada"})
}
