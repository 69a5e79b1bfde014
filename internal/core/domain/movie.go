package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrMovieNotFound = errors.New("movie not found")
var ErrNoMovies = errors.New("no movies found")
var ErrInvalidMovieID = errors.New("invalid movie id")

// Movie is the single document type managed by the API.
type Movie struct {
	ID          string   `json:"_id"`
	Name        string   `json:"nombre"`
	Actors      []string `json:"actores"`
	Director    string   `json:"director"`
	Genre       string   `json:"género"`
	Rating      float64  `json:"calificación"`
	ReleaseYear int      `json:"año_de_lanzamiento"`
}

// ValidationError carries per-field messages keyed by the JSON field name.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError returns an empty ValidationError ready for Add.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

// Add appends msg to the messages recorded for field.
func (e *ValidationError) Add(field, msg string) {
	e.Fields[field] = append(e.Fields[field], msg)
}

// Empty reports whether no field error has been recorded.
func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e.Fields[k], ", ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
