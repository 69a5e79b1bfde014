package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/angelrl48/ex-peliculas-mongo/internal/core/domain"
	"github.com/angelrl48/ex-peliculas-mongo/internal/core/ports"
)

type stubMovieService struct {
	listFn   func(ctx context.Context) ([]domain.Movie, error)
	getFn    func(ctx context.Context, id string) (*domain.Movie, error)
	createFn func(ctx context.Context, input ports.MovieInput) (string, error)
	updateFn func(ctx context.Context, id string, input ports.MovieInput) error
	deleteFn func(ctx context.Context, id string) error
}

func (s *stubMovieService) ListMovies(ctx context.Context) ([]domain.Movie, error) {
	return s.listFn(ctx)
}

func (s *stubMovieService) GetMovie(ctx context.Context, id string) (*domain.Movie, error) {
	return s.getFn(ctx, id)
}

func (s *stubMovieService) CreateMovie(ctx context.Context, input ports.MovieInput) (string, error) {
	return s.createFn(ctx, input)
}

func (s *stubMovieService) UpdateMovie(ctx context.Context, id string, input ports.MovieInput) error {
	return s.updateFn(ctx, id, input)
}

func (s *stubMovieService) DeleteMovie(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

const topGunBody = `{
	"nombre": "Top Gun",
	"actores": ["Tom Cruise", "Kelly McGillis"],
	"director": "Tony Scott",
	"género": "Acción",
	"calificación": 8.5,
	"año_de_lanzamiento": 1986
}`

// ----------------------------------------------------------------------------
// List / Get
// ----------------------------------------------------------------------------

func TestMovieHandler_List(t *testing.T) {
	stub := &stubMovieService{
		listFn: func(ctx context.Context) ([]domain.Movie, error) {
			return []domain.Movie{{ID: "m1", Name: "Top Gun", Actors: []string{"Tom Cruise"}}}, nil
		},
	}
	h := NewMovieHandler(stub)

	c, rec := newJSONContext(http.MethodGet, "/peliculas", "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var movies []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &movies); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(movies) != 1 || movies[0]["_id"] != "m1" || movies[0]["nombre"] != "Top Gun" {
		t.Fatalf("unexpected payload: %+v", movies)
	}
}

func TestMovieHandler_List_Empty(t *testing.T) {
	stub := &stubMovieService{
		listFn: func(ctx context.Context) ([]domain.Movie, error) { return nil, domain.ErrNoMovies },
	}
	h := NewMovieHandler(stub)

	c, rec := newJSONContext(http.MethodGet, "/peliculas", "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Error != "PELICULAS NO ENCONTRADAS" {
		t.Fatalf("unexpected error message %q", resp.Error)
	}
}

func TestMovieHandler_Get(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"found", nil, http.StatusOK},
		{"not found", domain.ErrMovieNotFound, http.StatusNotFound},
		{"malformed id", domain.ErrInvalidMovieID, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubMovieService{
				getFn: func(ctx context.Context, id string) (*domain.Movie, error) {
					if id != "abc" {
						t.Fatalf("unexpected id %q", id)
					}
					if tc.err != nil {
						return nil, tc.err
					}
					return &domain.Movie{ID: id, Name: "Top Gun"}, nil
				},
			}
			h := NewMovieHandler(stub)

			c, rec := newJSONContext(http.MethodGet, "/peliculas/abc", "")
			c.SetParamNames("id")
			c.SetParamValues("abc")
			if err := h.Get(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// Create / Update / Delete
// ----------------------------------------------------------------------------

func TestMovieHandler_Create(t *testing.T) {
	var got ports.MovieInput
	stub := &stubMovieService{
		createFn: func(ctx context.Context, input ports.MovieInput) (string, error) {
			got = input
			return "new-id", nil
		},
	}
	h := NewMovieHandler(stub)

	c, rec := newJSONContext(http.MethodPost, "/peliculas", topGunBody)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["_id"] != "new-id" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if got.Name != "Top Gun" || got.Genre != "Acción" || got.Rating != 8.5 || got.ReleaseYear != 1986 || len(got.Actors) != 2 {
		t.Fatalf("unexpected input: %+v", got)
	}
}

func TestMovieHandler_Create_CoercesNumericStrings(t *testing.T) {
	var got ports.MovieInput
	stub := &stubMovieService{
		createFn: func(ctx context.Context, input ports.MovieInput) (string, error) {
			got = input
			return "new-id", nil
		},
	}
	h := NewMovieHandler(stub)

	body := `{"nombre":"Top Gun","actores":["Tom Cruise"],"director":"Tony Scott","género":"Acción","calificación":"8","año_de_lanzamiento":"1986"}`
	c, rec := newJSONContext(http.MethodPost, "/peliculas", body)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if got.Rating != 8 || got.ReleaseYear != 1986 {
		t.Fatalf("expected coerced numbers, got %+v", got)
	}
}

func TestMovieHandler_Create_ZeroRatingIsValid(t *testing.T) {
	stub := &stubMovieService{
		createFn: func(ctx context.Context, input ports.MovieInput) (string, error) { return "id", nil },
	}
	h := NewMovieHandler(stub)

	body := `{"nombre":"X","actores":["A"],"director":"D","género":"G","calificación":0,"año_de_lanzamiento":1800}`
	c, rec := newJSONContext(http.MethodPost, "/peliculas", body)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestMovieHandler_Create_ValidationFailures(t *testing.T) {
	cases := []struct {
		name  string
		body  string
		field string
	}{
		{"missing rating", `{"nombre":"X","actores":["A"],"director":"D","género":"G","año_de_lanzamiento":1986}`, "calificación"},
		{"rating too high", `{"nombre":"X","actores":["A"],"director":"D","género":"G","calificación":11,"año_de_lanzamiento":1986}`, "calificación"},
		{"rating not numeric", `{"nombre":"X","actores":["A"],"director":"D","género":"G","calificación":"ocho","año_de_lanzamiento":1986}`, "calificación"},
		{"year too old", `{"nombre":"X","actores":["A"],"director":"D","género":"G","calificación":5,"año_de_lanzamiento":1799}`, "año_de_lanzamiento"},
		{"fractional year", `{"nombre":"X","actores":["A"],"director":"D","género":"G","calificación":5,"año_de_lanzamiento":1986.5}`, "año_de_lanzamiento"},
		{"no actors", `{"nombre":"X","actores":[],"director":"D","género":"G","calificación":5,"año_de_lanzamiento":1986}`, "actores"},
		{"blank actor", `{"nombre":"X","actores":[""],"director":"D","género":"G","calificación":5,"año_de_lanzamiento":1986}`, "actores[0]"},
		{"missing genre", `{"nombre":"X","actores":["A"],"director":"D","calificación":5,"año_de_lanzamiento":1986}`, "género"},
		{"unknown field", `{"nombre":"X","actores":["A"],"director":"D","género":"G","calificación":5,"año_de_lanzamiento":1986,"duracion":120}`, "duracion"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubMovieService{
				createFn: func(ctx context.Context, input ports.MovieInput) (string, error) {
					t.Fatalf("service must not be called")
					return "", nil
				},
			}
			h := NewMovieHandler(stub)

			c, rec := newJSONContext(http.MethodPost, "/peliculas", tc.body)
			if err := h.Create(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			resp := decodeError(t, rec)
			if _, ok := resp.Fields[tc.field]; !ok {
				t.Fatalf("expected field error for %q, got %+v", tc.field, resp.Fields)
			}
		})
	}
}

func TestMovieHandler_Update(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"updated", nil, http.StatusOK},
		{"not found", domain.ErrMovieNotFound, http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubMovieService{
				updateFn: func(ctx context.Context, id string, input ports.MovieInput) error {
					if id != "m1" || input.Name != "Top Gun" {
						t.Fatalf("unexpected args %q %+v", id, input)
					}
					return tc.err
				},
			}
			h := NewMovieHandler(stub)

			c, rec := newJSONContext(http.MethodPut, "/peliculas/m1", topGunBody)
			c.SetParamNames("id")
			c.SetParamValues("m1")
			if err := h.Update(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
		})
	}
}

func TestMovieHandler_Delete(t *testing.T) {
	stub := &stubMovieService{
		deleteFn: func(ctx context.Context, id string) error { return nil },
	}
	h := NewMovieHandler(stub)

	c, rec := newJSONContext(http.MethodDelete, "/peliculas/m1", "")
	c.SetParamNames("id")
	c.SetParamValues("m1")
	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "Pelicula eliminada" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}
