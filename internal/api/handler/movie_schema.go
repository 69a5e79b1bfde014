package handler

import (
	"github.com/angelrl48/ex-peliculas-mongo/internal/core/ports"
)

// movieRequest is the body of POST and PUT /peliculas. Scalar fields are
// pointers so required only fails on absent or null values.
type movieRequest struct {
	Name        *string    `json:"nombre" validate:"required,min=1" swaggertype:"string"`
	Actors      []string   `json:"actores" validate:"required,min=1,dive,required"`
	Director    *string    `json:"director" validate:"required,min=1" swaggertype:"string"`
	Genre       *string    `json:"género" validate:"required,min=1" swaggertype:"string"`
	Rating      *flexFloat `json:"calificación" validate:"required,gte=0,lte=10" swaggertype:"number"`
	ReleaseYear *flexInt   `json:"año_de_lanzamiento" validate:"required,gte=1800,lte=2100" swaggertype:"integer"`
}

func (r movieRequest) toInput() ports.MovieInput {
	in := ports.MovieInput{
		Name:     deref(r.Name),
		Actors:   r.Actors,
		Director: deref(r.Director),
		Genre:    deref(r.Genre),
	}
	if r.Rating != nil {
		in.Rating = float64(*r.Rating)
	}
	if r.ReleaseYear != nil {
		in.ReleaseYear = int(*r.ReleaseYear)
	}
	return in
}

type createdResponse struct {
	ID string `json:"_id"`
}
