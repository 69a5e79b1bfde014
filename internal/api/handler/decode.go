package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/angelrl48/ex-peliculas-mongo/internal/core/domain"
)

// decodeJSON reads the request body into dst. Keys must match the json tags
// of dst exactly; anything else is an unknown field. Unknown fields and
// mistyped values become a *domain.ValidationError.
func decodeJSON(c echo.Context, dst any) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload").SetInternal(err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		verr := domain.NewValidationError()
		verr.Add("_schema", "No input data provided.")
		return verr
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return payloadError(err)
	}
	if verr := unknownKeys(raw, dst); verr != nil {
		return verr
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return payloadError(err)
	}
	return nil
}

func payloadError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "_schema"
		}
		verr := domain.NewValidationError()
		verr.Add(field, typeMessage(typeErr.Type))
		return verr
	}
	return echo.NewHTTPError(http.StatusBadRequest, "invalid payload").SetInternal(err)
}

// unknownKeys reports every key of raw that is not a json tag of the struct
// dst points to. Matching is case-sensitive.
func unknownKeys(raw map[string]json.RawMessage, dst any) *domain.ValidationError {
	declared := jsonNames(reflect.TypeOf(dst))
	verr := domain.NewValidationError()
	for key := range raw {
		if _, ok := declared[key]; !ok {
			verr.Add(key, "Unknown field.")
		}
	}
	if verr.Empty() {
		return nil
	}
	return verr
}

func jsonNames(t reflect.Type) map[string]struct{} {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	names := make(map[string]struct{}, t.NumField())
	if t.Kind() != reflect.Struct {
		return names
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = f.Name
		}
		names[name] = struct{}{}
	}
	return names
}

func typeMessage(t reflect.Type) string {
	if t == nil {
		return "Invalid value."
	}
	switch t.Kind() {
	case reflect.Map:
		return "Invalid input type."
	case reflect.Float32, reflect.Float64:
		return "Not a valid number."
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "Not a valid integer."
	case reflect.String:
		return "Not a valid string."
	case reflect.Slice, reflect.Array:
		return "Not a valid list."
	default:
		return "Invalid value."
	}
}

// flexFloat accepts a JSON number or a string holding one.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	v, ok := parseNumber(b)
	if !ok {
		return &json.UnmarshalTypeError{Value: string(b), Type: reflect.TypeOf(float64(0))}
	}
	*f = flexFloat(v)
	return nil
}

// flexInt accepts a JSON number or numeric string with no fractional part.
type flexInt int

func (n *flexInt) UnmarshalJSON(b []byte) error {
	v, ok := parseNumber(b)
	if !ok || v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
		return &json.UnmarshalTypeError{Value: string(b), Type: reflect.TypeOf(int(0))}
	}
	*n = flexInt(v)
	return nil
}

func parseNumber(b []byte) (float64, bool) {
	s := string(b)
	if strings.HasPrefix(s, `"`) {
		unq, err := strconv.Unquote(s)
		if err != nil {
			return 0, false
		}
		s = strings.TrimSpace(unq)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
