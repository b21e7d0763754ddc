package httpapi

import (
	"errors"
	"net/http"
	"net/url"
	"sort"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/ljxowen/movie-recommender/internal/server/service"
	"github.com/ljxowen/movie-recommender/internal/shared/models"
)

func writeDetail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"detail": msg})
}

func writeValidation(w http.ResponseWriter, errs ...models.ValidationError) {
	writeJSON(w, http.StatusUnprocessableEntity, models.HTTPValidationError{Detail: errs})
}

func missing(field string) models.ValidationError {
	return models.ValidationError{Loc: []any{"body", field}, Msg: "Field required", Type: "missing"}
}

// requireFields reports a 422 listing every empty field.
func requireFields(w http.ResponseWriter, fields map[string]string) bool {
	var errs []models.ValidationError
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if fields[name] == "" {
			errs = append(errs, missing(name))
		}
	}
	if len(errs) > 0 {
		writeValidation(w, errs...)
		return false
	}
	return true
}

func decodeBody(w http.ResponseWriter, req *http.Request, v any) bool {
	if err := json.NewDecoder(req.Body).Decode(v); err != nil {
		writeValidation(w, models.ValidationError{Loc: []any{"body"}, Msg: "JSON decode error: " + err.Error(), Type: "json_invalid"})
		return false
	}
	return true
}

func pathInt(w http.ResponseWriter, req *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(chi.URLParam(req, name))
	if err != nil {
		writeValidation(w, models.ValidationError{
			Loc:  []any{"path", name},
			Msg:  "Input should be a valid integer, unable to parse string as an integer",
			Type: "int_parsing",
		})
		return 0, false
	}
	return v, true
}

// pathString returns the decoded path parameter; clients percent-encode it.
func pathString(req *http.Request, name string) string {
	raw := chi.URLParam(req, name)
	if s, err := url.PathUnescape(raw); err == nil {
		return s
	}
	return raw
}

func queryInt(w http.ResponseWriter, req *http.Request, name string, def int) (int, bool) {
	s := req.URL.Query().Get(name)
	if s == "" {
		return def, true
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		writeValidation(w, models.ValidationError{
			Loc:  []any{"query", name},
			Msg:  "Input should be a valid integer, unable to parse string as an integer",
			Type: "int_parsing",
		})
		return 0, false
	}
	return v, true
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeDetail(w, http.StatusNotFound, "Not found")
	case errors.Is(err, service.ErrForbidden):
		writeDetail(w, http.StatusForbidden, "The user doesn't have enough privileges")
	case errors.Is(err, service.ErrConflict):
		writeDetail(w, http.StatusConflict, "Resource already exists")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeDetail(w, http.StatusBadRequest, "Incorrect email or password")
	case errors.Is(err, service.ErrInactive):
		writeDetail(w, http.StatusBadRequest, "Inactive user")
	case errors.Is(err, service.ErrInvalidToken):
		writeDetail(w, http.StatusForbidden, "Could not validate credentials")
	case errors.Is(err, service.ErrSamePassword):
		writeDetail(w, http.StatusBadRequest, "New password cannot be the same as the current one")
	default:
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
	}
}
