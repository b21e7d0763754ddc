package httpapi

import (
	"errors"
	"net/http"

	"github.com/ljxowen/movie-recommender/internal/server/service"
	"github.com/ljxowen/movie-recommender/internal/shared/models"
)

func (r *Router) handleListMovies(w http.ResponseWriter, req *http.Request) {
	skip, limit, ok := listParams(w, req)
	if !ok {
		return
	}
	movies, err := r.services.Movies.List(req.Context(), currentUser(req.Context()), skip, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, movies)
}

func (r *Router) handleLikedMovies(w http.ResponseWriter, req *http.Request) {
	movies, err := r.services.Movies.Liked(req.Context(), currentUser(req.Context()))
	if errors.Is(err, service.ErrNotFound) {
		writeDetail(w, http.StatusNotFound, "User movie list not found")
		return
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, movies)
}

func (r *Router) handleCreateMovie(w http.ResponseWriter, req *http.Request) {
	var body models.MovieCreate
	if !decodeBody(w, req, &body) {
		return
	}
	if !requireFields(w, map[string]string{"title": body.Title, "year": body.Year, "imdb_id": body.IMDbID}) {
		return
	}
	movie, err := r.services.Movies.Create(req.Context(), currentUser(req.Context()), body)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, movie)
}

func (r *Router) handleReadMovie(w http.ResponseWriter, req *http.Request) {
	id, ok := pathInt(w, req, "id")
	if !ok {
		return
	}
	movie, err := r.services.Movies.Get(req.Context(), currentUser(req.Context()), id)
	if err != nil {
		writeMovieError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, movie)
}

func (r *Router) handleUpdateMovie(w http.ResponseWriter, req *http.Request) {
	id, ok := pathInt(w, req, "id")
	if !ok {
		return
	}
	var body models.MovieUpdate
	if !decodeBody(w, req, &body) {
		return
	}
	if !requireFields(w, map[string]string{"year": body.Year, "imdb_id": body.IMDbID}) {
		return
	}
	movie, err := r.services.Movies.Update(req.Context(), currentUser(req.Context()), id, body)
	if err != nil {
		writeMovieError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, movie)
}

func (r *Router) handleDeleteMovie(w http.ResponseWriter, req *http.Request) {
	id, ok := pathInt(w, req, "id")
	if !ok {
		return
	}
	if err := r.services.Movies.Delete(req.Context(), currentUser(req.Context()), id); err != nil {
		writeMovieError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.Message{Message: "Movie deleted successfully"})
}

func writeMovieError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeDetail(w, http.StatusNotFound, "Movie not found")
	case errors.Is(err, service.ErrForbidden):
		writeDetail(w, http.StatusBadRequest, "Not enough permissions")
	default:
		writeServiceError(w, err)
	}
}
