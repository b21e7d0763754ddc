package httpapi

import (
	"errors"
	"net/http"

	"github.com/ljxowen/movie-recommender/internal/server/service"
	"github.com/ljxowen/movie-recommender/internal/shared/models"
)

func (r *Router) handleReadUserMovie(w http.ResponseWriter, req *http.Request) {
	link, err := r.services.UserMovie.Read(req.Context(), currentUser(req.Context()))
	writeLink(w, link, err)
}

func (r *Router) handleCreateUserMovie(w http.ResponseWriter, req *http.Request) {
	var body models.UserMovieIn
	if !decodeBody(w, req, &body) {
		return
	}
	link, err := r.services.UserMovie.Create(req.Context(), currentUser(req.Context()), body.Movies)
	writeLink(w, link, err)
}

func (r *Router) handleReplaceUserMovie(w http.ResponseWriter, req *http.Request) {
	var body models.UserMovieIn
	if !decodeBody(w, req, &body) {
		return
	}
	link, err := r.services.UserMovie.Replace(req.Context(), currentUser(req.Context()), body.Movies)
	writeLink(w, link, err)
}

func (r *Router) handleAddUserMovie(w http.ResponseWriter, req *http.Request) {
	id, ok := pathInt(w, req, "id")
	if !ok {
		return
	}
	link, err := r.services.UserMovie.Add(req.Context(), currentUser(req.Context()), id)
	writeLink(w, link, err)
}

func (r *Router) handleRemoveUserMovie(w http.ResponseWriter, req *http.Request) {
	id, ok := pathInt(w, req, "id")
	if !ok {
		return
	}
	link, err := r.services.UserMovie.Remove(req.Context(), currentUser(req.Context()), id)
	writeLink(w, link, err)
}

func (r *Router) handleDeleteUserMovie(w http.ResponseWriter, req *http.Request) {
	ownerID, ok := pathInt(w, req, "id")
	if !ok {
		return
	}
	if err := r.services.UserMovie.Delete(req.Context(), currentUser(req.Context()), ownerID); err != nil {
		writeLink(w, models.UserMoviePublic{}, err)
		return
	}
	writeJSON(w, http.StatusOK, models.Message{Message: "User movie list deleted successfully"})
}

func writeLink(w http.ResponseWriter, link models.UserMoviePublic, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeDetail(w, http.StatusNotFound, "User movie list not found")
	case errors.Is(err, service.ErrConflict):
		writeDetail(w, http.StatusBadRequest, "User movie list already exists")
	case err != nil:
		writeServiceError(w, err)
	default:
		writeJSON(w, http.StatusOK, link)
	}
}
