package httpapi

import (
	"errors"
	"net/http"

	"github.com/ljxowen/movie-recommender/internal/server/service"
	"github.com/ljxowen/movie-recommender/internal/shared/models"
)

func listParams(w http.ResponseWriter, req *http.Request) (skip, limit int, ok bool) {
	if skip, ok = queryInt(w, req, "skip", 0); !ok {
		return 0, 0, false
	}
	limit, ok = queryInt(w, req, "limit", 100)
	return skip, limit, ok
}

func (r *Router) handleListUsers(w http.ResponseWriter, req *http.Request) {
	skip, limit, ok := listParams(w, req)
	if !ok {
		return
	}
	users, err := r.services.Users.List(req.Context(), skip, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (r *Router) handleCreateUser(w http.ResponseWriter, req *http.Request) {
	var body models.UserCreate
	if !decodeBody(w, req, &body) {
		return
	}
	r.createUser(w, req, body)
}

func (r *Router) handleSignup(w http.ResponseWriter, req *http.Request) {
	var body models.UserRegister
	if !decodeBody(w, req, &body) {
		return
	}
	r.createUser(w, req, models.UserCreate{
		Email:    body.Email,
		FullName: body.FullName,
		Password: body.Password,
	})
}

func (r *Router) createUser(w http.ResponseWriter, req *http.Request, in models.UserCreate) {
	if !requireFields(w, map[string]string{"email": in.Email, "password": in.Password}) {
		return
	}
	user, err := r.services.Users.Create(req.Context(), in)
	if errors.Is(err, service.ErrConflict) {
		writeDetail(w, http.StatusBadRequest, "The user with this email already exists in the system")
		return
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (r *Router) handleReadMe(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, currentUser(req.Context()))
}

func (r *Router) handleUpdateMe(w http.ResponseWriter, req *http.Request) {
	var body models.UserUpdateMe
	if !decodeBody(w, req, &body) {
		return
	}
	r.updateUser(w, req, currentUser(req.Context()).ID, models.UserUpdate{Email: body.Email, FullName: body.FullName})
}

func (r *Router) handleUpdateUser(w http.ResponseWriter, req *http.Request) {
	id, ok := pathInt(w, req, "user_id")
	if !ok {
		return
	}
	var body models.UserUpdate
	if !decodeBody(w, req, &body) {
		return
	}
	r.updateUser(w, req, id, body)
}

func (r *Router) updateUser(w http.ResponseWriter, req *http.Request, id int, in models.UserUpdate) {
	user, err := r.services.Users.Update(req.Context(), id, in)
	if errors.Is(err, service.ErrConflict) {
		writeDetail(w, http.StatusConflict, "User with this email already exists")
		return
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (r *Router) handleUpdatePasswordMe(w http.ResponseWriter, req *http.Request) {
	var body models.UpdatePassword
	if !decodeBody(w, req, &body) {
		return
	}
	if !requireFields(w, map[string]string{"current_password": body.CurrentPassword, "new_password": body.NewPassword}) {
		return
	}
	err := r.services.Users.ChangePassword(req.Context(), currentUser(req.Context()).ID, body.CurrentPassword, body.NewPassword)
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		writeDetail(w, http.StatusBadRequest, "Incorrect password")
	case err != nil:
		writeServiceError(w, err)
	default:
		writeJSON(w, http.StatusOK, models.Message{Message: "Password updated successfully"})
	}
}

func (r *Router) handleDeleteMe(w http.ResponseWriter, req *http.Request) {
	me := currentUser(req.Context())
	if me.IsSuperuser {
		writeDetail(w, http.StatusForbidden, "Super users are not allowed to delete themselves")
		return
	}
	r.deleteUser(w, req, me.ID)
}

func (r *Router) handleReadUser(w http.ResponseWriter, req *http.Request) {
	id, ok := pathInt(w, req, "user_id")
	if !ok {
		return
	}
	me := currentUser(req.Context())
	if id == me.ID {
		writeJSON(w, http.StatusOK, me)
		return
	}
	if !me.IsSuperuser {
		writeDetail(w, http.StatusForbidden, "The user doesn't have enough privileges")
		return
	}
	user, err := r.services.Users.Get(req.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (r *Router) handleDeleteUser(w http.ResponseWriter, req *http.Request) {
	id, ok := pathInt(w, req, "user_id")
	if !ok {
		return
	}
	if id == currentUser(req.Context()).ID {
		writeDetail(w, http.StatusForbidden, "Super users are not allowed to delete themselves")
		return
	}
	r.deleteUser(w, req, id)
}

func (r *Router) deleteUser(w http.ResponseWriter, req *http.Request, id int) {
	if err := r.services.Users.Delete(req.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.Message{Message: "User deleted successfully"})
}
