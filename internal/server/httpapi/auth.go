package httpapi

import (
	"errors"
	"fmt"
	"html"
	"net/http"
	"net/url"

	"github.com/ljxowen/movie-recommender/internal/server/service"
	"github.com/ljxowen/movie-recommender/internal/shared/models"
)

const resetLinkBase = "http://localhost:5173/reset-password"

// handleLogin implements the OAuth2 password flow over a urlencoded form.
func (r *Router) handleLogin(w http.ResponseWriter, req *http.Request) {
	if err := req.ParseForm(); err != nil {
		writeValidation(w, models.ValidationError{Loc: []any{"body"}, Msg: "invalid form body", Type: "value_error"})
		return
	}
	username, password := req.PostForm.Get("username"), req.PostForm.Get("password")
	if !requireFields(w, map[string]string{"username": username, "password": password}) {
		return
	}
	token, err := r.services.Auth.Login(req.Context(), username, password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.Token{AccessToken: token, TokenType: models.TokenTypeBearer})
}

func (r *Router) handleTestToken(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, currentUser(req.Context()))
}

func (r *Router) recoveryToken(w http.ResponseWriter, req *http.Request) (string, string, bool) {
	email := pathString(req, "email")
	token, err := r.services.Auth.RecoveryToken(req.Context(), email)
	if errors.Is(err, service.ErrNotFound) {
		writeDetail(w, http.StatusNotFound, "The user with this email does not exist in the system.")
		return "", "", false
	}
	if err != nil {
		writeServiceError(w, err)
		return "", "", false
	}
	return email, token, true
}

// handleRecoverPassword stands in for sending the recovery email: the reset
// token is written to the server log instead.
func (r *Router) handleRecoverPassword(w http.ResponseWriter, req *http.Request) {
	email, token, ok := r.recoveryToken(w, req)
	if !ok {
		return
	}
	r.logger.Info().Str("email", email).Str("reset_token", token).Msg("password recovery requested")
	writeJSON(w, http.StatusOK, models.Message{Message: "Password recovery email sent"})
}

func (r *Router) handleRecoverPasswordHTML(w http.ResponseWriter, req *http.Request) {
	email, token, ok := r.recoveryToken(w, req)
	if !ok {
		return
	}
	link := resetLinkBase + "?token=" + url.QueryEscape(token)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Subject", "Password recovery for user "+email)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "<p>Hello %s</p><p>Reset your password: <a href=\"%s\">%s</a></p>",
		html.EscapeString(email), html.EscapeString(link), html.EscapeString(link))
}

func (r *Router) handleResetPassword(w http.ResponseWriter, req *http.Request) {
	var body models.NewPassword
	if !decodeBody(w, req, &body) {
		return
	}
	if !requireFields(w, map[string]string{"token": body.Token, "new_password": body.NewPassword}) {
		return
	}
	err := r.services.Auth.ResetPassword(req.Context(), body.Token, body.NewPassword)
	switch {
	case errors.Is(err, service.ErrInvalidToken):
		writeDetail(w, http.StatusBadRequest, "Invalid token")
	case err != nil:
		writeServiceError(w, err)
	default:
		writeJSON(w, http.StatusOK, models.Message{Message: "Password updated successfully"})
	}
}
