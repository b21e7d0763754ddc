package httpapi

import (
	"net/http"

	"github.com/ljxowen/movie-recommender/internal/shared/models"
)

// handleTestEmail logs the address instead of delivering mail.
func (r *Router) handleTestEmail(w http.ResponseWriter, req *http.Request) {
	to := req.URL.Query().Get("email_to")
	if to == "" {
		writeValidation(w, models.ValidationError{Loc: []any{"query", "email_to"}, Msg: "Field required", Type: "missing"})
		return
	}
	r.logger.Info().Str("email_to", to).Msg("test email requested")
	writeJSON(w, http.StatusCreated, models.Message{Message: "Test email sent"})
}
