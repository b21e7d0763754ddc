package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/ljxowen/movie-recommender/internal/shared/models"
)

type contextKey string

const userContextKey contextKey = "user"

func (r *Router) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		authz := req.Header.Get("Authorization")
		if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
			w.Header().Set("WWW-Authenticate", "Bearer")
			writeDetail(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		user, err := r.services.Auth.Authenticate(req.Context(), strings.TrimPrefix(authz, "Bearer "))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		ctx := context.WithValue(req.Context(), userContextKey, user)
		next.ServeHTTP(w, req.WithContext(ctx))
	})
}

func (r *Router) superuserOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if !currentUser(req.Context()).IsSuperuser {
			writeDetail(w, http.StatusForbidden, "The user doesn't have enough privileges")
			return
		}
		next.ServeHTTP(w, req)
	})
}

func currentUser(ctx context.Context) models.UserPublic {
	u, _ := ctx.Value(userContextKey).(models.UserPublic)
	return u
}
