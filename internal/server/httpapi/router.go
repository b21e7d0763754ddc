package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/ljxowen/movie-recommender/internal/server/service"
)

type Router struct {
	services *service.Services
	logger   zerolog.Logger
}

// NewRouter serves the /api/v1 surface of the movie API. Browser origins in
// corsOrigins may call it cross-origin.
func NewRouter(services *service.Services, logger zerolog.Logger, corsOrigins ...string) http.Handler {
	r := &Router{services: services, logger: logger}
	mux := chi.NewRouter()
	mux.Use(middleware.RequestID, middleware.Recoverer, r.requestLogger)
	if len(corsOrigins) > 0 {
		mux.Use(cors.Handler(cors.Options{
			AllowedOrigins:   corsOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           600,
		}))
	}

	mux.Get("/health", r.handleHealth)
	mux.Route("/api/v1", func(api chi.Router) {
		api.Post("/login/access-token", r.handleLogin)
		api.Post("/password-recovery/{email}", r.handleRecoverPassword)
		api.Post("/reset-password/", r.handleResetPassword)
		api.Post("/users/signup", r.handleSignup)

		api.Group(func(pr chi.Router) {
			pr.Use(r.authMiddleware)
			pr.Post("/login/test-token", r.handleTestToken)

			pr.Get("/users/me", r.handleReadMe)
			pr.Patch("/users/me", r.handleUpdateMe)
			pr.Delete("/users/me", r.handleDeleteMe)
			pr.Patch("/users/me/password", r.handleUpdatePasswordMe)
			pr.Get("/users/{user_id}", r.handleReadUser)

			pr.Get("/movies/", r.handleListMovies)
			pr.Post("/movies/", r.handleCreateMovie)
			pr.Get("/movies/liked", r.handleLikedMovies)
			pr.Get("/movies/{id}", r.handleReadMovie)
			pr.Put("/movies/{id}", r.handleUpdateMovie)
			pr.Delete("/movies/{id}", r.handleDeleteMovie)

			pr.Get("/user_movie/", r.handleReadUserMovie)
			pr.Post("/user_movie/", r.handleCreateUserMovie)
			pr.Put("/user_movie/", r.handleReplaceUserMovie)
			pr.Put("/user_movie/add/{id}", r.handleAddUserMovie)
			pr.Put("/user_movie/remove/{id}", r.handleRemoveUserMovie)
			pr.Delete("/user_movie/{id}", r.handleDeleteUserMovie)

			pr.Group(func(admin chi.Router) {
				admin.Use(r.superuserOnly)
				admin.Post("/password-recovery-html-content/{email}", r.handleRecoverPasswordHTML)
				admin.Get("/users/", r.handleListUsers)
				admin.Post("/users/", r.handleCreateUser)
				admin.Patch("/users/{user_id}", r.handleUpdateUser)
				admin.Delete("/users/{user_id}", r.handleDeleteUser)
				admin.Post("/utils/test-email/", r.handleTestEmail)
			})
		})
	})
	return mux
}

func (r *Router) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (r *Router) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, req)
		r.logger.Debug().
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Str("request_id", middleware.GetReqID(req.Context())).
			Msg("request")
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
