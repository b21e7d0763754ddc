package httpapi

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/ljxowen/movie-recommender/internal/server/config"
	"github.com/ljxowen/movie-recommender/internal/server/service"
	"github.com/ljxowen/movie-recommender/internal/shared/models"
	"github.com/ljxowen/movie-recommender/internal/shared/passhash"
)

var fastHash = passhash.Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 8, KeyLength: 16}

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	svcs, err := service.NewServicesWith(config.Config{
		JWTSecret:     "test",
		TokenTTL:      time.Hour,
		AdminEmail:    "admin@example.com",
		AdminPassword: "adminpass",
	}, fastHash)
	if err != nil {
		t.Fatalf("services: %v", err)
	}
	return NewRouter(svcs, zerolog.Nop())
}

func doJSON(t *testing.T, ts http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	buf := &bytes.Buffer{}
	if body != nil {
		b, _ := json.Marshal(body)
		buf = bytes.NewBuffer(b)
	}
	req, _ := http.NewRequest(method, path, buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	ts.ServeHTTP(rr, req)
	return rr
}

func login(t *testing.T, ts http.Handler, email, password string) string {
	t.Helper()
	form := url.Values{"username": {email}, "password": {password}}
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/login/access-token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	ts.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("login %s: %d %s", email, rr.Code, rr.Body.String())
	}
	var tok models.Token
	if err := json.Unmarshal(rr.Body.Bytes(), &tok); err != nil {
		t.Fatal(err)
	}
	if tok.TokenType != models.TokenTypeBearer || tok.AccessToken == "" {
		t.Fatalf("bad token: %+v", tok)
	}
	return tok.AccessToken
}

func signup(t *testing.T, ts http.Handler, email string) string {
	t.Helper()
	rr := doJSON(t, ts, http.MethodPost, "/api/v1/users/signup", map[string]string{"email": email, "password": "pass"}, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("signup: %d %s", rr.Code, rr.Body.String())
	}
	return login(t, ts, email, "pass")
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	rr := doJSON(t, ts, http.MethodGet, "/health", nil, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("health status: %d", rr.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	svcs, err := service.NewServicesWith(config.Config{JWTSecret: "test"}, fastHash)
	if err != nil {
		t.Fatal(err)
	}
	ts := NewRouter(svcs, zerolog.Nop(), "http://localhost:5173")
	req, _ := http.NewRequest(http.MethodOptions, "/api/v1/users/me", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	rr := httptest.NewRecorder()
	ts.ServeHTTP(rr, req)
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("allow origin: %q (status %d)", got, rr.Code)
	}
}

func TestAuthRequired(t *testing.T) {
	ts := newTestServer(t)
	rr := doJSON(t, ts, http.MethodGet, "/api/v1/users/me", nil, "")
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("no token: %d", rr.Code)
	}
	rr = doJSON(t, ts, http.MethodGet, "/api/v1/users/me", nil, "junk")
	if rr.Code != http.StatusForbidden {
		t.Fatalf("junk token: %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"detail"`) {
		t.Fatalf("want detail body, got %s", rr.Body.String())
	}
}

func TestLoginValidation(t *testing.T) {
	ts := newTestServer(t)
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/login/access-token", strings.NewReader("username=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	ts.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status: %d", rr.Code)
	}
	var body models.HTTPValidationError
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Detail) != 1 || body.Detail[0].Path() != "body.password" || body.Detail[0].Type != "missing" {
		t.Fatalf("detail: %+v", body.Detail)
	}
}

func TestUsersAdminOnly(t *testing.T) {
	ts := newTestServer(t)
	user := signup(t, ts, "u@example.com")
	admin := login(t, ts, "admin@example.com", "adminpass")

	if rr := doJSON(t, ts, http.MethodGet, "/api/v1/users/", nil, user); rr.Code != http.StatusForbidden {
		t.Fatalf("user list as regular user: %d", rr.Code)
	}
	rr := doJSON(t, ts, http.MethodGet, "/api/v1/users/?skip=0&limit=1", nil, admin)
	if rr.Code != http.StatusOK {
		t.Fatalf("list: %d %s", rr.Code, rr.Body.String())
	}
	var users models.UsersPublic
	_ = json.Unmarshal(rr.Body.Bytes(), &users)
	if users.Count != 2 || len(users.Data) != 1 {
		t.Fatalf("users: %+v", users)
	}
	if rr := doJSON(t, ts, http.MethodGet, "/api/v1/users/abc", nil, admin); rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("non-int id: %d", rr.Code)
	}
	if rr := doJSON(t, ts, http.MethodDelete, "/api/v1/users/me", nil, admin); rr.Code != http.StatusForbidden {
		t.Fatalf("superuser self delete: %d", rr.Code)
	}
}

func TestMoviesAndLikes(t *testing.T) {
	ts := newTestServer(t)
	tok := signup(t, ts, "fan@example.com")

	rr := doJSON(t, ts, http.MethodPost, "/api/v1/movies/", map[string]string{"title": "Heat", "year": "1995"}, tok)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("missing imdb_id: %d", rr.Code)
	}
	rr = doJSON(t, ts, http.MethodPost, "/api/v1/movies/", models.MovieCreate{Title: "Heat", Year: "1995", IMDbID: "tt0113277"}, tok)
	if rr.Code != http.StatusOK {
		t.Fatalf("create movie: %d %s", rr.Code, rr.Body.String())
	}
	var movie models.MoviePublic
	_ = json.Unmarshal(rr.Body.Bytes(), &movie)

	if rr := doJSON(t, ts, http.MethodGet, "/api/v1/movies/liked", nil, tok); rr.Code != http.StatusNotFound {
		t.Fatalf("liked without list: %d", rr.Code)
	}
	if rr := doJSON(t, ts, http.MethodPost, "/api/v1/user_movie/", models.UserMovieIn{}, tok); rr.Code != http.StatusOK {
		t.Fatalf("create list: %d %s", rr.Code, rr.Body.String())
	}
	rr = doJSON(t, ts, http.MethodPut, "/api/v1/user_movie/add/"+strconv.Itoa(movie.ID), nil, tok)
	var link models.UserMoviePublic
	_ = json.Unmarshal(rr.Body.Bytes(), &link)
	if rr.Code != http.StatusOK || !link.Contains(movie.ID) {
		t.Fatalf("add: %d %+v", rr.Code, link)
	}

	rr = doJSON(t, ts, http.MethodGet, "/api/v1/movies/liked", nil, tok)
	var liked models.MoviesPublic
	_ = json.Unmarshal(rr.Body.Bytes(), &liked)
	if liked.Count != 1 || liked.Data[0].ID != movie.ID {
		t.Fatalf("liked: %+v", liked)
	}

	other := signup(t, ts, "other@example.com")
	if rr := doJSON(t, ts, http.MethodGet, "/api/v1/movies/"+strconv.Itoa(movie.ID), nil, other); rr.Code != http.StatusBadRequest {
		t.Fatalf("foreign movie: %d", rr.Code)
	}
	if rr := doJSON(t, ts, http.MethodDelete, "/api/v1/movies/"+strconv.Itoa(movie.ID), nil, tok); rr.Code != http.StatusOK {
		t.Fatalf("delete: %d", rr.Code)
	}
}

func TestPasswordRecoveryHTML(t *testing.T) {
	ts := newTestServer(t)
	signup(t, ts, "lost@example.com")
	admin := login(t, ts, "admin@example.com", "adminpass")

	rr := doJSON(t, ts, http.MethodPost, "/api/v1/password-recovery-html-content/lost%40example.com", nil, admin)
	if rr.Code != http.StatusOK || !strings.HasPrefix(rr.Header().Get("Content-Type"), "text/html") {
		t.Fatalf("html: %d %q", rr.Code, rr.Header().Get("Content-Type"))
	}
	token := extractResetToken(t, rr.Body.String())

	rr = doJSON(t, ts, http.MethodPost, "/api/v1/reset-password/", models.NewPassword{Token: token, NewPassword: "fresh"}, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("reset: %d %s", rr.Code, rr.Body.String())
	}
	login(t, ts, "lost@example.com", "fresh")

	if rr := doJSON(t, ts, http.MethodPost, "/api/v1/password-recovery/nobody%40example.com", nil, ""); rr.Code != http.StatusNotFound {
		t.Fatalf("unknown email: %d", rr.Code)
	}
}

func TestTestEmail(t *testing.T) {
	ts := newTestServer(t)
	admin := login(t, ts, "admin@example.com", "adminpass")
	if rr := doJSON(t, ts, http.MethodPost, "/api/v1/utils/test-email/", nil, admin); rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("missing email_to: %d", rr.Code)
	}
	if rr := doJSON(t, ts, http.MethodPost, "/api/v1/utils/test-email/?email_to=x%40y.z", nil, admin); rr.Code != http.StatusCreated {
		t.Fatalf("test email: %d", rr.Code)
	}
}

func extractResetToken(t *testing.T, body string) string {
	t.Helper()
	const marker = "?token="
	i := strings.Index(body, marker)
	if i < 0 {
		t.Fatalf("no token in %s", body)
	}
	rest := body[i+len(marker):]
	rest = rest[:strings.IndexByte(rest, '"')]
	token, err := url.QueryUnescape(rest)
	if err != nil {
		t.Fatal(err)
	}
	return token
}
