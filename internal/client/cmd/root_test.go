package cmd

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ljxowen/movie-recommender/internal/client/api"
	"github.com/ljxowen/movie-recommender/internal/server/config"
	"github.com/ljxowen/movie-recommender/internal/server/httpapi"
	"github.com/ljxowen/movie-recommender/internal/server/service"
	"github.com/ljxowen/movie-recommender/internal/shared/models"
	"github.com/ljxowen/movie-recommender/internal/shared/passhash"
)

func withTempHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("USERPROFILE", dir)
	t.Setenv("MOVIECAT_CONFIG", "")
	return dir
}

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	svcs, err := service.NewServicesWith(config.Config{
		JWTSecret:     "test",
		TokenTTL:      time.Hour,
		AdminEmail:    "admin@example.com",
		AdminPassword: "adminpass",
	}, passhash.Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 8, KeyLength: 16})
	require.NoError(t, err)
	srv := httptest.NewServer(httpapi.NewRouter(svcs, zerolog.Nop()))
	t.Cleanup(srv.Close)
	return srv
}

func execute(t *testing.T, srv *httptest.Server, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd("1.0.0", "2026-01-01")
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetIn(strings.NewReader(stdin))
	if srv != nil {
		args = append([]string{"--server", srv.URL}, args...)
	}
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func decode[T any](t *testing.T, s string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(s), &v), s)
	return v
}

func TestRoot_Version(t *testing.T) {
	withTempHome(t)
	out, err := execute(t, nil, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "moviecat 1.0.0 (2026-01-01)\n", out)
}

func TestAuthLoginStatusLogout(t *testing.T) {
	withTempHome(t)
	srv := newBackend(t)

	out, err := execute(t, srv, "", "auth", "status")
	require.NoError(t, err)
	assert.False(t, decode[authStatus](t, out).LoggedIn)

	_, err = execute(t, srv, "", "users", "signup", "--email", "fan@example.com", "--password", "pass")
	require.NoError(t, err)

	// Password comes from stdin when no flag is given.
	_, err = execute(t, srv, "pass\n", "auth", "login", "-u", "fan@example.com")
	require.NoError(t, err)

	out, err = execute(t, srv, "", "auth", "status")
	require.NoError(t, err)
	st := decode[authStatus](t, out)
	assert.True(t, st.LoggedIn)
	assert.Equal(t, "2", st.Subject)
	assert.False(t, st.Expired)

	out, err = execute(t, srv, "", "users", "me")
	require.NoError(t, err)
	assert.Equal(t, "fan@example.com", decode[models.UserPublic](t, out).Email)

	_, err = execute(t, srv, "", "auth", "logout")
	require.NoError(t, err)
	_, err = execute(t, srv, "", "users", "me")
	require.Error(t, err)
	assert.True(t, api.IsStatus(err, 401), err.Error())
}

func TestBadLoginStoresNothing(t *testing.T) {
	withTempHome(t)
	srv := newBackend(t)
	_, err := execute(t, srv, "", "auth", "login", "-u", "admin@example.com", "-p", "wrong")
	require.Error(t, err)
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.Status)

	out, err := execute(t, srv, "", "auth", "status")
	require.NoError(t, err)
	assert.False(t, decode[authStatus](t, out).LoggedIn)
}

func TestMoviesAndLikes(t *testing.T) {
	withTempHome(t)
	srv := newBackend(t)
	_, err := execute(t, srv, "", "auth", "login", "-u", "admin@example.com", "-p", "adminpass")
	require.NoError(t, err)

	out, err := execute(t, srv, "", "movies", "add", "--title", "Heat", "--year", "1995", "--imdb-id", "tt0113277", "--set", "plot=LA crime saga")
	require.NoError(t, err)
	movie := decode[models.MoviePublic](t, out)
	require.NotNil(t, movie.Plot)
	assert.Equal(t, "LA crime saga", *movie.Plot)

	_, err = execute(t, srv, "", "movies", "add", "--title", "X", "--year", "1", "--imdb-id", "tt1", "--set", "colour=red")
	assert.ErrorContains(t, err, "invalid --set")

	out, err = execute(t, srv, "", "movies", "show", "1")
	require.NoError(t, err)
	assert.False(t, decode[api.MovieDetail](t, out).Liked)

	_, err = execute(t, srv, "", "likes", "create")
	require.NoError(t, err)
	out, err = execute(t, srv, "", "movies", "like", "1")
	require.NoError(t, err)
	assert.Equal(t, []int{1}, decode[models.UserMoviePublic](t, out).Movies)

	out, err = execute(t, srv, "", "movies", "show", "1")
	require.NoError(t, err)
	assert.True(t, decode[api.MovieDetail](t, out).Liked)

	out, err = execute(t, srv, "", "movies", "unlike", "1")
	require.NoError(t, err)
	assert.Empty(t, decode[models.UserMoviePublic](t, out).Movies)

	_, err = execute(t, srv, "", "movies", "get", "abc")
	assert.ErrorContains(t, err, "invalid id")
	_, err = execute(t, srv, "", "movies", "get", "0")
	assert.ErrorIs(t, err, api.ErrInvalidArgument)
}

func TestRecoverHTMLPrintsRawBody(t *testing.T) {
	withTempHome(t)
	srv := newBackend(t)
	_, err := execute(t, srv, "", "auth", "login", "-u", "admin@example.com", "-p", "adminpass")
	require.NoError(t, err)
	out, err := execute(t, srv, "", "auth", "recover-html", "admin@example.com")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<p>"), out)
}

func TestUsersCreateDefaultsAndListLimit(t *testing.T) {
	withTempHome(t)
	srv := newBackend(t)
	_, err := execute(t, srv, "", "auth", "login", "-u", "admin@example.com", "-p", "adminpass")
	require.NoError(t, err)

	out, err := execute(t, srv, "", "users", "create", "--email", "plain@example.com", "--password", "pw")
	require.NoError(t, err)
	u := decode[models.UserPublic](t, out)
	assert.True(t, u.IsActive)
	assert.False(t, u.IsSuperuser)

	out, err = execute(t, srv, "", "users", "create", "--email", "off@example.com", "--password", "pw", "--inactive")
	require.NoError(t, err)
	assert.False(t, decode[models.UserPublic](t, out).IsActive)

	out, err = execute(t, srv, "", "users", "list", "--limit", "0")
	require.NoError(t, err)
	page := decode[models.UsersPublic](t, out)
	assert.Empty(t, page.Data)
	assert.Equal(t, 3, page.Count)

	out, err = execute(t, srv, "", "users", "list")
	require.NoError(t, err)
	assert.Len(t, decode[models.UsersPublic](t, out).Data, 3)
}
