package api

import (
	"io"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ljxowen/movie-recommender/internal/shared/models"
)

func TestExpandPathEscapes(t *testing.T) {
	cases := map[string]string{
		"user@example.com": "/api/v1/password-recovery/user%40example.com",
		"a b":              "/api/v1/password-recovery/a%20b",
		"../admin":         "/api/v1/password-recovery/..%2Fadmin",
		"x+y?z":            "/api/v1/password-recovery/x%2By%3Fz",
	}
	for in, want := range cases {
		d := Descriptor{Path: "/api/v1/password-recovery/{email}", PathParams: map[string]string{"email": in}}
		got, err := d.expandPath()
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}
}

func TestExpandPathUnresolved(t *testing.T) {
	_, err := Descriptor{Path: "/api/v1/movies/{id}"}.expandPath()
	assert.Error(t, err)
}

func TestEncodeQuerySkipsNil(t *testing.T) {
	var nilStr *string
	d := Descriptor{Query: map[string]any{
		"skip":     0,
		"limit":    100,
		"absent":   nil,
		"nilptr":   nilStr,
		"email_to": models.Ptr("a@b.c"),
	}}
	q, err := url.ParseQuery(d.encodeQuery())
	require.NoError(t, err)
	assert.Equal(t, url.Values{"skip": {"0"}, "limit": {"100"}, "email_to": {"a@b.c"}}, q)
}

func TestBuildURLTrimsBaseSlash(t *testing.T) {
	u, err := Descriptor{Path: "/api/v1/movies/"}.buildURL("http://h:1/")
	require.NoError(t, err)
	assert.Equal(t, "http://h:1/api/v1/movies/", u)
}

func TestEncodeBody(t *testing.T) {
	r, ct, err := Descriptor{Body: url.Values{"username": {"u"}}, MediaType: MediaForm}.encodeBody()
	require.NoError(t, err)
	assert.Equal(t, string(MediaForm), ct)
	b, _ := io.ReadAll(r)
	assert.Equal(t, "username=u", string(b))

	_, _, err = Descriptor{Body: map[string]string{"a": "b"}, MediaType: MediaForm}.encodeBody()
	assert.Error(t, err)

	r, ct, err = Descriptor{Body: models.UserMovieIn{Movies: []int{1}}}.encodeBody()
	require.NoError(t, err)
	assert.Equal(t, string(MediaJSON), ct)
	b, _ = io.ReadAll(r)
	assert.JSONEq(t, `{"movies":[1]}`, string(b))

	r, ct, err = Descriptor{}.encodeBody()
	require.NoError(t, err)
	assert.Nil(t, r)
	assert.Empty(t, ct)
}
