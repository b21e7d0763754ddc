package api

import (
	"context"
	"strconv"

	"github.com/ljxowen/movie-recommender/internal/client/session"
	"github.com/ljxowen/movie-recommender/internal/shared/models"
)

// Client groups the resource clients of the movie API around one Transport
// and one token store.
type Client struct {
	Login     *LoginService
	Users     *UsersService
	Movies    *MoviesService
	UserMovie *UserMovieService
	Utils     *UtilsService

	transport *Transport
	tokens    session.Store
}

// NewClient builds a client. If tokens is nil an in-memory store is used;
// cfg.Tokens is ignored in favour of tokens.
func NewClient(cfg Config, tokens session.Store) (*Client, error) {
	if tokens == nil {
		tokens = session.NewMemory()
	}
	cfg.Tokens = tokens
	t, err := NewTransport(cfg)
	if err != nil {
		return nil, err
	}
	return &Client{
		Login:     &LoginService{t: t},
		Users:     &UsersService{t: t},
		Movies:    &MoviesService{t: t},
		UserMovie: &UserMovieService{t: t},
		Utils:     &UtilsService{t: t},
		transport: t,
		tokens:    tokens,
	}, nil
}

func (c *Client) Transport() *Transport { return c.transport }

func (c *Client) Tokens() session.Store { return c.tokens }

// SetToken replaces the session credential; the next request carries it.
func (c *Client) SetToken(token string) error { return c.tokens.Set(token) }

// SignIn exchanges credentials for a token and stores it.
func (c *Client) SignIn(ctx context.Context, username, password string) (models.Token, error) {
	tok, err := c.Login.AccessToken(ctx, models.LoginForm{Username: username, Password: password})
	if err != nil {
		return models.Token{}, err
	}
	if err := c.tokens.Set(tok.AccessToken); err != nil {
		return models.Token{}, err
	}
	return tok, nil
}

// SignOut forgets the session credential.
func (c *Client) SignOut() error { return c.tokens.Clear() }

// SetLiked adds the movie to the caller's like list or removes it. Both
// directions are idempotent on the server.
func (c *Client) SetLiked(ctx context.Context, movieID int, liked bool) (models.UserMoviePublic, error) {
	if liked {
		return c.UserMovie.Add(ctx, movieID)
	}
	return c.UserMovie.Remove(ctx, movieID)
}

// MovieDetail is a movie together with the caller's like status.
type MovieDetail struct {
	Movie models.MoviePublic `json:"movie"`
	Liked bool               `json:"liked"`
}

// MovieDetail reads the movie and the like list concurrently. A user
// without a like list (404) has liked nothing.
func (c *Client) MovieDetail(ctx context.Context, movieID int) (MovieDetail, error) {
	if err := checkID("movieDetail", movieID); err != nil {
		return MovieDetail{}, err
	}
	movieCall := Go(ctx, func(ctx context.Context) (models.MoviePublic, error) {
		return c.Movies.Get(ctx, movieID)
	})
	linkCall := Go(ctx, func(ctx context.Context) (models.UserMoviePublic, error) {
		return c.UserMovie.Read(ctx)
	})

	movie, err := movieCall.Wait()
	if err != nil {
		linkCall.Cancel()
		return MovieDetail{}, err
	}
	link, err := linkCall.Wait()
	if err != nil && !IsStatus(err, 404) {
		return MovieDetail{}, err
	}
	return MovieDetail{Movie: movie, Liked: link.Contains(movieID)}, nil
}

func itoa(i int) string { return strconv.Itoa(i) }
