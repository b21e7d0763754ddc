// Package service holds the state and rules of the stand-in movie API: user
// accounts, JWT access tokens, the movie catalog and per-user like lists.
// Everything lives in memory for the lifetime of the process.
package service

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ljxowen/movie-recommender/internal/server/config"
	"github.com/ljxowen/movie-recommender/internal/shared/models"
	"github.com/ljxowen/movie-recommender/internal/shared/passhash"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("already exists")
	ErrForbidden          = errors.New("not enough privileges")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrInactive           = errors.New("inactive user")
	ErrInvalidToken       = errors.New("invalid token")
	ErrSamePassword       = errors.New("new password cannot be the same as the current one")
)

type account struct {
	user models.UserPublic
	hash string
}

// state is shared by every service and guarded by one mutex.
type state struct {
	mu        sync.RWMutex
	users     map[int]*account
	byEmail   map[string]int
	movies    map[int]models.MoviePublic
	links     map[int][]int
	nextUser  int
	nextMovie int
	hashp     passhash.Params
}

type Services struct {
	Auth      *AuthService
	Users     *UsersService
	Movies    *MoviesService
	UserMovie *UserMovieService
}

// NewServices builds the services over empty state and creates the
// configured superuser.
func NewServices(cfg config.Config) (*Services, error) {
	return NewServicesWith(cfg, passhash.DefaultParams)
}

// NewServicesWith is NewServices with explicit password hashing cost.
func NewServicesWith(cfg config.Config, hp passhash.Params) (*Services, error) {
	st := &state{
		users:   map[int]*account{},
		byEmail: map[string]int{},
		movies:  map[int]models.MoviePublic{},
		links:   map[int][]int{},
		hashp:   hp,
	}
	s := &Services{
		Auth:      &AuthService{st: st, secret: []byte(cfg.JWTSecret), ttl: cfg.TokenTTL},
		Users:     &UsersService{st: st},
		Movies:    &MoviesService{st: st},
		UserMovie: &UserMovieService{st: st},
	}
	if s.Auth.ttl <= 0 {
		s.Auth.ttl = 24 * time.Hour
	}
	if cfg.AdminEmail != "" {
		_, err := s.Users.Create(context.Background(), models.UserCreate{
			Email:       cfg.AdminEmail,
			IsActive:    models.Ptr(true),
			IsSuperuser: models.Ptr(true),
			Password:    cfg.AdminPassword,
		})
		if err != nil {
			return nil, err
		}
	}
	return s, nil
}

func normEmail(e string) string { return strings.ToLower(strings.TrimSpace(e)) }

// AuthService issues and checks access tokens and password-reset tokens.
type AuthService struct {
	st     *state
	secret []byte
	ttl    time.Duration
}

// Login returns a signed access token for valid, active credentials.
func (a *AuthService) Login(_ context.Context, email, password string) (string, error) {
	a.st.mu.RLock()
	id, ok := a.st.byEmail[normEmail(email)]
	var acc account
	if ok {
		acc = *a.st.users[id]
	}
	a.st.mu.RUnlock()
	if !ok {
		return "", ErrInvalidCredentials
	}
	match, err := passhash.Verify(acc.hash, password)
	if err != nil || !match {
		return "", ErrInvalidCredentials
	}
	if !acc.user.IsActive {
		return "", ErrInactive
	}
	return a.sign(strconv.Itoa(id), "access", a.ttl)
}

// Authenticate resolves an access token to its active user.
func (a *AuthService) Authenticate(_ context.Context, token string) (models.UserPublic, error) {
	sub, err := a.parse(token, "access")
	if err != nil {
		return models.UserPublic{}, err
	}
	id, err := strconv.Atoi(sub)
	if err != nil {
		return models.UserPublic{}, ErrInvalidToken
	}
	a.st.mu.RLock()
	defer a.st.mu.RUnlock()
	acc, ok := a.st.users[id]
	if !ok {
		return models.UserPublic{}, ErrNotFound
	}
	if !acc.user.IsActive {
		return models.UserPublic{}, ErrInactive
	}
	return acc.user, nil
}

// RecoveryToken returns a short-lived reset token for an existing email.
func (a *AuthService) RecoveryToken(_ context.Context, email string) (string, error) {
	a.st.mu.RLock()
	_, ok := a.st.byEmail[normEmail(email)]
	a.st.mu.RUnlock()
	if !ok {
		return "", ErrNotFound
	}
	return a.sign(normEmail(email), "reset", time.Hour)
}

// ResetPassword sets a new password for the account named by a reset token.
func (a *AuthService) ResetPassword(_ context.Context, token, newPassword string) error {
	email, err := a.parse(token, "reset")
	if err != nil {
		return err
	}
	hash, err := passhash.HashWith(a.st.hashp, newPassword)
	if err != nil {
		return err
	}
	a.st.mu.Lock()
	defer a.st.mu.Unlock()
	id, ok := a.st.byEmail[email]
	if !ok {
		return ErrNotFound
	}
	acc := a.st.users[id]
	if !acc.user.IsActive {
		return ErrInactive
	}
	acc.hash = hash
	return nil
}

func (a *AuthService) sign(sub, purpose string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": sub,
		"use": purpose,
		"exp": time.Now().Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

func (a *AuthService) parse(token, purpose string) (string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return a.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	if use, _ := claims["use"].(string); use != purpose {
		return "", ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}

type UsersService struct{ st *state }

func (s *UsersService) Create(_ context.Context, in models.UserCreate) (models.UserPublic, error) {
	hash, err := passhash.HashWith(s.st.hashp, in.Password)
	if err != nil {
		return models.UserPublic{}, err
	}
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	email := normEmail(in.Email)
	if _, exists := s.st.byEmail[email]; exists {
		return models.UserPublic{}, ErrConflict
	}
	s.st.nextUser++
	u := models.UserPublic{
		UserFields: models.UserFields{Email: email, IsActive: true, FullName: in.FullName},
		ID:         s.st.nextUser,
	}
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}
	if in.IsSuperuser != nil {
		u.IsSuperuser = *in.IsSuperuser
	}
	s.st.users[u.ID] = &account{user: u, hash: hash}
	s.st.byEmail[email] = u.ID
	return u, nil
}

func (s *UsersService) List(_ context.Context, skip, limit int) (models.UsersPublic, error) {
	s.st.mu.RLock()
	defer s.st.mu.RUnlock()
	all := make([]models.UserPublic, 0, len(s.st.users))
	for _, acc := range s.st.users {
		all = append(all, acc.user)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return models.UsersPublic{Data: page(all, skip, limit), Count: len(all)}, nil
}

func (s *UsersService) Get(_ context.Context, id int) (models.UserPublic, error) {
	s.st.mu.RLock()
	defer s.st.mu.RUnlock()
	acc, ok := s.st.users[id]
	if !ok {
		return models.UserPublic{}, ErrNotFound
	}
	return acc.user, nil
}

func (s *UsersService) Update(_ context.Context, id int, in models.UserUpdate) (models.UserPublic, error) {
	var hash string
	if in.Password != nil {
		h, err := passhash.HashWith(s.st.hashp, *in.Password)
		if err != nil {
			return models.UserPublic{}, err
		}
		hash = h
	}
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	acc, ok := s.st.users[id]
	if !ok {
		return models.UserPublic{}, ErrNotFound
	}
	if in.Email != nil {
		if err := s.renameLocked(acc, *in.Email); err != nil {
			return models.UserPublic{}, err
		}
	}
	if in.IsActive != nil {
		acc.user.IsActive = *in.IsActive
	}
	if in.IsSuperuser != nil {
		acc.user.IsSuperuser = *in.IsSuperuser
	}
	if in.FullName != nil {
		acc.user.FullName = in.FullName
	}
	if hash != "" {
		acc.hash = hash
	}
	return acc.user, nil
}

func (s *UsersService) renameLocked(acc *account, email string) error {
	email = normEmail(email)
	if other, exists := s.st.byEmail[email]; exists && other != acc.user.ID {
		return ErrConflict
	}
	delete(s.st.byEmail, acc.user.Email)
	acc.user.Email = email
	s.st.byEmail[email] = acc.user.ID
	return nil
}

// ChangePassword checks the current password before replacing it.
func (s *UsersService) ChangePassword(_ context.Context, id int, current, next string) error {
	s.st.mu.RLock()
	acc, ok := s.st.users[id]
	var oldHash string
	if ok {
		oldHash = acc.hash
	}
	s.st.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}
	if match, err := passhash.Verify(oldHash, current); err != nil || !match {
		return ErrInvalidCredentials
	}
	if current == next {
		return ErrSamePassword
	}
	hash, err := passhash.HashWith(s.st.hashp, next)
	if err != nil {
		return err
	}
	s.st.mu.Lock()
	acc.hash = hash
	s.st.mu.Unlock()
	return nil
}

// Delete removes the account with its movies and like list.
func (s *UsersService) Delete(_ context.Context, id int) error {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	acc, ok := s.st.users[id]
	if !ok {
		return ErrNotFound
	}
	delete(s.st.byEmail, acc.user.Email)
	delete(s.st.users, id)
	delete(s.st.links, id)
	for mid, m := range s.st.movies {
		if m.OwnerID == id {
			delete(s.st.movies, mid)
		}
	}
	return nil
}

// MoviesService owns the catalog. Non-superusers only see their own movies.
type MoviesService struct{ st *state }

func (s *MoviesService) Create(_ context.Context, owner models.UserPublic, in models.MovieCreate) (models.MoviePublic, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	s.st.nextMovie++
	m := models.MoviePublic{MovieCreate: in, ID: s.st.nextMovie, OwnerID: owner.ID}
	s.st.movies[m.ID] = m
	return m, nil
}

func (s *MoviesService) List(_ context.Context, caller models.UserPublic, skip, limit int) (models.MoviesPublic, error) {
	s.st.mu.RLock()
	defer s.st.mu.RUnlock()
	var all []models.MoviePublic
	for _, m := range s.st.movies {
		if caller.IsSuperuser || m.OwnerID == caller.ID {
			all = append(all, m)
		}
	}
	sortMovies(all)
	return models.MoviesPublic{Data: page(all, skip, limit), Count: len(all)}, nil
}

// Liked returns the movies listed in the caller's like list.
func (s *MoviesService) Liked(_ context.Context, caller models.UserPublic) (models.MoviesPublic, error) {
	s.st.mu.RLock()
	defer s.st.mu.RUnlock()
	ids, ok := s.st.links[caller.ID]
	if !ok {
		return models.MoviesPublic{}, ErrNotFound
	}
	out := make([]models.MoviePublic, 0, len(ids))
	for _, id := range ids {
		if m, ok := s.st.movies[id]; ok {
			out = append(out, m)
		}
	}
	sortMovies(out)
	return models.MoviesPublic{Data: out, Count: len(out)}, nil
}

func (s *MoviesService) Get(_ context.Context, caller models.UserPublic, id int) (models.MoviePublic, error) {
	s.st.mu.RLock()
	defer s.st.mu.RUnlock()
	return s.ownedLocked(caller, id)
}

// Update overwrites the fields present in in; nil optional fields keep their value.
func (s *MoviesService) Update(_ context.Context, caller models.UserPublic, id int, in models.MovieUpdate) (models.MoviePublic, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	m, err := s.ownedLocked(caller, id)
	if err != nil {
		return models.MoviePublic{}, err
	}
	m.Year = in.Year
	m.IMDbID = in.IMDbID
	if in.Title != nil {
		m.Title = *in.Title
	}
	mergeDetails(&m.MovieDetails, in.MovieDetails)
	s.st.movies[id] = m
	return m, nil
}

func (s *MoviesService) Delete(_ context.Context, caller models.UserPublic, id int) error {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	if _, err := s.ownedLocked(caller, id); err != nil {
		return err
	}
	delete(s.st.movies, id)
	return nil
}

func (s *MoviesService) ownedLocked(caller models.UserPublic, id int) (models.MoviePublic, error) {
	m, ok := s.st.movies[id]
	if !ok {
		return models.MoviePublic{}, ErrNotFound
	}
	if !caller.IsSuperuser && m.OwnerID != caller.ID {
		return models.MoviePublic{}, ErrForbidden
	}
	return m, nil
}

func mergeDetails(dst *models.MovieDetails, src models.MovieDetails) {
	for _, f := range []struct{ d, s **string }{
		{&dst.Rated, &src.Rated}, {&dst.Released, &src.Released}, {&dst.Runtime, &src.Runtime},
		{&dst.Genre, &src.Genre}, {&dst.Director, &src.Director}, {&dst.Writer, &src.Writer},
		{&dst.Actors, &src.Actors}, {&dst.Plot, &src.Plot}, {&dst.Language, &src.Language},
		{&dst.Country, &src.Country}, {&dst.Awards, &src.Awards}, {&dst.Poster, &src.Poster},
		{&dst.IMDbRating, &src.IMDbRating}, {&dst.IMDbVotes, &src.IMDbVotes}, {&dst.Metascore, &src.Metascore},
		{&dst.BoxOffice, &src.BoxOffice}, {&dst.Production, &src.Production}, {&dst.Website, &src.Website},
	} {
		if *f.s != nil {
			*f.d = *f.s
		}
	}
}

// UserMovieService keeps one like list per user.
type UserMovieService struct{ st *state }

func (s *UserMovieService) Read(_ context.Context, caller models.UserPublic) (models.UserMoviePublic, error) {
	s.st.mu.RLock()
	defer s.st.mu.RUnlock()
	ids, ok := s.st.links[caller.ID]
	if !ok {
		return models.UserMoviePublic{}, ErrNotFound
	}
	return linkOut(caller.ID, ids), nil
}

func (s *UserMovieService) Create(_ context.Context, caller models.UserPublic, movies []int) (models.UserMoviePublic, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	if _, ok := s.st.links[caller.ID]; ok {
		return models.UserMoviePublic{}, ErrConflict
	}
	s.st.links[caller.ID] = dedupe(movies)
	return linkOut(caller.ID, s.st.links[caller.ID]), nil
}

func (s *UserMovieService) Replace(_ context.Context, caller models.UserPublic, movies []int) (models.UserMoviePublic, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	if _, ok := s.st.links[caller.ID]; !ok {
		return models.UserMoviePublic{}, ErrNotFound
	}
	s.st.links[caller.ID] = dedupe(movies)
	return linkOut(caller.ID, s.st.links[caller.ID]), nil
}

// Add appends movieID unless it is already listed.
func (s *UserMovieService) Add(_ context.Context, caller models.UserPublic, movieID int) (models.UserMoviePublic, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	ids, ok := s.st.links[caller.ID]
	if !ok {
		return models.UserMoviePublic{}, ErrNotFound
	}
	if !contains(ids, movieID) {
		ids = append(ids, movieID)
		s.st.links[caller.ID] = ids
	}
	return linkOut(caller.ID, ids), nil
}

// Remove drops movieID if it is listed.
func (s *UserMovieService) Remove(_ context.Context, caller models.UserPublic, movieID int) (models.UserMoviePublic, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	ids, ok := s.st.links[caller.ID]
	if !ok {
		return models.UserMoviePublic{}, ErrNotFound
	}
	out := ids[:0:0]
	for _, id := range ids {
		if id != movieID {
			out = append(out, id)
		}
	}
	s.st.links[caller.ID] = out
	return linkOut(caller.ID, out), nil
}

// Delete drops the like list owned by ownerID.
func (s *UserMovieService) Delete(_ context.Context, caller models.UserPublic, ownerID int) error {
	if !caller.IsSuperuser && caller.ID != ownerID {
		return ErrForbidden
	}
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	if _, ok := s.st.links[ownerID]; !ok {
		return ErrNotFound
	}
	delete(s.st.links, ownerID)
	return nil
}

func linkOut(owner int, ids []int) models.UserMoviePublic {
	return models.UserMoviePublic{OwnerID: owner, Movies: append([]int{}, ids...)}
}

func contains(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func dedupe(ids []int) []int {
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if !contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

func sortMovies(ms []models.MoviePublic) {
	sort.Slice(ms, func(i, j int) bool { return ms[i].ID < ms[j].ID })
}

func page[T any](all []T, skip, limit int) []T {
	if skip >= len(all) {
		return []T{}
	}
	end := len(all)
	if limit >= 0 && skip+limit < end {
		end = skip + limit
	}
	return all[skip:end]
}
