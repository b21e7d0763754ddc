package api

import (
	"context"
	"net/http"

	"github.com/ljxowen/movie-recommender/internal/shared/models"
)

// UserMovieService manages the caller's like list.
type UserMovieService struct{ t *Transport }

func (s *UserMovieService) Read(ctx context.Context) (models.UserMoviePublic, error) {
	return Execute[models.UserMoviePublic](ctx, s.t, Descriptor{
		Operation: "readUserMovie",
		Method:    http.MethodGet,
		Path:      "/api/v1/user_movie/",
	})
}

// Replace overwrites the whole list.
func (s *UserMovieService) Replace(ctx context.Context, in models.UserMovieIn) (models.UserMoviePublic, error) {
	return Execute[models.UserMoviePublic](ctx, s.t, Descriptor{
		Operation: "updateUserMovie",
		Method:    http.MethodPut,
		Path:      "/api/v1/user_movie/",
		Body:      normalizeLinks(in),
		MediaType: MediaJSON,
		Errors:    validationErrorLabels,
	})
}

func (s *UserMovieService) Create(ctx context.Context, in models.UserMovieIn) (models.UserMoviePublic, error) {
	return Execute[models.UserMoviePublic](ctx, s.t, Descriptor{
		Operation: "createUserMovie",
		Method:    http.MethodPost,
		Path:      "/api/v1/user_movie/",
		Body:      normalizeLinks(in),
		MediaType: MediaJSON,
		Errors:    validationErrorLabels,
	})
}

// Add puts movieID in the list. Adding a present id changes nothing.
func (s *UserMovieService) Add(ctx context.Context, movieID int) (models.UserMoviePublic, error) {
	const op = "addUserMovie"
	if err := checkID(op, movieID); err != nil {
		return models.UserMoviePublic{}, err
	}
	return Execute[models.UserMoviePublic](ctx, s.t, Descriptor{
		Operation:  op,
		Method:     http.MethodPut,
		Path:       "/api/v1/user_movie/add/{id}",
		PathParams: map[string]string{"id": itoa(movieID)},
		Errors:     validationErrorLabels,
	})
}

// Remove takes movieID out of the list. Removing an absent id changes nothing.
func (s *UserMovieService) Remove(ctx context.Context, movieID int) (models.UserMoviePublic, error) {
	const op = "removeUserMovie"
	if err := checkID(op, movieID); err != nil {
		return models.UserMoviePublic{}, err
	}
	return Execute[models.UserMoviePublic](ctx, s.t, Descriptor{
		Operation:  op,
		Method:     http.MethodPut,
		Path:       "/api/v1/user_movie/remove/{id}",
		PathParams: map[string]string{"id": itoa(movieID)},
		Errors:     validationErrorLabels,
	})
}

// Delete drops the list record of the given owner.
func (s *UserMovieService) Delete(ctx context.Context, ownerID int) (models.Message, error) {
	const op = "deleteUserMovie"
	if err := checkID(op, ownerID); err != nil {
		return models.Message{}, err
	}
	return Execute[models.Message](ctx, s.t, Descriptor{
		Operation:  op,
		Method:     http.MethodDelete,
		Path:       "/api/v1/user_movie/{id}",
		PathParams: map[string]string{"id": itoa(ownerID)},
		Errors:     validationErrorLabels,
	})
}

// normalizeLinks sends [] instead of null for an empty list.
func normalizeLinks(in models.UserMovieIn) models.UserMovieIn {
	if in.Movies == nil {
		in.Movies = []int{}
	}
	return in
}
