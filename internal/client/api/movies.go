package api

import (
	"context"
	"net/http"

	"github.com/ljxowen/movie-recommender/internal/shared/models"
)

type MoviesService struct{ t *Transport }

func (s *MoviesService) List(ctx context.Context, p ListParams) (models.MoviesPublic, error) {
	const op = "readMovies"
	if err := checkStruct(op, p); err != nil {
		return models.MoviesPublic{}, err
	}
	return Execute[models.MoviesPublic](ctx, s.t, Descriptor{
		Operation: op,
		Method:    http.MethodGet,
		Path:      "/api/v1/movies/",
		Query:     p.query(),
		Errors:    validationErrorLabels,
	})
}

func (s *MoviesService) Create(ctx context.Context, in models.MovieCreate) (models.MoviePublic, error) {
	const op = "createMovie"
	if err := checkStruct(op, in); err != nil {
		return models.MoviePublic{}, err
	}
	return Execute[models.MoviePublic](ctx, s.t, Descriptor{
		Operation: op,
		Method:    http.MethodPost,
		Path:      "/api/v1/movies/",
		Body:      in,
		MediaType: MediaJSON,
		Errors:    validationErrorLabels,
	})
}

// Liked returns the movies whose ids are in the caller's like list.
func (s *MoviesService) Liked(ctx context.Context) (models.MoviesPublic, error) {
	return Execute[models.MoviesPublic](ctx, s.t, Descriptor{
		Operation: "readLikedMovies",
		Method:    http.MethodGet,
		Path:      "/api/v1/movies/liked",
	})
}

func (s *MoviesService) Get(ctx context.Context, id int) (models.MoviePublic, error) {
	const op = "readMovie"
	if err := checkID(op, id); err != nil {
		return models.MoviePublic{}, err
	}
	return Execute[models.MoviePublic](ctx, s.t, Descriptor{
		Operation:  op,
		Method:     http.MethodGet,
		Path:       "/api/v1/movies/{id}",
		PathParams: map[string]string{"id": itoa(id)},
		Errors:     validationErrorLabels,
	})
}

func (s *MoviesService) Update(ctx context.Context, id int, in models.MovieUpdate) (models.MoviePublic, error) {
	const op = "updateMovie"
	if err := checkID(op, id); err != nil {
		return models.MoviePublic{}, err
	}
	if err := checkStruct(op, in); err != nil {
		return models.MoviePublic{}, err
	}
	return Execute[models.MoviePublic](ctx, s.t, Descriptor{
		Operation:  op,
		Method:     http.MethodPut,
		Path:       "/api/v1/movies/{id}",
		PathParams: map[string]string{"id": itoa(id)},
		Body:       in,
		MediaType:  MediaJSON,
		Errors:     validationErrorLabels,
	})
}

func (s *MoviesService) Delete(ctx context.Context, id int) (models.Message, error) {
	const op = "deleteMovie"
	if err := checkID(op, id); err != nil {
		return models.Message{}, err
	}
	return Execute[models.Message](ctx, s.t, Descriptor{
		Operation:  op,
		Method:     http.MethodDelete,
		Path:       "/api/v1/movies/{id}",
		PathParams: map[string]string{"id": itoa(id)},
		Errors:     validationErrorLabels,
	})
}
