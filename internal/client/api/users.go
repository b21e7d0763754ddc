package api

import (
	"context"
	"net/http"

	"github.com/ljxowen/movie-recommender/internal/shared/models"
)

type UsersService struct{ t *Transport }

func (s *UsersService) List(ctx context.Context, p ListParams) (models.UsersPublic, error) {
	const op = "readUsers"
	if err := checkStruct(op, p); err != nil {
		return models.UsersPublic{}, err
	}
	return Execute[models.UsersPublic](ctx, s.t, Descriptor{
		Operation: op,
		Method:    http.MethodGet,
		Path:      "/api/v1/users/",
		Query:     p.query(),
		Errors:    validationErrorLabels,
	})
}

func (s *UsersService) Create(ctx context.Context, in models.UserCreate) (models.UserPublic, error) {
	const op = "createUser"
	if err := checkStruct(op, in); err != nil {
		return models.UserPublic{}, err
	}
	return Execute[models.UserPublic](ctx, s.t, Descriptor{
		Operation: op,
		Method:    http.MethodPost,
		Path:      "/api/v1/users/",
		Body:      in,
		MediaType: MediaJSON,
		Errors:    validationErrorLabels,
	})
}

func (s *UsersService) Me(ctx context.Context) (models.UserPublic, error) {
	return Execute[models.UserPublic](ctx, s.t, Descriptor{
		Operation: "readUserMe",
		Method:    http.MethodGet,
		Path:      "/api/v1/users/me",
	})
}

func (s *UsersService) DeleteMe(ctx context.Context) (models.Message, error) {
	return Execute[models.Message](ctx, s.t, Descriptor{
		Operation: "deleteUserMe",
		Method:    http.MethodDelete,
		Path:      "/api/v1/users/me",
	})
}

func (s *UsersService) UpdateMe(ctx context.Context, in models.UserUpdateMe) (models.UserPublic, error) {
	return Execute[models.UserPublic](ctx, s.t, Descriptor{
		Operation: "updateUserMe",
		Method:    http.MethodPatch,
		Path:      "/api/v1/users/me",
		Body:      in,
		MediaType: MediaJSON,
		Errors:    validationErrorLabels,
	})
}

func (s *UsersService) UpdatePasswordMe(ctx context.Context, in models.UpdatePassword) (models.Message, error) {
	const op = "updatePasswordMe"
	if err := checkStruct(op, in); err != nil {
		return models.Message{}, err
	}
	return Execute[models.Message](ctx, s.t, Descriptor{
		Operation: op,
		Method:    http.MethodPatch,
		Path:      "/api/v1/users/me/password",
		Body:      in,
		MediaType: MediaJSON,
		Errors:    validationErrorLabels,
	})
}

// Register creates an account without authentication.
func (s *UsersService) Register(ctx context.Context, in models.UserRegister) (models.UserPublic, error) {
	const op = "registerUser"
	if err := checkStruct(op, in); err != nil {
		return models.UserPublic{}, err
	}
	return Execute[models.UserPublic](ctx, s.t, Descriptor{
		Operation: op,
		Method:    http.MethodPost,
		Path:      "/api/v1/users/signup",
		Body:      in,
		MediaType: MediaJSON,
		Errors:    validationErrorLabels,
	})
}

func (s *UsersService) Get(ctx context.Context, userID int) (models.UserPublic, error) {
	const op = "readUserById"
	if err := checkID(op, userID); err != nil {
		return models.UserPublic{}, err
	}
	return Execute[models.UserPublic](ctx, s.t, Descriptor{
		Operation:  op,
		Method:     http.MethodGet,
		Path:       "/api/v1/users/{user_id}",
		PathParams: map[string]string{"user_id": itoa(userID)},
		Errors:     validationErrorLabels,
	})
}

func (s *UsersService) Update(ctx context.Context, userID int, in models.UserUpdate) (models.UserPublic, error) {
	const op = "updateUser"
	if err := checkID(op, userID); err != nil {
		return models.UserPublic{}, err
	}
	return Execute[models.UserPublic](ctx, s.t, Descriptor{
		Operation:  op,
		Method:     http.MethodPatch,
		Path:       "/api/v1/users/{user_id}",
		PathParams: map[string]string{"user_id": itoa(userID)},
		Body:       in,
		MediaType:  MediaJSON,
		Errors:     validationErrorLabels,
	})
}

func (s *UsersService) Delete(ctx context.Context, userID int) (models.Message, error) {
	const op = "deleteUser"
	if err := checkID(op, userID); err != nil {
		return models.Message{}, err
	}
	return Execute[models.Message](ctx, s.t, Descriptor{
		Operation:  op,
		Method:     http.MethodDelete,
		Path:       "/api/v1/users/{user_id}",
		PathParams: map[string]string{"user_id": itoa(userID)},
		Errors:     validationErrorLabels,
	})
}
