package api

import (
	"context"
	"net/http"

	"github.com/ljxowen/movie-recommender/internal/shared/models"
)

// LoginService covers token issue, token check and password recovery.
type LoginService struct{ t *Transport }

// AccessToken performs the OAuth2 password grant.
func (s *LoginService) AccessToken(ctx context.Context, form models.LoginForm) (models.Token, error) {
	const op = "loginAccessToken"
	if err := checkStruct(op, form); err != nil {
		return models.Token{}, err
	}
	return Execute[models.Token](ctx, s.t, Descriptor{
		Operation: op,
		Method:    http.MethodPost,
		Path:      "/api/v1/login/access-token",
		Body:      form.Values(),
		MediaType: MediaForm,
		Errors:    validationErrorLabels,
	})
}

// TestToken returns the user owning the current token.
func (s *LoginService) TestToken(ctx context.Context) (models.UserPublic, error) {
	return Execute[models.UserPublic](ctx, s.t, Descriptor{
		Operation: "testToken",
		Method:    http.MethodPost,
		Path:      "/api/v1/login/test-token",
	})
}

func (s *LoginService) RecoverPassword(ctx context.Context, email string) (models.Message, error) {
	const op = "recoverPassword"
	if err := checkVar(op, "email", email, "required"); err != nil {
		return models.Message{}, err
	}
	return Execute[models.Message](ctx, s.t, Descriptor{
		Operation:  op,
		Method:     http.MethodPost,
		Path:       "/api/v1/password-recovery/{email}",
		PathParams: map[string]string{"email": email},
		Errors:     validationErrorLabels,
	})
}

func (s *LoginService) ResetPassword(ctx context.Context, body models.NewPassword) (models.Message, error) {
	const op = "resetPassword"
	if err := checkStruct(op, body); err != nil {
		return models.Message{}, err
	}
	return Execute[models.Message](ctx, s.t, Descriptor{
		Operation: op,
		Method:    http.MethodPost,
		Path:      "/api/v1/reset-password/",
		Body:      body,
		MediaType: MediaJSON,
		Errors:    validationErrorLabels,
	})
}

// RecoverPasswordHTML returns the recovery email body. Diagnostic only.
func (s *LoginService) RecoverPasswordHTML(ctx context.Context, email string) (string, error) {
	const op = "recoverPasswordHtmlContent"
	if err := checkVar(op, "email", email, "required"); err != nil {
		return "", err
	}
	return Execute[string](ctx, s.t, Descriptor{
		Operation:  op,
		Method:     http.MethodPost,
		Path:       "/api/v1/password-recovery-html-content/{email}",
		PathParams: map[string]string{"email": email},
		Errors:     validationErrorLabels,
	})
}
