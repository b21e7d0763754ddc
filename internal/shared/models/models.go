package models

import (
	"fmt"
	"net/url"
	"strings"
)

// TokenTypeBearer is the only credential scheme the API issues.
const TokenTypeBearer = "bearer"

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}

type Message struct {
	Message string `json:"message"`
}

// LoginForm is the OAuth2 password-grant body of the access-token endpoint.
type LoginForm struct {
	Username     string `validate:"required"`
	Password     string `validate:"required"`
	GrantType    string
	Scope        string
	ClientID     string
	ClientSecret string
}

// Values encodes the form. Unset optional fields are left out, scope is always sent.
func (f LoginForm) Values() url.Values {
	v := url.Values{}
	v.Set("username", f.Username)
	v.Set("password", f.Password)
	v.Set("scope", f.Scope)
	if f.GrantType != "" {
		v.Set("grant_type", f.GrantType)
	}
	if f.ClientID != "" {
		v.Set("client_id", f.ClientID)
	}
	if f.ClientSecret != "" {
		v.Set("client_secret", f.ClientSecret)
	}
	return v
}

type NewPassword struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required"`
}

type UpdatePassword struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
}

// ValidationError is one entry of a 422 response's detail list.
// Loc elements are field names (string) or indices (number).
type ValidationError struct {
	Loc  []any  `json:"loc"`
	Msg  string `json:"msg"`
	Type string `json:"type"`
}

// Path joins Loc with dots, e.g. "body.imdb_id".
func (e ValidationError) Path() string {
	parts := make([]string, 0, len(e.Loc))
	for _, l := range e.Loc {
		switch v := l.(type) {
		case string:
			parts = append(parts, v)
		case float64:
			parts = append(parts, fmt.Sprintf("%d", int64(v)))
		default:
			parts = append(parts, fmt.Sprint(v))
		}
	}
	return strings.Join(parts, ".")
}

type HTTPValidationError struct {
	Detail []ValidationError `json:"detail"`
}

// Ptr returns a pointer to v, for filling optional fields.
func Ptr[T any](v T) *T { return &v }
