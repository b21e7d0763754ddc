package api

import (
	"context"
	"net/http"

	"github.com/ljxowen/movie-recommender/internal/shared/models"
)

type UtilsService struct{ t *Transport }

// TestEmail asks the server to send a diagnostic email to emailTo.
func (s *UtilsService) TestEmail(ctx context.Context, emailTo string) (models.Message, error) {
	const op = "testEmail"
	if err := checkVar(op, "email_to", emailTo, "required"); err != nil {
		return models.Message{}, err
	}
	return Execute[models.Message](ctx, s.t, Descriptor{
		Operation: op,
		Method:    http.MethodPost,
		Path:      "/api/v1/utils/test-email/",
		Query:     map[string]any{"email_to": emailTo},
		Errors:    validationErrorLabels,
	})
}
