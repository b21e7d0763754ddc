package api

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func checkStruct(op string, v any) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%s: %w: %v", op, ErrInvalidArgument, err)
	}
	return nil
}

func checkVar(op, name string, v any, tag string) error {
	if err := validate.Var(v, tag); err != nil {
		return fmt.Errorf("%s: %w: %s: %v", op, ErrInvalidArgument, name, err)
	}
	return nil
}

func checkID(op string, id int) error { return checkVar(op, "id", id, "gt=0") }

// ListParams pages list endpoints. A nil Limit means DefaultLimit;
// a pointer to 0 is sent as limit=0.
type ListParams struct {
	Skip  int  `validate:"gte=0"`
	Limit *int `validate:"omitempty,gte=0"`
}

const DefaultLimit = 100

func (p ListParams) query() map[string]any {
	limit := DefaultLimit
	if p.Limit != nil {
		limit = *p.Limit
	}
	return map[string]any{"skip": p.Skip, "limit": limit}
}
