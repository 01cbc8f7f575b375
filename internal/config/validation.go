package config

import (
	"context"
	stderrs "errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/olusolaa/api-contract-oracle/internal/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateStruct runs struct tag validation and turns failures into a
// user-facing error listing every failing field.
func ValidateStruct(ctx context.Context, v any, code errors.Code, subject, suggestion string) error {
	err := validate.StructCtx(ctx, v)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !stderrs.As(err, &validationErrors) {
		return errors.Wrap(err, errors.CodeInternal, subject+" validation could not run")
	}

	var errorDetails strings.Builder
	errorDetails.WriteString(subject + " validation failed:")
	for _, fe := range validationErrors {
		errorDetails.WriteString(fmt.Sprintf("\n - Field '%s': Failed on '%s' validation (value: '%v')", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return errors.NewUserFacing(code, errorDetails.String(), suggestion)
}
