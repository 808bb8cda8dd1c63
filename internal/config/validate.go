package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	deckerrors "github.com/avelinec/deckwright/pkg/errors"
)

// ValidateConfig checks the document against its declared constraints and
// reports the first violation as a typed validation error.
func ValidateConfig(cfg *Config) error {
	err := validatorInstance().Struct(cfg)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok || len(fieldErrs) == 0 {
		return deckerrors.NewValidationError("config", "invalid configuration", err)
	}

	fe := fieldErrs[0]
	return deckerrors.NewValidationError(fe.Namespace(), messageFor(fe), err)
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "min":
		return "is required"
	case "backend_id":
		return "must contain only lowercase letters, digits, hyphens and underscores"
	case "theme_key":
		return "is not a known theme preset"
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "hostname_port":
		return "must be a host:port address"
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}
