package config

import (
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/avelinec/deckwright/internal/theme"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	backendIDPattern = regexp.MustCompile(`^[a-z0-9_-]+$`)
)

// validatorInstance configures and returns the shared validator instance used across the config package.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("backend_id", func(fl validator.FieldLevel) bool {
			return backendIDPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("theme_key", func(fl validator.FieldLevel) bool {
			key := fl.Field().String()
			if key == "" {
				return true
			}
			for _, known := range theme.Keys() {
				if strings.EqualFold(key, known) {
					return true
				}
			}
			return false
		})

		validateInst = v
	})

	return validateInst
}

// GetValidator returns a configured validator instance for use outside the config package.
func GetValidator() *validator.Validate {
	return validatorInstance()
}
