package deck

import (
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	deckerrors "github.com/avelinec/deckwright/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
)

// validatorInstance configures and returns the shared validator used for deck
// schema checks.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("hex_color", func(fl validator.FieldLevel) bool {
			return hexColorPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("slide_layout", func(fl validator.FieldLevel) bool {
			value := Layout(fl.Field().String())
			for _, l := range Layouts {
				if l == value {
					return true
				}
			}
			return false
		})

		validateInst = v
	})

	return validateInst
}

// Validate checks a deck against the schema tags. It returns a ValidationError
// naming the first offending field.
func Validate(d *Deck) error {
	if err := validatorInstance().Struct(d); err != nil {
		var fieldErrs validator.ValidationErrors
		if ok := asValidationErrors(err, &fieldErrs); ok && len(fieldErrs) > 0 {
			first := fieldErrs[0]
			return deckerrors.NewValidationError(
				strings.TrimPrefix(first.Namespace(), "Deck."),
				"failed "+first.Tag()+" check",
				err,
			)
		}
		return deckerrors.NewValidationError("", err.Error(), err)
	}
	return nil
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	if errs, ok := err.(validator.ValidationErrors); ok {
		*target = errs
		return true
	}
	return false
}
