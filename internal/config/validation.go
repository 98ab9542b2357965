package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	ferrors "git.home.luguber.info/inful/curriculumgen/internal/foundation/errors"
)

var validate = newValidator()

// jsIdentifier matches identifiers that can follow `export const` in the
// generated TypeScript module. Reserved words are not rejected.
var jsIdentifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("jsident", func(fl validator.FieldLevel) bool {
		return jsIdentifier.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// Validate checks field constraints and returns a classified config error
// naming every failing field.
func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ferrors.WrapError(err, ferrors.CategoryConfig, "invalid configuration").Fatal().Build()
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
	}
	return ferrors.ConfigError("invalid configuration: " + strings.Join(fields, ", ")).
		WithContext("fields", fields).
		Build()
}
