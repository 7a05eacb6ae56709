package httpapi

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/example/talentflow/internal/core/candidate"
	"github.com/example/talentflow/internal/errs"
)

type ValidationRule struct {
	Rule func(v *validator.Validate)
}

// Validator is a wrapper around the actual validator.
// It sets up the validator and turns rule failures into an errs.ValidationError
// keyed by JSON field name.
type Validator struct {
	validator *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validator: v}
}

func (v *Validator) Register(rules ...ValidationRule) {
	for _, validationRule := range rules {
		validationRule.Rule(v.validator)
	}
}

// Struct validates s. Rule failures come back as *errs.ValidationError.
func (v *Validator) Struct(s any) error {
	err := v.validator.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = reason(fe)
	}
	return errs.NewValidationError(fields)
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return "invalid email"
	case "oneof":
		return "must be one of " + fe.Param()
	case "stage":
		return "unknown stage"
	default:
		return "failed " + fe.Tag() + " check"
	}
}

func registerFn(tag string, fn func(fl validator.FieldLevel) bool) func(v *validator.Validate) {
	return func(v *validator.Validate) {
		_ = v.RegisterValidation(tag, fn)
	}
}

// NewCandidateValidationRules returns the rules candidate requests use.
func NewCandidateValidationRules() []ValidationRule {
	return []ValidationRule{
		{
			Rule: registerFn("stage", stageValidator),
		},
	}
}

func stageValidator(fl validator.FieldLevel) bool {
	_, err := candidate.ParseStage(fl.Field().String())
	return err == nil
}
