package middleware

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apierrors "github.com/Mees070/woningprijs-calculater/internal/errors"
	"github.com/Mees070/woningprijs-calculater/internal/pricing"
)

// Validator validates request payloads against struct tags.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a request validator with the domain validators
// registered.
func NewValidator() *Validator {
	v := validator.New()

	v.RegisterValidation("energylabel", isEnergyLabel)
	v.RegisterValidation("condition", isCondition)

	// Use JSON tag names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// ValidateStruct validates a struct and returns an APIError listing every
// failed field, or nil.
func (m *Validator) ValidateStruct(v interface{}) error {
	err := m.validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrors []apierrors.FieldError
	for _, fe := range err.(validator.ValidationErrors) {
		fieldErrors = append(fieldErrors, apierrors.FieldError{
			Field:   fe.Field(),
			Message: formatFieldError(fe),
		})
	}
	return apierrors.NewFieldErrors(fieldErrors)
}

// formatFieldError formats validation error messages
func formatFieldError(err validator.FieldError) string {
	field := err.Field()
	param := err.Param()

	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, param)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, param)
	case "lt":
		return fmt.Sprintf("%s must be less than %s", field, param)
	case "energylabel":
		return fmt.Sprintf("%s must be a known energy label", field)
	case "condition":
		return fmt.Sprintf("%s must be one of: poor, fair, good, excellent", field)
	default:
		return fmt.Sprintf("%s failed %s validation", field, err.Tag())
	}
}

// isEnergyLabel accepts an empty value or a label on the official scale.
func isEnergyLabel(fl validator.FieldLevel) bool {
	label := fl.Field().String()
	if label == "" {
		return true
	}
	_, ok := pricing.EnergyLabelRank(label)
	return ok
}

// isCondition accepts an empty value or a known condition state.
func isCondition(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return pricing.Condition(value).IsKnown()
}
