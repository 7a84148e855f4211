package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/apperr"
	"github.com/MomnaShafqaat/DigitalPakistanMovement/internal/models"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation("city", func(fl validator.FieldLevel) bool {
		return models.City(fl.Field().String()).Valid()
	})
	_ = validate.RegisterValidation("cause", func(fl validator.FieldLevel) bool {
		return models.Cause(fl.Field().String()).Valid()
	})
	_ = validate.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return models.Category(fl.Field().String()).Valid()
	})
	_ = validate.RegisterValidation("update_type", func(fl validator.FieldLevel) bool {
		return models.UpdateType(fl.Field().String()).Valid()
	})
}

// validateStruct runs the struct tags and converts failures into a field
// keyed ValidationError.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	verr := apperr.NewValidationError()
	for _, fe := range fieldErrs {
		verr.Add(fe.Field(), fieldMessage(fe))
	}
	return verr
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "enter a valid email address"
	case "url":
		return "enter a valid URL"
	case "max":
		return fmt.Sprintf("ensure this field has no more than %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("ensure this value is greater than or equal to %s", fe.Param())
	case "latitude":
		return "enter a valid latitude"
	case "longitude":
		return "enter a valid longitude"
	case "oneof", "city", "cause", "category", "update_type":
		return fmt.Sprintf("%q is not a valid choice", fmt.Sprint(fe.Value()))
	default:
		return "invalid value"
	}
}
