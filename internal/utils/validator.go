package utils

import (
	"errors"
	"pantrypal/entities"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

func InitValidator() {
	Validate = NewValidator()
}

func NewValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("storage_location", func(fl validator.FieldLevel) bool {
		return entities.StorageLocation(fl.Field().String()).Valid()
	})

	return v
}

// FirstInvalidField names the field that failed first, or "" when err is not
// a validation failure.
func FirstInvalidField(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Field()
	}
	return ""
}
