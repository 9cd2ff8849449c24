package serverutils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs struct tag validation and folds failures into a single
// user-visible message.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if ok := isValidationErrors(err, &validationErrs); !ok {
		return NewValidationError(err.Error())
	}

	messages := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		switch fe.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", strings.ToLower(fe.Field())))
		case "min", "max", "gte", "lte":
			messages = append(messages, fmt.Sprintf("%s is out of range", strings.ToLower(fe.Field())))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", strings.ToLower(fe.Field())))
		}
	}
	return NewValidationError(strings.Join(messages, "; "))
}

func isValidationErrors(err error, target *validator.ValidationErrors) bool {
	ve, ok := err.(validator.ValidationErrors)
	if ok {
		*target = ve
	}
	return ok
}
