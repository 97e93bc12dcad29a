package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError is a single violated field in an inbound payload.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ParseError turns a gin binding error into the itemized list of violated
// fields. Non-validator errors (malformed JSON, type mismatches) collapse
// into a single entry under "body".
func ParseError(err error) []FieldError {
	if ve, ok := err.(validator.ValidationErrors); ok {
		fields := make([]FieldError, 0, len(ve))
		for _, fe := range ve {
			fields = append(fields, FieldError{
				Path:    strings.ToLower(fe.Field()[:1]) + fe.Field()[1:],
				Message: messageFor(fe),
			})
		}
		return fields
	}
	if err != nil {
		return []FieldError{{Path: "body", Message: err.Error()}}
	}
	return nil
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
}
