package middleware

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/lams-capstone/lams-admin/internal/pkg/apperrors"
)

const validatedBodyKey = "validatedBody"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// ValidateJSON binds the JSON body into a fresh T, validates it and stores it
// in the context for ValidatedBody.
func ValidateJSON[T any]() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body T
		if err := c.ShouldBindJSON(&body); err != nil {
			AbortWithAPIError(c, apperrors.NewBadRequestError("Invalid request format"))
			return
		}

		if err := validate.Struct(&body); err != nil {
			var fieldErrs validator.ValidationErrors
			if !errors.As(err, &fieldErrs) {
				AbortWithAPIError(c, apperrors.NewBadRequestError("Invalid request format"))
				return
			}
			msgs := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, formatValidationError(fe))
			}
			AbortWithAPIError(c, apperrors.NewValidationError(msgs))
			return
		}

		c.Set(validatedBodyKey, &body)
		c.Next()
	}
}

// ValidatedBody returns the body stored by ValidateJSON
func ValidatedBody[T any](c *gin.Context) (*T, bool) {
	value, exists := c.Get(validatedBodyKey)
	if !exists {
		return nil, false
	}
	body, ok := value.(*T)
	return body, ok
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	field := e.Field()
	if field != "" {
		field = strings.ToUpper(field[:1]) + field[1:]
	}

	switch e.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return field + " must be at least " + e.Param()
	case "max":
		return field + " must be at most " + e.Param() + " characters"
	case "len":
		return field + " must be exactly " + e.Param() + " characters"
	case "numeric":
		return field + " must contain only digits"
	case "oneof":
		return field + " must be one of: " + e.Param()
	default:
		return field + " validation failed: " + e.Tag()
	}
}
