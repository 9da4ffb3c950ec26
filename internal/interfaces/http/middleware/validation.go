package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// validationMessages maps a validator tag to its message. %s is the tag parameter.
var validationMessages = map[string]string{
	"required": "This field is required",
	"email":    "Invalid email format",
	"uuid":     "Invalid UUID format",
	"url":      "Invalid URL format",
	"slug":     "Only lowercase letters, digits, hyphens and underscores are allowed",
	"oneof":    "Must be one of: %s",
	"gte":      "Must be greater than or equal to %s",
	"lte":      "Must be less than or equal to %s",
	"gt":       "Must be greater than %s",
	"lt":       "Must be less than %s",
	"numeric":  "Must be numeric",
}

// lengthMessages apply instead when the field is a string
var lengthMessages = map[string][2]string{
	"min": {"Must be at least %s", "Must be at least %s characters"},
	"max": {"Must be at most %s", "Must be at most %s characters"},
	"len": {"Must have exactly %s items", "Must be exactly %s characters"},
}

// SetupValidator makes gin's validator report JSON field names and registers
// the slug tag
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(fieldName)
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return catalog.IsValidSlug(fl.Field().String())
	})
}

func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form", "uri"} {
		name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return ""
}

// FormatValidationErrors builds the VALIDATION_ERROR envelope. Errors that are not
// field errors, such as malformed JSON, produce no details.
func FormatValidationErrors(err error, requestID string) dto.Response {
	var details []dto.ValidationDetail
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		details = make([]dto.ValidationDetail, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			details = append(details, dto.ValidationDetail{Field: fe.Field(), Message: validationMessage(fe)})
		}
	}
	return dto.NewValidationErrorResponse("Request validation failed", requestID, details)
}

// HandleValidationError writes a 400 validation response
func HandleValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, FormatValidationErrors(err, c.GetString(RequestIDKey)))
}

func validationMessage(fe validator.FieldError) string {
	if pair, ok := lengthMessages[fe.Tag()]; ok {
		format := pair[0]
		if fe.Kind() == reflect.String {
			format = pair[1]
		}
		return strings.Replace(format, "%s", fe.Param(), 1)
	}
	if msg, ok := validationMessages[fe.Tag()]; ok {
		return strings.Replace(msg, "%s", fe.Param(), 1)
	}
	return "Invalid value"
}
