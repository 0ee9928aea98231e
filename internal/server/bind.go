package server

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
)

// newValidator configures a validator that reports fields by their JSON
// names, so error messages match the request wire format.
func newValidator() *validatorv10.Validate {
	v := validatorv10.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// bindAndValidate decodes the JSON body into out and validates it. On
// failure it writes the 400 response and returns false so the handler
// can short-circuit before touching the data layer.
func bindAndValidate(c *gin.Context, out any, v *validatorv10.Validate) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		errorJSON(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return false
	}

	if err := v.Struct(out); err != nil {
		errorJSON(c, http.StatusBadRequest, validationMessage(err), "")
		return false
	}
	return true
}

// validationMessage renders the first field error in the wording
// existing clients already depend on.
func validationMessage(err error) string {
	fieldErrors, ok := err.(validatorv10.ValidationErrors)
	if !ok || len(fieldErrors) == 0 {
		return err.Error()
	}

	fe := fieldErrors[0]
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "datetime":
		return fe.Field() + " must be an ISO-8601 date (YYYY-MM-DD)"
	default:
		return fe.Field() + " is invalid"
	}
}

// errorJSON writes the uniform error body {error, details?}.
func errorJSON(c *gin.Context, status int, message, details string) {
	body := gin.H{"error": message}
	if details != "" {
		body["details"] = details
	}
	c.AbortWithStatusJSON(status, body)
}
