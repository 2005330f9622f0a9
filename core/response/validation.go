package response

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate checks a struct, or every element of a slice of structs, against its
// validate tags. It returns a 400 APIError listing the problems, or nil.
func Validate(v any) *APIError {
	var err error
	if k := reflect.ValueOf(v).Kind(); k == reflect.Slice || k == reflect.Array {
		err = validate.Var(v, "dive")
	} else {
		err = validate.Struct(v)
	}
	if err == nil {
		return nil
	}
	if apiErr := FromValidationError(err); apiErr != nil {
		return apiErr
	}
	return New(http.StatusBadRequest, CodeValidation, err.Error())
}

// FromValidationError converts validator errors into a 400 APIError keyed by field
// path. It returns nil for any other error.
func FromValidationError(err error) *APIError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}

	out := New(http.StatusBadRequest, CodeValidation, "Request validation failed")
	for _, fe := range ve {
		field := fieldPath(fe.Namespace())

		switch fe.Tag() {
		case "required":
			out.Add(field, "This field is required")
		case "min", "gte":
			out.Add(field, "Value is too small, min: "+fe.Param())
		case "max", "lte":
			out.Add(field, "Value is too large, max: "+fe.Param())
		case "oneof":
			out.Add(field, "Value must be one of: "+fe.Param())
		default:
			out.Add(field, "Invalid value provided")
		}
	}
	return out
}

// fieldPath drops the root struct name from a namespace ("Req.items[0].name" -> "items[0].name").
func fieldPath(ns string) string {
	if strings.HasPrefix(ns, "[") {
		return ns
	}
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
