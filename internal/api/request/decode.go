package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalid wraps every decoding and validation failure
var ErrInvalid = errors.New("invalid request")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Decode reads a JSON body into dst and validates it. An empty body decodes
// to the zero value before validation.
func Decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: malformed body", ErrInvalid)
	}
	return Validate(dst)
}

// Validate checks dst against its validate tags
func Validate(dst any) error {
	err := validate.Struct(dst)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "min", "max", "len":
		return fmt.Sprintf("%s fails %s=%s", field, fe.Tag(), fe.Param())
	case "alpha":
		return field + " must contain only letters"
	case "alphanum":
		return field + " must contain only letters and digits"
	default:
		return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
	}
}
