package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	MaxBodyBytes    = 1 << 20
	MaxRefreshToken = 2048
)

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeBody reads a JSON body into dst and runs the validator on it. The
// returned message is client-facing.
func decodeBody(w http.ResponseWriter, r *http.Request, v *validator.Validate, dst interface{}) (string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return "Invalid request body", false
	}
	if err := v.Struct(dst); err != nil {
		return validationMessage(err), false
	}
	return "", true
}

func validationMessage(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return "Invalid request"
	}
	fe := errs[0]
	switch fe.Tag() {
	case "required":
		return "All fields are required"
	case "email":
		return "Invalid email"
	case "uuid4", "uuid":
		return fmt.Sprintf("Invalid %s", fe.Field())
	case "max":
		return fmt.Sprintf("%s is too long", fe.Field())
	case "min":
		return fmt.Sprintf("%s is too short", fe.Field())
	default:
		return fmt.Sprintf("Invalid %s", fe.Field())
	}
}

// oversizedToken reports whether a cookie value is too long to be one of our
// refresh tokens.
func oversizedToken(tok string) bool {
	return len(tok) > MaxRefreshToken
}
