// Package bind reads a JSON request body into a struct and validates it.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/shashiranjanraj/decorhub/pkg/validate"
)

// DefaultMaxBodyBytes caps request bodies when no limit is configured.
const DefaultMaxBodyBytes int64 = 4 << 20

// MaxBodyBytes is set from configuration at startup.
var MaxBodyBytes = DefaultMaxBodyBytes

var (
	ErrEmptyBody    = errors.New("request body is empty")
	ErrTrailingData = errors.New("request body must contain a single JSON value")
)

// JSON decodes r.Body into dest, then validates it.
//
// A body that cannot be read as one JSON value returns err. A decoded body
// that breaks validation rules returns the field errors and a nil err.
func JSON(r *http.Request, dest any) (map[string]string, error) {
	if err := Decode(r, dest); err != nil {
		return nil, err
	}
	if errs := validate.Struct(dest); validate.HasErrors(errs) {
		return errs, nil
	}
	return nil, nil
}

// Decode reads r.Body into dest without validating it.
func Decode(r *http.Request, dest any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return ErrEmptyBody
	}
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, MaxBodyBytes))

	if err := dec.Decode(dest); err != nil {
		return decodeErr(err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return ErrTrailingData
	}
	return nil
}

func decodeErr(err error) error {
	var tooLarge *http.MaxBytesError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF):
		return ErrEmptyBody
	case errors.As(err, &tooLarge):
		return fmt.Errorf("request body too large (max %d bytes)", tooLarge.Limit)
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return fmt.Errorf("invalid JSON: %s must be a %s", typeErr.Field, typeErr.Type)
	}
	return fmt.Errorf("invalid JSON: %w", err)
}
