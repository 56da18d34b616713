package helper

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// ValidationErrors mengubah validator.ValidationErrors → map field → []pesan,
// siap untuk JsonValidationError. Nama field mengikuti tag json.
func ValidationErrors(err error) map[string][]string {
	out := map[string][]string{}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		out["_"] = []string{err.Error()}
		return out
	}
	for _, fieldErr := range ve {
		msg := fieldErr.Tag()
		if p := fieldErr.Param(); p != "" {
			msg += "=" + p
		}
		out[fieldErr.Field()] = append(out[fieldErr.Field()], msg)
	}
	return out
}
