package helper

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validate: satu instance validator (cache struct aman dipakai bersama).
// Nama field di error memakai tag json / query.
var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
	return v
}
