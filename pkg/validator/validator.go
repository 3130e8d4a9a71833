package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

// Instance returns the shared validator. Field names in errors follow the
// json tag so they match what clients send.
func Instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// ValidateStruct runs the `validate` tags of s.
func ValidateStruct(s interface{}) error {
	return Instance().Struct(s)
}

// ParseError flattens validation failures into a field -> message map.
func ParseError(err error) map[string]string {
	fields := make(map[string]string)
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			field := fe.Field()
			if field == "" {
				field = fe.StructField()
			}
			fields[field] = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", field, fe.Tag())
		}
	} else if err != nil { // Non-validator errors
		fields["error"] = err.Error()
	}
	return fields
}
