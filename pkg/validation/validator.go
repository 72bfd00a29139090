package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	instance *validator.Validate
	once     sync.Once

	slugPattern = regexp.MustCompile(`^[^A-Z\s]+$`)
)

// Validator returns the shared validator. Field names in errors follow the
// json tags so messages match the request payload.
func Validator() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
		_ = Register(instance)
	})
	return instance
}

// Register installs the shared settings on another validator instance,
// e.g. the one gin uses for binding.
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(jsonFieldName)
	return v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
}

func jsonFieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form", "uri"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// Struct validates s and returns its field messages, nil when valid.
func Struct(s interface{}) []string {
	return Messages(Validator().Struct(s))
}

// Messages flattens a validator error into one message per failed field.
// Errors of any other type yield their own text.
func Messages(err error) []string {
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(fieldErrors))
	for _, e := range fieldErrors {
		tag := e.Tag()
		// min/max on numbers are bounds, not lengths
		if e.Kind() != reflect.String {
			switch tag {
			case "min":
				tag = "gte"
			case "max":
				tag = "lte"
			}
		}
		messages = append(messages, DefaultMessage(e.Field(), tag, e.Param()))
	}
	return messages
}
