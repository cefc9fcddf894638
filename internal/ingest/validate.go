package ingest

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var speakerTokenPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

var (
	validate *validator.Validate
	once     sync.Once
)

// getValidator returns the shared validator with the speakertoken tag
// registered and field names taken from json tags.
func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		_ = validate.RegisterValidation("speakertoken", func(fl validator.FieldLevel) bool {
			return speakerTokenPattern.MatchString(fl.Field().String())
		})
	})
	return validate
}

// checkRecord validates a parsed row and renders failures as one message.
func checkRecord(v any) error {
	err := getValidator().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	messages := make([]string, 0, len(verrs))
	for _, e := range verrs {
		messages = append(messages, e.Field()+": "+describe(e))
	}
	return errors.New(strings.Join(messages, "; "))
}

func describe(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "gte":
		return "must be at least " + e.Param()
	case "gtefield":
		return "must not be before " + strings.ToLower(e.Param())
	case "oneof":
		return "must be one of: " + e.Param()
	case "speakertoken":
		return "must contain only letters, digits, '_' or '-'"
	default:
		return "is invalid"
	}
}
