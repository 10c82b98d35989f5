package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/nikicasio/traffic-alert-app/pkg/e"
)

var validate *validator.Validate

var alertTypes = map[string]struct{}{
	"police":       {},
	"roadwork":     {},
	"obstacle":     {},
	"accident":     {},
	"fire":         {},
	"traffic":      {},
	"blocked_road": {},
}

var confirmationTypes = map[string]struct{}{
	"confirmed": {},
	"dismissed": {},
	"not_there": {},
}

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(f.Tag.Get("query"), ",", 2)[0]
		}
		return name
	})
	validate.RegisterValidation("lat", func(fl validator.FieldLevel) bool {
		lat := fl.Field().Float()
		return lat >= -90 && lat <= 90
	})
	validate.RegisterValidation("lng", func(fl validator.FieldLevel) bool {
		lng := fl.Field().Float()
		return lng >= -180 && lng <= 180
	})
	validate.RegisterValidation("alert_type", func(fl validator.FieldLevel) bool {
		_, ok := alertTypes[fl.Field().String()]
		return ok
	})
	validate.RegisterValidation("confirmation_type", func(fl validator.FieldLevel) bool {
		_, ok := confirmationTypes[fl.Field().String()]
		return ok
	})
}

// ValidateStruct returns a *e.ValidationError with one message per failed field.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return e.Wrap("validator.ValidateStruct", err)
	}

	out := &e.ValidationError{}
	for _, fe := range verrs {
		out.Add(fe.Field(), message(fe))
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "lat":
		return "must be between -90 and 90"
	case "lng":
		return "must be between -180 and 180"
	case "alert_type":
		return "must be one of police, roadwork, obstacle, accident, fire, traffic, blocked_road"
	case "confirmation_type":
		return "must be one of confirmed, dismissed, not_there"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	default:
		return fmt.Sprintf("failed on %s", fe.Tag())
	}
}
