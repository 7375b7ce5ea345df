package validator

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type ErrorResponse struct {
	FailedField string `json:"field"`
	Tag         string `json:"tag"`
	Value       string `json:"param,omitempty"`
}

var (
	validate = validator.New()
	hhmm     = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)
)

// Weekdays accepted by the "weekday" tag. all_week marks a rule active every day.
var Weekdays = []string{
	"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "all_week",
}

func init() {
	// Report JSON field names instead of Go field names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	validate.RegisterValidation("uuid_required", func(fl validator.FieldLevel) bool {
		if id, ok := fl.Field().Interface().(uuid.UUID); ok {
			return id != uuid.Nil
		}
		return false
	})

	// HH:mm, 24h clock.
	validate.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return hhmm.MatchString(fl.Field().String())
	})

	validate.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		v := fl.Field().String()
		for _, d := range Weekdays {
			if v == d {
				return true
			}
		}
		return false
	})
}

func ValidateStruct(data interface{}) []*ErrorResponse {
	var errors []*ErrorResponse
	err := validate.Struct(data)
	if err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return []*ErrorResponse{{FailedField: "body", Tag: "invalid"}}
		}
		for _, err := range verrs {
			errors = append(errors, &ErrorResponse{
				FailedField: err.Field(),
				Tag:         err.Tag(),
				Value:       err.Param(),
			})
		}
	}
	return errors
}

// Fields flattens validation errors into field -> failed tag.
func Fields(errs []*ErrorResponse) map[string]string {
	out := make(map[string]string, len(errs))
	for _, e := range errs {
		if e.Value != "" {
			out[e.FailedField] = e.Tag + "=" + e.Value
			continue
		}
		out[e.FailedField] = e.Tag
	}
	return out
}
