package utils

import (
	"reflect"
	"slices"
	"strings"
	"time"
	"vetcare-service/internal/pkg/constvars"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	validate.RegisterValidation("clock", validateClock)
	validate.RegisterValidation("weekday", validateWeekday)
	validate.RegisterValidation("slot_duration", validateSlotDuration)
	validate.RegisterValidation("iso_date", validateISODate)
	validate.RegisterValidation("slot_time", validateSlotTime)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateClock(fl validator.FieldLevel) bool {
	_, ok := ParseClock(fl.Field().String())
	return ok
}

func validateWeekday(fl validator.FieldLevel) bool {
	_, ok := ParseWeekday(fl.Field().String())
	return ok
}

func validateSlotDuration(fl validator.FieldLevel) bool {
	return slices.Contains(constvars.AllowedSlotDurations, int(fl.Field().Int()))
}

func validateISODate(fl validator.FieldLevel) bool {
	_, err := time.Parse(constvars.ISODateLayout, fl.Field().String())
	return err == nil
}

func validateSlotTime(fl validator.FieldLevel) bool {
	_, ok := ParseTimeLabel(fl.Field().String())
	return ok
}

// ParseWeekday resolves a case-insensitive weekday name to its canonical form.
func ParseWeekday(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, day := range constvars.Weekdays {
		if strings.EqualFold(day, s) {
			return day, true
		}
	}
	return "", false
}
