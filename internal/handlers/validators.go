package handlers

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/kennethjason07/school_management_app/internal/utils/calendar"
)

var registerValidatorsOnce sync.Once

// RegisterValidators adds the custom binding tags used by the request DTOs to
// gin's validator engine. Safe to call more than once.
func RegisterValidators() error {
	var err error
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = fmt.Errorf("gin validator engine is %T, not *validator.Validate", binding.Validator.Engine())
			return
		}
		err = v.RegisterValidation("calendardate", validateCalendarDate)
	})
	return err
}

// validateCalendarDate accepts only a YYYY-MM-DD string naming a real day.
func validateCalendarDate(fl validator.FieldLevel) bool {
	raw, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	_, ok = calendar.Parse(raw)
	return ok
}
