package validator

import (
	"github.com/go-playground/validator/v10"
)

// registerCustomRules adds domain validation tags.
func registerCustomRules(v *validator.Validate) {
	// mis: institute registration number, digits only.
	v.RegisterValidation("mis", func(fl validator.FieldLevel) bool {
		mis := fl.Field().String()
		if len(mis) < 6 || len(mis) > 12 {
			return false
		}
		for _, r := range mis {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	})
}
