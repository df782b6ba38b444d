package checkout

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/nounthanith/localbrand-frontend/internal/domain/order"
)

// phonePattern accepts an optional leading '+' then digits, spaces and
// dashes.
var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 \-]{5,19}$`)

// RegisterFormRules adds the "phone" and "province" tags used by
// order.ShippingAddress and reports fields by their json name.
func RegisterFormRules(v *validator.Validate) error {
	v.RegisterTagNameFunc(jsonTagName)
	if err := v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("province", func(fl validator.FieldLevel) bool {
		return order.IsValidProvince(fl.Field().String())
	})
}

// NewFormValidator returns a validator with the checkout form rules
func NewFormValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := RegisterFormRules(v); err != nil {
		panic(err)
	}
	return v
}

func jsonTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}
