package config

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
	errValidate  error
)

// getValidator 回傳共用的 validator 實例（含 positive_decimal 自訂規則）。
func getValidator() (*validator.Validate, error) {
	validateOnce.Do(func() {
		validate, errValidate = newValidator()
	})
	return validate, errValidate
}

func newValidator() (*validator.Validate, error) {
	vld := validator.New(validator.WithRequiredStructEnabled())

	// decimal.Decimal 不註冊 custom type func，直接在規則內取值
	if err := vld.RegisterValidation("positive_decimal", func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(decimal.Decimal)
		if !ok {
			return false
		}
		return value.IsPositive()
	}); err != nil {
		return nil, fmt.Errorf("register positive_decimal: %w", err)
	}
	return vld, nil
}
