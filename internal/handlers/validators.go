package handlers

import (
	"reflect"
	"sync"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var registerOnce sync.Once

// RegisterValidators teaches gin's validator about decimal amounts and the yyyymm period tag.
// It is safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		// Decimals are validated through their exact string form.
		v.RegisterCustomTypeFunc(decimalString, decimal.Decimal{})
		_ = v.RegisterValidation("dgte0", decimalSign(func(sign int) bool { return sign >= 0 }))
		_ = v.RegisterValidation("dgt0", decimalSign(func(sign int) bool { return sign > 0 }))
		_ = v.RegisterValidation("yyyymm", func(fl validator.FieldLevel) bool {
			return domain.ValidPeriod(fl.Field().String())
		})
	})
}

func decimalString(field reflect.Value) interface{} {
	d, ok := field.Interface().(decimal.Decimal)
	if !ok {
		return nil
	}
	return d.String()
}

func decimalSign(accept func(sign int) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return false
		}
		return accept(d.Sign())
	}
}
