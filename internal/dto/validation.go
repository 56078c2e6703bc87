package dto

import (
	"github.com/SscSPs/multicurrency_ledger/internal/core/domain"
	"github.com/go-playground/validator/v10"
)

// RegisterValidations adds the custom binding tags used by request DTOs.
func RegisterValidations(v *validator.Validate) error {
	return v.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
		return domain.IsSupportedCurrency(fl.Field().String())
	})
}
