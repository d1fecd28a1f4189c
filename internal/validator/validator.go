// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("ledger_currency", validateLedgerCurrency)
		_ = v.RegisterValidation("transaction_type", validateTransactionType)
	}
}

// validateLedgerCurrency accepts the two currencies a ledger entry can
// be denominated in.
func validateLedgerCurrency(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "USD", "BS":
		return true
	}
	return false
}

func validateTransactionType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "in", "out":
		return true
	}
	return false
}
