package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/dharmawipraja/accounting-api-sub000/internal/core/domain"
)

// RegisterCustomValidators installs the request-binding validators used by
// the ledger intake DTOs.
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("movementtype", validateMovementType)
	}
}

func validateMovementType(fl validator.FieldLevel) bool {
	mt := domain.MovementType(fl.Field().String())
	return mt == domain.Debit || mt == domain.Credit
}
