// Package validator adapts the use case input validation to echo.Validator.
package validator

import "pharmanet/internal/usecase"

// Validator validates bound request bodies.
type Validator struct{}

// New creates a Validator.
func New() *Validator {
	return &Validator{}
}

// Validate reports tag violations as ErrValidationFailed listing each field.
func (v *Validator) Validate(i any) error {
	return usecase.ValidateInput(i)
}
