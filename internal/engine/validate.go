package engine

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateStruct checks v against its validate tags and wraps failures as a
// *ValidationError naming subject.
func ValidateStruct(subject string, v any) error {
	if err := validatorInstance().Struct(v); err != nil {
		return &ValidationError{Subject: subject, Err: err}
	}
	return nil
}

// Validate checks a whole aggregate, including every habit and daily entry.
func (a Aggregate) Validate() error {
	return ValidateStruct("aggregate", a)
}
