package recordbuilder

import (
	"errors"
	"fmt"
)

// ErrContractViolation marks raw input the builder must never be handed
var ErrContractViolation = errors.New("contract violation")

type MissingFieldError struct {
	Index int
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("raw record %d: missing required field %q", e.Index, e.Field)
}

func (e *MissingFieldError) Unwrap() error {
	return ErrContractViolation
}
