package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Input shape errors
	ErrInvalidInput = errors.New("invalid input")
	ErrMixedColumn  = fmt.Errorf("%w: column mixes numeric and categorical values", ErrInvalidInput)
	ErrEmptyTable   = fmt.Errorf("%w: table has no rows", ErrInvalidInput)

	// Outcome errors
	ErrInvalidOutcome = errors.New("invalid outcome column")

	// Binning errors
	ErrMalformedRule = errors.New("malformed interval rule")
	ErrBinAssignment = errors.New("observation cannot be assigned to a fitted bin")

	// Non-fatal warning sentinel; surfaced alongside results, never aborts
	ErrDegenerateBin = errors.New("degenerate bin")

	// Lookup errors
	ErrVariableNotFound = errors.New("variable not found in table")
)

// Error constructors with context

func NewInvalidOutcomeError(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidOutcome, reason)
}

func NewMalformedRuleError(leaf LeafID) error {
	return fmt.Errorf("%w: leaf %s has no numeric conjuncts", ErrMalformedRule, leaf)
}

func NewBinAssignmentError(variable VariableKey, row int) error {
	return fmt.Errorf("%w: variable %s, row %d", ErrBinAssignment, variable, row)
}

func NewVariableError(variable VariableKey, err error) error {
	return fmt.Errorf("variable %s: %w", variable, err)
}

// Error checking helpers

func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

func IsInvalidOutcome(err error) bool {
	return errors.Is(err, ErrInvalidOutcome)
}

func IsBinningError(err error) bool {
	return errors.Is(err, ErrMalformedRule) || errors.Is(err, ErrBinAssignment)
}
