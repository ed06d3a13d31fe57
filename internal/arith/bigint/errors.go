package bigint

import apperrors "github.com/louisbranch/bignumbers/internal/platform/errors"

var (
	// ErrInvalidFormat indicates a malformed integer literal.
	ErrInvalidFormat = apperrors.New(apperrors.CodeInvalidFormat, "invalid number format")
	// ErrDivisionByZero indicates a division or remainder by zero.
	ErrDivisionByZero = apperrors.New(apperrors.CodeDivisionByZero, "zero division")
	// ErrNegativeOperand indicates a square root of a negative value.
	ErrNegativeOperand = apperrors.New(apperrors.CodeNegativeOperand, "negative number")
	// ErrOverflow indicates a magnitude outside the float64 range.
	ErrOverflow = apperrors.New(apperrors.CodeOverflow, "number overflows float64")
)
