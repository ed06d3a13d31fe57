// Package errors provides structured error handling with i18n support.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Number literal errors
	CodeInvalidFormat Code = "INVALID_FORMAT"

	// Arithmetic errors
	CodeDivisionByZero  Code = "DIVISION_BY_ZERO"
	CodeNegativeOperand Code = "NEGATIVE_OPERAND"
	CodeOverflow        Code = "OVERFLOW"
	CodeInvalidArgument Code = "INVALID_ARGUMENT"

	// Evaluator errors
	CodeParseError      Code = "PARSE_ERROR"
	CodeUnknownOperator Code = "UNKNOWN_OPERATOR"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - malformed input or arithmetic misuse
	case CodeInvalidFormat,
		CodeDivisionByZero,
		CodeNegativeOperand,
		CodeInvalidArgument,
		CodeParseError,
		CodeUnknownOperator:
		return codes.InvalidArgument

	// OutOfRange - value cannot be represented
	case CodeOverflow:
		return codes.OutOfRange

	// NotFound - resource doesn't exist
	case CodeNotFound:
		return codes.NotFound

	default:
		return codes.Internal
	}
}
