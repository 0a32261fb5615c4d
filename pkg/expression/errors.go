package expression

import "errors"

var (
	// ErrParse is returned when a formula is not valid arithmetic
	ErrParse = errors.New("parse error")
	// ErrUnboundReference is returned when a formula uses a name that has no bound value
	ErrUnboundReference = errors.New("unbound reference")
	// ErrDivisionByZero is returned when evaluation divides by zero
	ErrDivisionByZero = errors.New("division by zero")
)
