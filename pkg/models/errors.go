package models

import "errors"

// Model-specific errors
var (
	ErrRangeViolation      = errors.New("value outside of the valid range")
	ErrInvalidRange        = errors.New("invalid range")
	ErrUnknownDocumentType = errors.New("unknown document type")
	ErrInvalidDocument     = errors.New("invalid document")
	ErrMissingOutcome      = errors.New("industry has no outcome")
)
