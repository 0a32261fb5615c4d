package validation

import "errors"

// Validation-specific errors
var (
	ErrSchemaValidation = errors.New("schema validation failed")
	ErrSchemaNotFound   = errors.New("no schema for document type")
	ErrInvalidSchema    = errors.New("invalid schema")
)
