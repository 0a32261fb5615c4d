// Package validation checks raw industry and process documents against the structural
// schema of their type
package validation

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/idesignres/iisim/pkg/models"
	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

//go:embed schemas/*.json
var schemaFS embed.FS

var schemaFiles = map[models.Kind]string{
	models.KindIndustry: "schemas/industry.json",
	models.KindProcess:  "schemas/process.json",
}

// Validator defines the interface for document validation
type Validator interface {
	// Validate checks a document against the schema of its type. A document that
	// violates the schema returns a Result listing every violation and an error
	// wrapping ErrSchemaValidation.
	Validate(doc *models.Document) (Result, error)
}

// schemaValidator implements the Validator interface with OpenAPI schemas
type schemaValidator struct {
	log     logrus.FieldLogger
	schemas map[models.Kind]*openapi3.Schema
}

// NewSchemaValidator creates a validator using the embedded schemas
func NewSchemaValidator(log logrus.FieldLogger) (Validator, error) {
	v := &schemaValidator{
		log:     log.WithField("service", "validator"),
		schemas: make(map[models.Kind]*openapi3.Schema, len(schemaFiles)),
	}

	for kind, file := range schemaFiles {
		data, err := schemaFS.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidSchema, file, err)
		}

		schema := &openapi3.Schema{}
		if err := json.Unmarshal(data, schema); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidSchema, file, err)
		}

		v.schemas[kind] = schema
	}

	return v, nil
}

// Validate checks a document against the schema of its type
func (v *schemaValidator) Validate(doc *models.Document) (Result, error) {
	result := Result{Path: doc.Path}

	kind, err := doc.Kind()
	if err != nil {
		return result, err
	}
	result.Kind = kind

	schema, ok := v.schemas[kind]
	if !ok {
		return result, fmt.Errorf("%w: %s", ErrSchemaNotFound, kind)
	}

	value, err := normalize(doc.Raw)
	if err != nil {
		return result, fmt.Errorf("%w: %s: %w", ErrSchemaValidation, doc.Path, err)
	}

	if err := schema.VisitJSON(value, openapi3.MultiErrors()); err != nil {
		var multi openapi3.MultiError
		if errors.As(err, &multi) {
			result.Errors = append(result.Errors, multi...)
		} else {
			result.Errors = append(result.Errors, err)
		}

		v.log.WithFields(logrus.Fields{
			"path":       doc.Path,
			"violations": len(result.Errors),
		}).Debug("Document failed schema validation")

		return result, fmt.Errorf("%w: %s: %w", ErrSchemaValidation, doc.Path, multierr.Combine(result.Errors...))
	}

	return result, nil
}

// normalize converts a YAML decoded value into the JSON value types the schema expects
func normalize(raw map[string]interface{}) (interface{}, error) {
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}

	var value interface{}
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, err
	}

	return value, nil
}
