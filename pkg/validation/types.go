package validation

import (
	"github.com/idesignres/iisim/pkg/models"
)

// Result contains the result of validating one document
type Result struct {
	Path   string
	Kind   models.Kind
	Errors []error // one entry per schema violation
}

// Valid reports whether the document satisfied its schema
func (r Result) Valid() bool {
	return len(r.Errors) == 0
}
