package validation

import (
	"sync"

	"github.com/idesignres/iisim/pkg/models"
)

// MockValidator is a mock implementation of Validator for testing
type MockValidator struct {
	mu sync.Mutex

	// Control behavior
	ValidateFunc func(doc *models.Document) (Result, error)

	// Track calls for assertions
	ValidateCalls []string
}

// NewMockValidator creates a new mock validator
func NewMockValidator() *MockValidator {
	return &MockValidator{
		ValidateCalls: make([]string, 0),
	}
}

// Validate implements Validator
func (m *MockValidator) Validate(doc *models.Document) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ValidateCalls = append(m.ValidateCalls, doc.Path)

	if m.ValidateFunc != nil {
		return m.ValidateFunc(doc)
	}

	return Result{Path: doc.Path}, nil
}

// Reset clears all recorded calls
func (m *MockValidator) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ValidateCalls = make([]string, 0)
}

// GetValidateCallCount returns the number of Validate calls
func (m *MockValidator) GetValidateCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.ValidateCalls)
}

// Ensure mock implements the interface
var _ Validator = (*MockValidator)(nil)
