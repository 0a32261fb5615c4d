// Package testutil provides test utilities for iisim, including:
//   - Industry document fixtures written to temporary directories (fixtures.go)
//   - Miniredis helpers for unit tests (miniredis.go)
package testutil
