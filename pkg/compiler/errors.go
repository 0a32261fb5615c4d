package compiler

import "errors"

var (
	// ErrNoIndustry is returned when an industry directory has no industry document
	ErrNoIndustry = errors.New("no industry document found")
	// ErrMultipleIndustries is returned when an industry directory has more than one industry document
	ErrMultipleIndustries = errors.New("more than one industry document found")
	// ErrSourcesPathRequired is returned when no sources directory is configured
	ErrSourcesPathRequired = errors.New("sources path is required")
	// ErrOutputPathRequired is returned when no output directory is configured
	ErrOutputPathRequired = errors.New("output path is required")
	// ErrInvalidConcurrency is returned when concurrency is not positive
	ErrInvalidConcurrency = errors.New("concurrency must be positive")
	// ErrInvalidUnitBounds is returned when the default outcome bounds are not ordered
	ErrInvalidUnitBounds = errors.New("min units must not exceed max units")
)
