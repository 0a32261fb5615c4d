package industry

import "errors"

var (
	// ErrUnitMismatch is returned when both ends of a cross-process reference disagree on
	// units, or when the referenced output or input does not exist
	ErrUnitMismatch = errors.New("unit mismatch")
	// ErrUnknownProcess is returned when a reference names a process that is not registered
	ErrUnknownProcess = errors.New("unknown process")
	// ErrCyclicDependency is returned when processes depend on each other in a cycle
	ErrCyclicDependency = errors.New("cyclic dependency")
	// ErrMetaNotSet is returned when the industry has no meta-process
	ErrMetaNotSet = errors.New("industry meta is not set")
	// ErrDuplicateProcess is returned when two processes share the same id
	ErrDuplicateProcess = errors.New("duplicate process id")
	// ErrDuplicateName is returned when two items of the same owner share a name
	ErrDuplicateName = errors.New("duplicate item name")
	// ErrOutcomeOutOfRange is returned when the evaluated outcome is outside the allowed bounds
	ErrOutcomeOutOfRange = errors.New("outcome out of range")
	// ErrGoldenMismatch is returned when an evaluated value differs from its golden test value
	ErrGoldenMismatch = errors.New("golden value mismatch")
)
