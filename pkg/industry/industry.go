package industry

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultMinUnits is the lowest accepted outcome when the outcome has no range
	DefaultMinUnits = 5.0
	// DefaultMaxUnits is the highest accepted outcome when the outcome has no range
	DefaultMaxUnits = 1000.0
)

// Industry aggregates a meta-process and its processes
type Industry struct {
	log logrus.FieldLogger

	meta         *Meta
	processes    map[string]*Process
	order        []string
	dependencies map[string][]string

	minUnits float64
	maxUnits float64
}

// Option configures an Industry
type Option func(*Industry)

// WithLogger sets the logger used by the industry
func WithLogger(log logrus.FieldLogger) Option {
	return func(i *Industry) {
		i.log = log
	}
}

// WithUnitBounds sets the outcome bounds used when the outcome has no range
func WithUnitBounds(minUnits, maxUnits float64) Option {
	return func(i *Industry) {
		i.minUnits = minUnits
		i.maxUnits = maxUnits
	}
}

// New creates an empty industry
func New(opts ...Option) *Industry {
	i := &Industry{
		log:          logrus.StandardLogger(),
		processes:    make(map[string]*Process),
		dependencies: make(map[string][]string),
		minUnits:     DefaultMinUnits,
		maxUnits:     DefaultMaxUnits,
	}

	for _, opt := range opts {
		opt(i)
	}

	i.log = i.log.WithField("component", "industry")

	return i
}

// AddProcess registers a process under id
func (i *Industry) AddProcess(id string, process *Process) error {
	if _, exists := i.processes[id]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateProcess, id)
	}

	i.processes[id] = process
	i.order = append(i.order, id)

	if deps := process.Dependencies(); len(deps) > 0 {
		i.dependencies[id] = deps
	}

	i.log.WithFields(logrus.Fields{
		"process":      id,
		"dependencies": len(i.dependencies[id]),
	}).Debug("Added process")

	return nil
}

// SetMeta sets the meta-process of the industry
func (i *Industry) SetMeta(meta *Meta) {
	i.meta = meta
}

// Meta returns the meta-process, nil until set
func (i *Industry) Meta() *Meta {
	return i.meta
}

// Process returns the process registered under id
func (i *Industry) Process(id string) (*Process, bool) {
	p, ok := i.processes[id]
	return p, ok
}

// ProcessIDs returns the registered process ids in insertion order
func (i *Industry) ProcessIDs() []string {
	return append([]string(nil), i.order...)
}

// Dependencies returns the ids of the processes id takes inputs from
func (i *Industry) Dependencies(id string) []string {
	return append([]string(nil), i.dependencies[id]...)
}

// UnitBounds returns the accepted outcome interval
func (i *Industry) UnitBounds() (minUnits, maxUnits float64) {
	if i.meta != nil {
		if r := i.meta.outcome.Range; len(r) == 2 {
			return r[0], r[1]
		}
	}
	return i.minUnits, i.maxUnits
}
