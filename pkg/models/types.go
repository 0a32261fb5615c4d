// Package models holds the records describing processes and industries, and the
// loading of their YAML documents
package models

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ArgKind identifies what an argument of a formula refers to
type ArgKind string

const (
	// ArgConstants refers to a constant
	ArgConstants ArgKind = "constants"
	// ArgInputs refers to an input of the owning process
	ArgInputs ArgKind = "inputs"
	// ArgOutputs refers to an output, possibly of another process
	ArgOutputs ArgKind = "outputs"
	// ArgDemands refers to a demand computed by the industry
	ArgDemands ArgKind = "demands"
	// ArgMeta refers to a meta-demand
	ArgMeta ArgKind = "meta"
	// ArgOutcome refers to the industry outcome
	ArgOutcome ArgKind = "outcome"
)

// Range is an inclusive [min, max] interval
type Range []float64

// Validate checks that the range has exactly two ordered bounds
func (r Range) Validate() error {
	if len(r) != 2 {
		return fmt.Errorf("%w: expected [min, max], got %v", ErrInvalidRange, []float64(r))
	}
	if r[0] > r[1] {
		return fmt.Errorf("%w: min %v greater than max %v", ErrInvalidRange, r[0], r[1])
	}
	return nil
}

// Contains reports whether v lies within the range, bounds included
func (r Range) Contains(v float64) bool {
	return r[0] <= v && v <= r[len(r)-1]
}

// Values is a list of numbers that also accepts a single scalar in YAML
type Values []float64

// UnmarshalYAML implements yaml.Unmarshaler
func (v *Values) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var single float64
		if err := node.Decode(&single); err != nil {
			return err
		}
		*v = Values{single}
		return nil
	}

	var list []float64
	if err := node.Decode(&list); err != nil {
		return err
	}
	*v = list
	return nil
}

// BaseFields are shared by most records
type BaseFields struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Units       string `yaml:"units"`
}

// Constant is a fixed value of a process
type Constant struct {
	BaseFields `yaml:",inline"`
	Citation   string  `yaml:"citation"`
	Source     string  `yaml:"source"`
	Value      float64 `yaml:"value"`
	Range      Range   `yaml:"range,omitempty"`
}

// Input is a value a process receives, either directly or from another process
type Input struct {
	BaseFields `yaml:",inline"`
	Value      Values `yaml:"value,omitempty"`
	From       string `yaml:"from,omitempty"` // id of the process producing this input
	Range      Range  `yaml:"range,omitempty"`
}

// IsExternal reports whether the input is produced by another process
func (i *Input) IsExternal() bool {
	return i.From != ""
}

// Arg is an argument referenced by a formula
type Arg struct {
	Name string  `yaml:"name"`
	Kind ArgKind `yaml:"type"`
	From string  `yaml:"from,omitempty"` // source process for outputs
}

// Item is the shape shared by outputs, demands and meta-demands
type Item struct {
	BaseFields `yaml:",inline"`
	Args       []Arg     `yaml:"args"`
	Operation  string    `yaml:"operation"`
	Tests      []float64 `yaml:"tests,omitempty"` // golden values
}

// Output is a value computed by a process
type Output struct {
	Item  `yaml:",inline"`
	Value *float64 `yaml:"value,omitempty"`
	Range Range    `yaml:"range,omitempty"`
}

// Demand is a quantity computed by the industry from the outcome and consumed by a process
type Demand struct {
	Item `yaml:",inline"`
	Used string `yaml:"used"`           // id of the consuming process
	Meta string `yaml:"meta,omitempty"` // aggregation tag
}

// IsAggregated reports whether the demand is superseded by a meta-demand
func (d *Demand) IsAggregated() bool {
	return d.Meta != ""
}

// MetaDemand aggregates demands sharing the same meta tag
type MetaDemand struct {
	Item `yaml:",inline"`
}

// Outcome is the driving quantity of an industry
type Outcome struct {
	BaseFields `yaml:",inline"`
	SameResult string    `yaml:"same_result"`
	Range      Range     `yaml:"range,omitempty"`
	Tests      []float64 `yaml:"tests,omitempty"`
}

// UnmarshalYAML accepts the outcome either as a mapping or as a one element list
func (o *Outcome) UnmarshalYAML(node *yaml.Node) error {
	type plain Outcome

	if node.Kind == yaml.SequenceNode {
		if len(node.Content) != 1 {
			return fmt.Errorf("%w: expected exactly one outcome, got %d", ErrInvalidDocument, len(node.Content))
		}
		node = node.Content[0]
	}

	return node.Decode((*plain)(o))
}

// ProcessConfig describes one process
type ProcessConfig struct {
	Name        string     `yaml:"name"`
	ShortName   string     `yaml:"short_name"`
	ID          string     `yaml:"id"`
	Category    string     `yaml:"type"`
	Description string     `yaml:"description"`
	Version     string     `yaml:"version"`
	Debug       bool       `yaml:"debug"`
	Constants   []Constant `yaml:"constants"`
	Inputs      []Input    `yaml:"inputs"`
	Outputs     []Output   `yaml:"outputs"`
}

// IndustryConfig describes the meta-process of an industry
type IndustryConfig struct {
	ProcessConfig `yaml:",inline"`
	Outcome       Outcome      `yaml:"outcome"`
	Demands       []Demand     `yaml:"demands"`
	Meta          []MetaDemand `yaml:"meta,omitempty"`
}
