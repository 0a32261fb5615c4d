package models

import "fmt"

// Validate checks the range invariants of every constant, input and output of the process
func (c *ProcessConfig) Validate() error {
	for i := range c.Constants {
		if err := c.Constants[i].validate(c.Name); err != nil {
			return err
		}
	}

	for i := range c.Inputs {
		if err := c.Inputs[i].validate(c.Name); err != nil {
			return err
		}
	}

	for i := range c.Outputs {
		if err := c.Outputs[i].validate(c.Name); err != nil {
			return err
		}
	}

	return nil
}

// Validate checks the process invariants plus the outcome range
func (c *IndustryConfig) Validate() error {
	if err := c.ProcessConfig.Validate(); err != nil {
		return err
	}

	if c.Outcome.Name == "" {
		return fmt.Errorf("%w: '%s'", ErrMissingOutcome, c.Name)
	}

	if c.Outcome.Range != nil {
		if err := c.Outcome.Range.Validate(); err != nil {
			return fmt.Errorf("outcome '%s' in industry '%s': %w", c.Outcome.Name, c.Name, err)
		}
	}

	return nil
}

func (c *Constant) validate(owner string) error {
	if c.Range == nil {
		return nil
	}
	if err := c.Range.Validate(); err != nil {
		return fmt.Errorf("constant '%s' in process '%s': %w", c.Name, owner, err)
	}
	if !c.Range.Contains(c.Value) {
		return fmt.Errorf("%w: constant '%s' in process '%s' (%v not inside %v)",
			ErrRangeViolation, c.Name, owner, c.Value, []float64(c.Range))
	}
	return nil
}

func (i *Input) validate(owner string) error {
	if i.Range == nil {
		return nil
	}
	if err := i.Range.Validate(); err != nil {
		return fmt.Errorf("input '%s' in process '%s': %w", i.Name, owner, err)
	}
	for _, v := range i.Value {
		if !i.Range.Contains(v) {
			return fmt.Errorf("%w: input '%s' in process '%s' (%v not inside %v)",
				ErrRangeViolation, i.Name, owner, []float64(i.Value), []float64(i.Range))
		}
	}
	return nil
}

func (o *Output) validate(owner string) error {
	if o.Range == nil {
		return nil
	}
	if err := o.Range.Validate(); err != nil {
		return fmt.Errorf("output '%s' in process '%s': %w", o.Name, owner, err)
	}
	if o.Value != nil && !o.Range.Contains(*o.Value) {
		return fmt.Errorf("%w: output '%s' in process '%s' (%v not inside %v)",
			ErrRangeViolation, o.Name, owner, *o.Value, []float64(o.Range))
	}
	return nil
}
