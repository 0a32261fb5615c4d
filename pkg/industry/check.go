package industry

import (
	"fmt"

	"github.com/idesignres/iisim/pkg/expression"
	"github.com/idesignres/iisim/pkg/models"
)

// CheckTypes verifies that every cross-process reference points to an existing value
// with the same units
func (i *Industry) CheckTypes() error {
	if i.meta == nil {
		return ErrMetaNotSet
	}

	if err := i.checkInputs(i.meta.name, i.meta.inputOrder); err != nil {
		return err
	}

	for _, id := range i.order {
		p := i.processes[id]
		if err := i.checkInputs(p.name, p.inputOrder); err != nil {
			return err
		}
	}

	for _, d := range i.meta.demands {
		p, ok := i.processes[d.used]
		if !ok {
			return fmt.Errorf("%w: %w: demand '%s' is used by '%s' which does not exist",
				ErrUnitMismatch, ErrUnknownProcess, d.Name, d.used)
		}

		input, ok := p.inputs[d.Name]
		if !ok {
			return fmt.Errorf("%w: '%s' does not exist in '%s' required by '%s'",
				ErrUnitMismatch, d.Name, p.name, i.meta.name)
		}

		if d.Units != input.Units {
			return fmt.Errorf("%w: unit for '%s' differs in '%s' (%s) and '%s' (%s)",
				ErrUnitMismatch, d.Name, i.meta.name, d.Units, p.name, input.Units)
		}
	}

	for _, id := range i.order {
		if err := i.checkBound(id); err != nil {
			return err
		}
	}

	i.log.WithField("processes", len(i.order)).Debug("Checked units")

	return nil
}

func (i *Industry) checkInputs(owner string, inputs []models.Input) error {
	for _, input := range inputs {
		if !input.IsExternal() {
			continue
		}

		source, ok := i.processes[input.From]
		if !ok {
			return fmt.Errorf("%w: %w: '%s' in '%s' comes from '%s' which does not exist",
				ErrUnitMismatch, ErrUnknownProcess, input.Name, owner, input.From)
		}

		output, ok := source.outputs[input.Name]
		if !ok {
			return fmt.Errorf("%w: '%s' does not exist in '%s' required by '%s'",
				ErrUnitMismatch, input.Name, source.name, owner)
		}

		if output.Units != input.Units {
			return fmt.Errorf("%w: unit for '%s' differs in '%s' (%s) and '%s' (%s)",
				ErrUnitMismatch, input.Name, owner, input.Units, source.name, output.Units)
		}
	}

	return nil
}

// checkBound verifies that every argument of the generated method of a process gets a
// value, from another process, a meta demand or its declared value
func (i *Industry) checkBound(id string) error {
	p := i.processes[id]
	demands := i.meta.DemandsFor(id)

	for _, name := range p.MethodArgs() {
		input := p.inputs[name]
		if input.IsExternal() || len(input.Value) > 0 {
			continue
		}
		if _, ok := demands[name]; ok {
			continue
		}

		return fmt.Errorf("%w: input '%s' of '%s' has no source process, demand or value",
			expression.ErrUnboundReference, name, p.name)
	}

	return nil
}
