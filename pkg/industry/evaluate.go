package industry

import (
	"fmt"
	"math"

	"github.com/idesignres/iisim/pkg/expression"
	"go.uber.org/multierr"
)

// goldenTolerance absorbs the float noise left after rounding to two decimals
const goldenTolerance = 1e-9

// Values maps every computed name to its value
type Values map[string]float64

// Evaluate computes every value of the industry for the given outcome, in the order the
// generated constructor runs them
func (i *Industry) Evaluate(outcome float64) (Values, error) {
	if i.meta == nil {
		return nil, ErrMetaNotSet
	}

	minUnits, maxUnits := i.UnitBounds()
	if outcome < minUnits || outcome > maxUnits {
		return nil, fmt.Errorf("%w: %s should be a value between %s and %s, got %s",
			ErrOutcomeOutOfRange, i.meta.outcome.Name, expression.FormatNumber(minUnits),
			expression.FormatNumber(maxUnits), expression.FormatNumber(outcome))
	}

	queue, err := i.ExecutionQueue()
	if err != nil {
		return nil, err
	}

	values := make(Values)
	for _, constant := range i.meta.constants {
		values[constant.Name] = constant.Value
	}
	for _, id := range queue {
		for _, constant := range i.processes[id].constants {
			values[constant.Name] = constant.Value
		}
	}
	values[i.meta.outcome.Name] = outcome

	for _, id := range queue {
		p := i.processes[id]

		for _, d := range i.meta.demands {
			if d.used != id {
				continue
			}
			if err := values.apply(i.meta.name, d.Formula); err != nil {
				return nil, err
			}
		}

		for _, name := range p.MethodArgs() {
			if _, ok := values[name]; ok {
				continue
			}
			if input := p.inputs[name]; !input.IsExternal() && len(input.Value) > 0 {
				values[name] = input.Value[0]
			}
		}

		for _, f := range p.formulas {
			if err := values.apply(p.name, f); err != nil {
				return nil, err
			}
		}
	}

	for _, f := range i.meta.post {
		if err := values.apply(i.meta.name, f); err != nil {
			return nil, err
		}
	}

	return values, nil
}

func (v Values) apply(owner string, f Formula) error {
	value, err := expression.Substitute(f.Expr, v)
	if err != nil {
		return fmt.Errorf("evaluating '%s' in '%s': %w", f.Name, owner, err)
	}
	v[f.Name] = value
	return nil
}

// Verify evaluates the industry for every golden outcome and compares each computed
// value with its golden value rounded to two decimals
func (i *Industry) Verify() error {
	if i.meta == nil {
		return ErrMetaNotSet
	}

	var errs error
	for n, outcome := range i.meta.outcome.Tests {
		values, err := i.Evaluate(outcome)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}

		for _, unit := range i.units() {
			for _, f := range unit.Formulas() {
				if n >= len(f.Tests) {
					continue
				}
				got := math.Round(values[f.Name]*100) / 100
				if math.Abs(got-f.Tests[n]) > goldenTolerance {
					errs = multierr.Append(errs, fmt.Errorf("%w: '%s' in '%s' for %s=%s: expected %s, got %s",
						ErrGoldenMismatch, f.Name, unit.Name(), i.meta.outcome.Name,
						expression.FormatNumber(outcome), expression.FormatNumber(f.Tests[n]),
						expression.FormatNumber(got)))
				}
			}
		}
	}

	return errs
}

// units returns the meta-process followed by the processes in insertion order
func (i *Industry) units() []Unit {
	units := make([]Unit, 0, len(i.order)+1)
	units = append(units, i.meta)
	for _, id := range i.order {
		units = append(units, i.processes[id])
	}
	return units
}
