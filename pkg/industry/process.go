package industry

import (
	"fmt"
	"strings"

	"github.com/idesignres/iisim/pkg/expression"
	"github.com/idesignres/iisim/pkg/models"
	"github.com/idesignres/iisim/pkg/models/rendering"
)

// Process is a compiled process document
type Process struct {
	base
	shortName    string
	description  string
	dependencies []string
}

var _ Unit = (*Process)(nil)

// NewProcess compiles every output operation of cfg
func NewProcess(cfg *models.ProcessConfig) (*Process, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	b, err := newBase(cfg)
	if err != nil {
		return nil, err
	}

	p := &Process{
		base:        b,
		shortName:   cfg.ShortName,
		description: cfg.Description,
	}

	for i := range cfg.Outputs {
		f, err := compile(cfg.Name, &cfg.Outputs[i].Item)
		if err != nil {
			return nil, err
		}
		if err := p.checkArgs(f); err != nil {
			return nil, err
		}
		if err := p.addFormula(f); err != nil {
			return nil, err
		}
	}

	seen := make(map[string]struct{})
	for _, input := range cfg.Inputs {
		if !input.IsExternal() {
			continue
		}
		if _, ok := seen[input.From]; ok {
			continue
		}
		seen[input.From] = struct{}{}
		p.dependencies = append(p.dependencies, input.From)
	}

	return p, nil
}

// checkArgs rejects input arguments the process does not declare, since they become
// parameters of the generated method
func (p *Process) checkArgs(f Formula) error {
	for _, arg := range f.Args {
		if arg.Kind != models.ArgInputs {
			continue
		}
		if _, ok := p.inputs[arg.Name]; !ok {
			return fmt.Errorf("%w: '%s' in '%s' takes undeclared input '%s'",
				expression.ErrUnboundReference, f.Name, p.name, arg.Name)
		}
	}
	return nil
}

// ShortName returns the identifier used for the generated method
func (p *Process) ShortName() string {
	return p.shortName
}

// Description returns the process description
func (p *Process) Description() string {
	return p.description
}

// Dependencies returns the distinct ids of the processes this one takes inputs from
func (p *Process) Dependencies() []string {
	return append([]string(nil), p.dependencies...)
}

// OperationsFragment renders the body of the generated process method
func (p *Process) OperationsFragment() string {
	lines := make([]string, 0, len(p.formulas))
	for _, f := range p.formulas {
		lines = append(lines, assignment(f, func(arg models.Arg) bool {
			return arg.Kind == models.ArgOutputs
		}))
	}
	return strings.Join(lines, statementSeparator)
}

// MethodArgs returns the distinct input arguments of all formulas, in first use order
func (p *Process) MethodArgs() []string {
	var (
		args []string
		seen = make(map[string]struct{})
	)
	for _, f := range p.formulas {
		for _, arg := range f.Args {
			if arg.Kind != models.ArgInputs {
				continue
			}
			if _, ok := seen[arg.Name]; ok {
				continue
			}
			seen[arg.Name] = struct{}{}
			args = append(args, arg.Name)
		}
	}
	return args
}

// MethodFragment renders the generated process method
func (p *Process) MethodFragment(tpl *rendering.Template) (string, error) {
	args := append([]string{"self"}, p.MethodArgs()...)

	method, err := tpl.Execute(map[string]interface{}{
		"name":        p.shortName,
		"args":        strings.Join(args, ", "),
		"description": p.description,
		"operation":   p.OperationsFragment(),
	})
	if err != nil {
		return "", fmt.Errorf("process '%s': %w", p.name, err)
	}

	return method, nil
}

// CallFragment renders the constructor statement calling the process method
func (p *Process) CallFragment() string {
	args := p.MethodArgs()
	for i, arg := range args {
		args[i] = privatePrefix + arg
	}
	return fmt.Sprintf("%s%s(%s)", privatePrefix, p.shortName, strings.Join(args, ", "))
}

// StandaloneInputs renders initialization lines for the method arguments that neither
// come from another process nor are in supplied, using their declared value
func (p *Process) StandaloneInputs(supplied map[string]struct{}) []string {
	var lines []string
	for _, name := range p.MethodArgs() {
		input := p.inputs[name]
		if input.IsExternal() || len(input.Value) == 0 {
			continue
		}
		if _, ok := supplied[name]; ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s%s = %s", privatePrefix, name, pythonFloat(input.Value[0])))
	}
	return lines
}

// GetterItems returns every output of the process
func (p *Process) GetterItems() []GetterItem {
	items := make([]GetterItem, 0, len(p.formulas))
	for _, f := range p.formulas {
		items = append(items, GetterItem{Name: f.Name, Description: f.Description})
	}
	return items
}

// GettersFragment renders one getter per output
func (p *Process) GettersFragment(tpl *rendering.Template) (string, error) {
	return gettersFragment(p.GetterItems(), tpl)
}
