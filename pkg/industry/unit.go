// Package industry compiles processes and the meta-process of an industry into a single
// generated artifact
package industry

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/idesignres/iisim/pkg/expression"
	"github.com/idesignres/iisim/pkg/models"
	"github.com/idesignres/iisim/pkg/models/rendering"
)

const (
	// privatePrefix turns a name into the private attribute holding its value
	privatePrefix = "self.__"
	// statementSeparator joins statements inside a generated method body
	statementSeparator = "\n        "
)

// Unit is a compilable part of an industry: the meta-process or one of its processes
type Unit interface {
	ID() string
	Name() string
	Formulas() []Formula
	ConstantsFragment() string
	Constants() []models.Constant
	GetterItems() []GetterItem
	GettersFragment(tpl *rendering.Template) (string, error)
}

// Formula is a compiled item operation
type Formula struct {
	Name        string
	Description string
	Units       string
	Expr        expression.Expr
	Args        []models.Arg
	Tests       []float64
}

// GetterItem is a value exposed through a generated getter
type GetterItem struct {
	Name        string
	Description string
}

// base holds the lookup tables and formula map shared by processes and the meta-process
type base struct {
	name      string
	id        string
	constants []models.Constant
	inputs    map[string]models.Input
	outputs   map[string]models.Output
	formulas  []Formula
	index     map[string]int

	inputOrder  []models.Input
	outputOrder []models.Output
}

func newBase(cfg *models.ProcessConfig) (base, error) {
	b := base{
		name:      cfg.Name,
		id:        cfg.ID,
		constants: append([]models.Constant(nil), cfg.Constants...),
		inputs:    make(map[string]models.Input, len(cfg.Inputs)),
		outputs:   make(map[string]models.Output, len(cfg.Outputs)),
		index:     make(map[string]int),

		inputOrder:  append([]models.Input(nil), cfg.Inputs...),
		outputOrder: append([]models.Output(nil), cfg.Outputs...),
	}

	for _, input := range cfg.Inputs {
		if _, exists := b.inputs[input.Name]; exists {
			return base{}, fmt.Errorf("%w: input '%s' in '%s'", ErrDuplicateName, input.Name, cfg.Name)
		}
		b.inputs[input.Name] = input
	}

	for _, output := range cfg.Outputs {
		if _, exists := b.outputs[output.Name]; exists {
			return base{}, fmt.Errorf("%w: output '%s' in '%s'", ErrDuplicateName, output.Name, cfg.Name)
		}
		b.outputs[output.Name] = output
	}

	return b, nil
}

// compile parses the operation of item and checks it only uses declared arguments
func compile(owner string, item *models.Item) (Formula, error) {
	expr, err := expression.Parse(item.Operation)
	if err != nil {
		return Formula{}, fmt.Errorf("operation of '%s' in '%s': %w", item.Name, owner, err)
	}

	declared := make(map[string]struct{}, len(item.Args))
	for _, arg := range item.Args {
		declared[arg.Name] = struct{}{}
	}

	var undeclared []string
	for _, name := range expression.Identifiers(expr) {
		if _, ok := declared[name]; !ok {
			undeclared = append(undeclared, name)
		}
	}
	if len(undeclared) > 0 {
		return Formula{}, fmt.Errorf("%w: '%s' in '%s' uses %s without declaring them in args",
			expression.ErrUnboundReference, item.Name, owner, strings.Join(undeclared, ", "))
	}

	return Formula{
		Name:        item.Name,
		Description: item.Description,
		Units:       item.Units,
		Expr:        expr,
		Args:        append([]models.Arg(nil), item.Args...),
		Tests:       append([]float64(nil), item.Tests...),
	}, nil
}

func (b *base) addFormula(f Formula) error {
	if _, exists := b.index[f.Name]; exists {
		return fmt.Errorf("%w: '%s' in '%s'", ErrDuplicateName, f.Name, b.name)
	}
	b.index[f.Name] = len(b.formulas)
	b.formulas = append(b.formulas, f)
	return nil
}

// ID returns the identifier of the unit
func (b *base) ID() string {
	return b.id
}

// Name returns the human readable name of the unit
func (b *base) Name() string {
	return b.name
}

// Formulas returns the compiled formulas in declaration order
func (b *base) Formulas() []Formula {
	return append([]Formula(nil), b.formulas...)
}

// Formula returns the compiled formula of the named item
func (b *base) Formula(name string) (Formula, bool) {
	i, ok := b.index[name]
	if !ok {
		return Formula{}, false
	}
	return b.formulas[i], true
}

// Constants returns the constants in declaration order
func (b *base) Constants() []models.Constant {
	return append([]models.Constant(nil), b.constants...)
}

// Input returns the named input
func (b *base) Input(name string) (models.Input, bool) {
	input, ok := b.inputs[name]
	return input, ok
}

// Output returns the named output
func (b *base) Output(name string) (models.Output, bool) {
	output, ok := b.outputs[name]
	return output, ok
}

// Inputs returns the inputs in declaration order
func (b *base) Inputs() []models.Input {
	return append([]models.Input(nil), b.inputOrder...)
}

// Outputs returns the outputs in declaration order
func (b *base) Outputs() []models.Output {
	return append([]models.Output(nil), b.outputOrder...)
}

// ConstantsFragment renders one assignment per constant under a header naming the owner
func (b *base) ConstantsFragment() string {
	if len(b.constants) == 0 {
		return ""
	}

	lines := make([]string, 0, len(b.constants)+1)
	lines = append(lines, fmt.Sprintf("# %s's constants", b.name))
	for _, constant := range b.constants {
		lines = append(lines, fmt.Sprintf("%s = %s  # %s", constant.Name, pythonFloat(constant.Value), constant.Description))
	}

	return strings.Join(lines, "\n")
}

func gettersFragment(items []GetterItem, tpl *rendering.Template) (string, error) {
	getters := make([]string, 0, len(items))
	for _, item := range items {
		getter, err := tpl.Execute(map[string]interface{}{
			"name":        item.Name,
			"description": item.Description,
		})
		if err != nil {
			return "", err
		}
		getters = append(getters, getter)
	}

	return strings.Join(getters, "\n"), nil
}

// assignment renders f as a private attribute assignment, renaming the arguments
// accepted by private to their private attribute form
func assignment(f Formula, private func(models.Arg) bool) string {
	mapping := make(map[string]string)
	for _, arg := range f.Args {
		if private(arg) {
			mapping[arg.Name] = privatePrefix + arg.Name
		}
	}

	return fmt.Sprintf("%s%s = %s", privatePrefix, f.Name, expression.Print(expression.Rename(f.Expr, mapping)))
}

// pythonFloat formats v the way Python prints a float
func pythonFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}
