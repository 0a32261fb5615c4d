package industry

import (
	"fmt"

	"github.com/idesignres/iisim/pkg/models"
	"github.com/idesignres/iisim/pkg/models/rendering"
)

// Meta is the compiled meta-process of an industry
type Meta struct {
	base
	shortName   string
	description string
	outcome     models.Outcome
	demands     []demandFormula
	post        []Formula
}

type demandFormula struct {
	Formula
	used string
	tag  string
}

// UnitEntry pairs a value name with its units
type UnitEntry struct {
	Name  string
	Units string
}

var _ Unit = (*Meta)(nil)

// NewMeta compiles the demands, meta-demands and outputs of cfg
func NewMeta(cfg *models.IndustryConfig) (*Meta, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	b, err := newBase(&cfg.ProcessConfig)
	if err != nil {
		return nil, err
	}

	m := &Meta{
		base:        b,
		shortName:   cfg.ShortName,
		description: cfg.Description,
		outcome:     cfg.Outcome,
	}
	m.outcome.Range = append(models.Range(nil), cfg.Outcome.Range...)
	m.outcome.Tests = append([]float64(nil), cfg.Outcome.Tests...)

	names := make(map[string]struct{}, len(cfg.Demands))
	for i := range cfg.Demands {
		demand := &cfg.Demands[i]
		if _, exists := names[demand.Name]; exists {
			return nil, fmt.Errorf("%w: demand '%s' in '%s'", ErrDuplicateName, demand.Name, cfg.Name)
		}
		names[demand.Name] = struct{}{}

		f, err := compile(cfg.Name, &demand.Item)
		if err != nil {
			return nil, err
		}
		m.demands = append(m.demands, demandFormula{Formula: f, used: demand.Used, tag: demand.Meta})

		if !demand.IsAggregated() {
			if err := m.addFormula(f); err != nil {
				return nil, err
			}
		}
	}

	for i := range cfg.Meta {
		f, err := compile(cfg.Name, &cfg.Meta[i].Item)
		if err != nil {
			return nil, err
		}
		if err := m.addFormula(f); err != nil {
			return nil, err
		}
		m.post = append(m.post, f)
	}

	for i := range cfg.Outputs {
		f, err := compile(cfg.Name, &cfg.Outputs[i].Item)
		if err != nil {
			return nil, err
		}
		if err := m.addFormula(f); err != nil {
			return nil, err
		}
		m.post = append(m.post, f)
	}

	return m, nil
}

// ShortName returns the identifier of the industry
func (m *Meta) ShortName() string {
	return m.shortName
}

// Description returns the industry description
func (m *Meta) Description() string {
	return m.description
}

// Outcome returns the driving quantity of the industry
func (m *Meta) Outcome() models.Outcome {
	outcome := m.outcome
	outcome.Range = append(models.Range(nil), m.outcome.Range...)
	outcome.Tests = append([]float64(nil), m.outcome.Tests...)
	return outcome
}

// Demands returns every demand, aggregated ones included, in declaration order
func (m *Meta) Demands() []models.Demand {
	demands := make([]models.Demand, 0, len(m.demands))
	for _, d := range m.demands {
		demands = append(demands, models.Demand{
			Item: models.Item{
				BaseFields: models.BaseFields{Name: d.Name, Description: d.Description, Units: d.Units},
				Args:       append([]models.Arg(nil), d.Args...),
				Tests:      append([]float64(nil), d.Tests...),
			},
			Used: d.used,
			Meta: d.tag,
		})
	}
	return demands
}

// DemandsFor returns the names of the demands consumed by the process
func (m *Meta) DemandsFor(processID string) map[string]struct{} {
	names := make(map[string]struct{})
	for _, d := range m.demands {
		if d.used == processID {
			names[d.Name] = struct{}{}
		}
	}
	return names
}

func isPrivate(arg models.Arg) bool {
	return arg.Kind != models.ArgConstants
}

// PreFragment renders the demands consumed by the process, to run before its method is called
func (m *Meta) PreFragment(processID string) []string {
	var lines []string
	for _, d := range m.demands {
		if d.used == processID {
			lines = append(lines, assignment(d.Formula, isPrivate))
		}
	}
	return lines
}

// PostFragment renders the meta-demands and outputs, to run after every process
func (m *Meta) PostFragment() []string {
	lines := make([]string, 0, len(m.post))
	for _, f := range m.post {
		lines = append(lines, assignment(f, isPrivate))
	}
	return lines
}

// Units returns the units of the outcome, untagged demands, meta-demands and outputs
func (m *Meta) Units() []UnitEntry {
	entries := make([]UnitEntry, 0, len(m.formulas)+1)
	entries = append(entries, UnitEntry{Name: m.outcome.Name, Units: m.outcome.Units})
	for _, f := range m.formulas {
		entries = append(entries, UnitEntry{Name: f.Name, Units: f.Units})
	}
	return entries
}

// GetterItems returns the outcome followed by every formula
func (m *Meta) GetterItems() []GetterItem {
	items := make([]GetterItem, 0, len(m.formulas)+1)
	items = append(items, GetterItem{Name: m.outcome.Name, Description: m.outcome.Description})
	for _, f := range m.formulas {
		items = append(items, GetterItem{Name: f.Name, Description: f.Description})
	}
	return items
}

// GettersFragment renders one getter per getter item
func (m *Meta) GettersFragment(tpl *rendering.Template) (string, error) {
	return gettersFragment(m.GetterItems(), tpl)
}
