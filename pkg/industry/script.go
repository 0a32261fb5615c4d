package industry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/idesignres/iisim/pkg/expression"
	"github.com/idesignres/iisim/pkg/models/rendering"
	"github.com/sirupsen/logrus"
)

// Script renders the generated industry class
func (i *Industry) Script(templates *rendering.Templates) (string, error) {
	if i.meta == nil {
		return "", ErrMetaNotSet
	}

	queue, err := i.ExecutionQueue()
	if err != nil {
		return "", err
	}

	var (
		constants   []string
		methods     []string
		constructor []string
		getters     []string
		seen        = make(map[string]struct{})
	)

	if c := i.meta.ConstantsFragment(); c != "" {
		constants = append(constants, c)
	}

	getter, err := gettersFragment(dedupe(i.meta.GetterItems(), seen), templates.Getter)
	if err != nil {
		return "", fmt.Errorf("industry '%s': %w", i.meta.name, err)
	}
	getters = append(getters, getter)

	for _, id := range queue {
		p := i.processes[id]

		method, err := p.MethodFragment(templates.ProcessMethod)
		if err != nil {
			return "", err
		}
		methods = append(methods, strings.TrimRight(method, "\n"))

		if c := p.ConstantsFragment(); c != "" {
			constants = append(constants, c)
		}

		constructor = append(constructor, i.meta.PreFragment(id)...)
		constructor = append(constructor, p.StandaloneInputs(i.meta.DemandsFor(id))...)
		constructor = append(constructor, p.CallFragment())

		if items := dedupe(p.GetterItems(), seen); len(items) > 0 {
			getter, err := gettersFragment(items, templates.Getter)
			if err != nil {
				return "", fmt.Errorf("process '%s': %w", p.name, err)
			}
			getters = append(getters, getter)
		}
	}

	constructor = append(constructor, i.meta.PostFragment()...)

	units, err := i.unitsJSON(queue)
	if err != nil {
		return "", err
	}

	minUnits, maxUnits := i.UnitBounds()
	outcome := i.meta.outcome.Name

	script, err := templates.Industry.Execute(map[string]interface{}{
		"name":               i.meta.shortName,
		"fullname":           quote(i.meta.name),
		"description":        i.meta.description,
		"outcome_name":       outcome,
		"constructor_method": strings.Join(constructor, statementSeparator),
		"constants":          strings.Join(constants, "\n\n"),
		"args":               "self, " + outcome,
		"process_methods":    strings.Join(methods, "\n\n"),
		"get_methods":        strings.TrimRight(strings.Join(getters, "\n"), "\n"),
		"units":              units,
		"min_units":          expression.FormatNumber(minUnits),
		"max_units":          expression.FormatNumber(maxUnits),
	})
	if err != nil {
		return "", fmt.Errorf("industry '%s': %w", i.meta.name, err)
	}

	i.log.WithFields(logrus.Fields{
		"industry":  i.meta.shortName,
		"processes": len(queue),
	}).Debug("Rendered script")

	return script, nil
}

// unitsJSON renders the units of every exposed value as an indented JSON object that
// keeps the meta-process order, followed by process outputs in queue order
func (i *Industry) unitsJSON(queue []string) (string, error) {
	entries := i.meta.Units()
	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		seen[entry.Name] = struct{}{}
	}

	for _, id := range queue {
		for _, f := range i.processes[id].formulas {
			if _, ok := seen[f.Name]; ok {
				continue
			}
			seen[f.Name] = struct{}{}
			entries = append(entries, UnitEntry{Name: f.Name, Units: f.Units})
		}
	}

	if len(entries) == 0 {
		return "{}", nil
	}

	var buf bytes.Buffer
	buf.WriteString("{\n")
	for n, entry := range entries {
		name, err := jsonString(entry.Name)
		if err != nil {
			return "", err
		}
		units, err := jsonString(entry.Units)
		if err != nil {
			return "", err
		}

		fmt.Fprintf(&buf, "    %s: %s", name, units)
		if n < len(entries)-1 {
			buf.WriteString(",")
		}
		buf.WriteString("\n")
	}
	buf.WriteString("}")

	return buf.String(), nil
}

func jsonString(s string) (string, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return "", err
	}

	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// quote renders s as a double quoted Python string literal
func quote(s string) string {
	quoted, err := jsonString(s)
	if err != nil {
		return `""`
	}
	return quoted
}

func dedupe(items []GetterItem, seen map[string]struct{}) []GetterItem {
	out := make([]GetterItem, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.Name]; ok {
			continue
		}
		seen[item.Name] = struct{}{}
		out = append(out, item)
	}
	return out
}
