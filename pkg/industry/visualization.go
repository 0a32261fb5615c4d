package industry

import (
	"fmt"
	"sort"
	"strings"
)

// Dependents returns the ids of the processes taking inputs from id, in insertion order
func (i *Industry) Dependents(id string) ([]string, error) {
	g, err := i.graph()
	if err != nil {
		return nil, err
	}

	children, err := g.GetChildren(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProcess, id)
	}

	position := make(map[string]int, len(i.order))
	for n, pid := range i.order {
		position[pid] = n
	}

	dependents := make([]string, 0, len(children))
	for child := range children {
		dependents = append(dependents, child)
	}
	sort.Slice(dependents, func(a, b int) bool {
		return position[dependents[a]] < position[dependents[b]]
	})

	return dependents, nil
}

// DOT renders the dependency graph in graphviz format, processes in execution order
func (i *Industry) DOT() (string, error) {
	queue, err := i.ExecutionQueue()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("digraph industry {\n")
	sb.WriteString("  rankdir=LR;\n")

	for _, id := range queue {
		p := i.processes[id]
		if len(p.Dependencies()) == 0 {
			fmt.Fprintf(&sb, "  %q [label=%q, shape=box];\n", id, p.Name())
		} else {
			fmt.Fprintf(&sb, "  %q [label=%q];\n", id, p.Name())
		}
	}

	for _, id := range queue {
		for _, dep := range i.dependencies[id] {
			fmt.Fprintf(&sb, "  %q -> %q;\n", dep, id)
		}
	}

	sb.WriteString("}")

	return sb.String(), nil
}
