package industry

import (
	"fmt"
	"sort"

	"github.com/heimdalr/dag"
)

// node is the vertex value stored in the dependency graph
type node struct {
	id      string
	process *Process
}

// graph builds the dependency graph of the registered processes, with an edge from
// every dependency to its dependent
func (i *Industry) graph() (*dag.DAG, error) {
	g := dag.NewDAG()

	for _, id := range i.order {
		if err := g.AddVertexByID(id, node{id: id, process: i.processes[id]}); err != nil {
			return nil, fmt.Errorf("failed to add vertex %s: %w", id, err)
		}
	}

	for _, id := range i.order {
		for _, dep := range i.dependencies[id] {
			if dep == id {
				return nil, fmt.Errorf("%w: %s depends on itself", ErrCyclicDependency, id)
			}

			if _, ok := i.processes[dep]; !ok {
				return nil, fmt.Errorf("%w: %s depends on %s", ErrUnknownProcess, id, dep)
			}

			// AddEdge returns error if it would create a cycle
			if err := g.AddEdge(dep, id); err != nil {
				return nil, fmt.Errorf("%w: %s → %s: %w", ErrCyclicDependency, dep, id, err)
			}
		}
	}

	return g, nil
}

// ExecutionQueue returns the process ids ordered so that every process comes after the
// processes it depends on. Ties are broken by insertion order.
func (i *Industry) ExecutionQueue() ([]string, error) {
	g, err := i.graph()
	if err != nil {
		return nil, err
	}

	position := make(map[string]int, len(i.order))
	pending := make(map[string]int, len(i.order))
	var ready []string

	for n, id := range i.order {
		position[id] = n

		parents, err := g.GetParents(id)
		if err != nil {
			return nil, err
		}

		pending[id] = len(parents)
		if len(parents) == 0 {
			ready = append(ready, id)
		}
	}

	queue := make([]string, 0, len(i.order))
	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		queue = append(queue, id)

		children, err := g.GetChildren(id)
		if err != nil {
			return nil, err
		}

		for child := range children {
			pending[child]--
			if pending[child] == 0 {
				ready = append(ready, child)
			}
		}

		sort.SliceStable(ready, func(a, b int) bool {
			return position[ready[a]] < position[ready[b]]
		})
	}

	if len(queue) != len(i.order) {
		return nil, fmt.Errorf("%w: %d of %d processes could not be ordered",
			ErrCyclicDependency, len(i.order)-len(queue), len(i.order))
	}

	i.log.WithField("queue", queue).Debug("Computed execution queue")

	return queue, nil
}

// Levels returns the depth of every process: 0 for processes without dependencies,
// otherwise one more than the deepest dependency
func (i *Industry) Levels() (map[string]int, error) {
	queue, err := i.ExecutionQueue()
	if err != nil {
		return nil, err
	}

	levels := make(map[string]int, len(queue))
	for _, id := range queue {
		level := 0
		for _, dep := range i.dependencies[id] {
			if levels[dep]+1 > level {
				level = levels[dep] + 1
			}
		}
		levels[id] = level
	}

	return levels, nil
}
