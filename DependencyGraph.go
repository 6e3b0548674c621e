package dbmigrations

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dominikbraun/graph"
)

// DependencyGraph answers ordering queries over a migration set.  Nodes are
// migration ids and edges point from a dependency to the migrations that
// depend on it.  The graph is immutable after construction.
type DependencyGraph struct {
	set        MigrationSet
	order      []string
	dependents map[string][]string
}

// NewDependencyGraph validates the set and builds the graph.  It fails with
// a CycleError when the dependencies are cyclic and with an
// UnresolvedDependencyError when a migration depends on an id that is not in
// the set.
func NewDependencyGraph(set MigrationSet) (*DependencyGraph, error) {
	g := graph.New(graph.StringHash, graph.Directed(), graph.PreventCycles())

	ids := sortedIds(set)
	for _, id := range ids {
		if err := g.AddVertex(id); err != nil {
			return nil, err
		}
	}

	dependents := make(map[string][]string)
	for _, id := range ids {
		deps := append([]string(nil), set[id].Depends...)
		sort.Strings(deps)

		for _, dep := range deps {
			if _, ok := set[dep]; !ok {
				return nil, &UnresolvedDependencyError{Id: id, Dependency: dep}
			}

			if err := g.AddEdge(dep, id); err != nil {
				if errors.Is(err, graph.ErrEdgeCreatesCycle) {
					return nil, &CycleError{Path: cyclePath(g, id, dep)}
				}

				return nil, err
			}

			dependents[dep] = append(dependents[dep], id)
		}
	}

	order, err := graph.StableTopologicalSort(g, func(a, b string) bool { return a < b })
	if err != nil {
		return nil, err
	}

	return &DependencyGraph{set: set, order: order, dependents: dependents}, nil
}

// Order returns every migration id in the set in topological order:
// dependencies first, ties broken by lexicographic id.
func (dg *DependencyGraph) Order() []string {
	return append([]string(nil), dg.order...)
}

// Ancestors returns every id the named migration transitively depends on, in
// the same deterministic topological order as Order.
func (dg *DependencyGraph) Ancestors(id string) ([]string, error) {
	migration, ok := dg.set[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMigrationNotFound, id)
	}

	members := make(map[string]bool)
	collect(migration.Depends, members, func(node string) []string { return dg.set[node].Depends })

	out := make([]string, 0, len(members))
	for _, node := range dg.order {
		if members[node] {
			out = append(out, node)
		}
	}

	return out, nil
}

// Descendants returns every id that transitively depends on the named
// migration, most-dependent first.  This is the order in which they must be
// reverted.
func (dg *DependencyGraph) Descendants(id string) ([]string, error) {
	if _, ok := dg.set[id]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrMigrationNotFound, id)
	}

	members := make(map[string]bool)
	collect(dg.dependents[id], members, func(node string) []string { return dg.dependents[node] })

	out := make([]string, 0, len(members))
	for i := len(dg.order) - 1; i >= 0; i-- {
		if members[dg.order[i]] {
			out = append(out, dg.order[i])
		}
	}

	return out, nil
}

// collect walks the closure of frontier under next with an explicit stack,
// so deep dependency chains cannot exhaust the call stack.
func collect(frontier []string, members map[string]bool, next func(string) []string) {
	stack := append([]string(nil), frontier...)
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if members[node] {
			continue
		}

		members[node] = true
		stack = append(stack, next(node)...)
	}
}

// cyclePath reconstructs the cycle that adding the edge dependency->id would
// close: the existing path from id to dependency, followed by id again.
// Neighbors are visited in sorted order so the reported path is
// deterministic.
func cyclePath(g graph.Graph[string, string], id string, dependency string) []string {
	fallback := []string{id, dependency, id}

	adjacency, err := g.AdjacencyMap()
	if err != nil {
		return fallback
	}

	var walk func(node string, path []string) []string
	walk = func(node string, path []string) []string {
		path = append(path, node)
		if node == dependency {
			return append(path, id)
		}

		neighbors := make([]string, 0, len(adjacency[node]))
		for neighbor := range adjacency[node] {
			neighbors = append(neighbors, neighbor)
		}
		sort.Strings(neighbors)

		for _, neighbor := range neighbors {
			seen := false
			for _, visited := range path {
				if visited == neighbor {
					seen = true
					break
				}
			}
			if seen {
				continue
			}

			if found := walk(neighbor, append([]string(nil), path...)); found != nil {
				return found
			}
		}

		return nil
	}

	if found := walk(id, nil); found != nil {
		return found
	}

	return fallback
}

func sortedIds(set MigrationSet) []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}

	sort.Strings(ids)
	return ids
}
