package dbmigrations

import (
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/ljpx/test"
)

func migrationSetOf(deps map[string][]string) MigrationSet {
	set := make(MigrationSet)
	for id, d := range deps {
		set[id] = &Migration{Id: id, Depends: d}
	}

	return set
}

func diamondSet() MigrationSet {
	return migrationSetOf(map[string][]string{
		"root": nil,
		"a":    {"root"},
		"b":    {"root"},
		"c":    {"a", "b"},
	})
}

func TestDependencyGraphOrdersDiamondDeterministically(t *testing.T) {
	// Arrange.
	set := diamondSet()

	// Act.
	graph, err := NewDependencyGraph(set)

	// Assert.
	test.That(t, err).IsNil()
	test.That(t, strings.Join(graph.Order(), " ")).IsEqualTo("root a b c")
}

func TestDependencyGraphProducesTheSameOrderOnEveryBuild(t *testing.T) {
	// Arrange.
	first, err := NewDependencyGraph(diamondSet())
	test.That(t, err).IsNil()

	// Act.
	second, err := NewDependencyGraph(diamondSet())

	// Assert.
	test.That(t, err).IsNil()
	test.That(t, strings.Join(second.Order(), " ")).IsEqualTo(strings.Join(first.Order(), " "))
}

func TestDependencyGraphAnswersAncestors(t *testing.T) {
	// Arrange.
	graph, err := NewDependencyGraph(diamondSet())
	test.That(t, err).IsNil()

	// Act.
	ancestors, err := graph.Ancestors("c")

	// Assert.
	test.That(t, err).IsNil()
	test.That(t, strings.Join(ancestors, " ")).IsEqualTo("root a b")
}

func TestDependencyGraphAnswersAncestorsOfARootMigration(t *testing.T) {
	// Arrange.
	graph, err := NewDependencyGraph(diamondSet())
	test.That(t, err).IsNil()

	// Act.
	ancestors, err := graph.Ancestors("root")

	// Assert.
	test.That(t, err).IsNil()
	test.That(t, len(ancestors)).IsEqualTo(0)
}

func TestDependencyGraphAnswersDescendantsMostDependentFirst(t *testing.T) {
	// Arrange.
	graph, err := NewDependencyGraph(diamondSet())
	test.That(t, err).IsNil()

	// Act.
	descendants, err := graph.Descendants("root")

	// Assert.
	test.That(t, err).IsNil()
	test.That(t, strings.Join(descendants, " ")).IsEqualTo("c b a")
}

func TestDependencyGraphAnswersDescendantsOfAMidGraphMigration(t *testing.T) {
	// Arrange.
	graph, err := NewDependencyGraph(diamondSet())
	test.That(t, err).IsNil()

	// Act.
	descendants, err := graph.Descendants("a")

	// Assert.
	test.That(t, err).IsNil()
	test.That(t, strings.Join(descendants, " ")).IsEqualTo("c")
}

func TestDependencyGraphDescendantsMirrorAncestors(t *testing.T) {
	// Arrange.
	set := migrationSetOf(map[string][]string{
		"root": nil,
		"a":    {"root"},
		"b":    {"a"},
		"c":    {"b"},
		"d":    {"a"},
	})

	graph, err := NewDependencyGraph(set)
	test.That(t, err).IsNil()

	// Act and assert: j is a descendant of i exactly when i is an ancestor
	// of j.
	for i := range set {
		descendants, err := graph.Descendants(i)
		test.That(t, err).IsNil()

		fromAncestors := []string{}
		for j := range set {
			ancestors, err := graph.Ancestors(j)
			test.That(t, err).IsNil()

			for _, id := range ancestors {
				if id == i {
					fromAncestors = append(fromAncestors, j)
				}
			}
		}

		sorted := append([]string(nil), descendants...)
		sort.Strings(sorted)
		sort.Strings(fromAncestors)
		test.That(t, strings.Join(sorted, " ")).IsEqualTo(strings.Join(fromAncestors, " "))
	}
}

func TestDependencyGraphRejectsACycle(t *testing.T) {
	// Arrange.
	set := migrationSetOf(map[string][]string{
		"a": {"b"},
		"b": {"a"},
	})

	// Act.
	_, err := NewDependencyGraph(set)

	// Assert.
	var cycleErr *CycleError
	test.That(t, errors.As(err, &cycleErr)).IsEqualTo(true)
	test.That(t, cycleErr.Path[0]).IsEqualTo(cycleErr.Path[len(cycleErr.Path)-1])

	joined := strings.Join(cycleErr.Path, " ")
	test.That(t, strings.Contains(joined, "a")).IsEqualTo(true)
	test.That(t, strings.Contains(joined, "b")).IsEqualTo(true)
}

func TestDependencyGraphRejectsADanglingDependency(t *testing.T) {
	// Arrange.
	set := migrationSetOf(map[string][]string{
		"a": {"missing"},
	})

	// Act.
	_, err := NewDependencyGraph(set)

	// Assert.
	var depErr *UnresolvedDependencyError
	test.That(t, errors.As(err, &depErr)).IsEqualTo(true)
	test.That(t, depErr.Id).IsEqualTo("a")
	test.That(t, depErr.Dependency).IsEqualTo("missing")
}

func TestDependencyGraphRejectsAnUnknownMigrationId(t *testing.T) {
	// Arrange.
	graph, err := NewDependencyGraph(diamondSet())
	test.That(t, err).IsNil()

	// Act.
	_, err = graph.Ancestors("missing")

	// Assert.
	test.That(t, errors.Is(err, ErrMigrationNotFound)).IsEqualTo(true)
}
