package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func graphWalker(edges map[string][]string, finalized *[]string, cycles *[][2]string) *Walker {
	return NewWalker(
		func(id string) []string { return edges[id] },
		func(id string) { *finalized = append(*finalized, id) },
		func(from, to string) { *cycles = append(*cycles, [2]string{from, to}) },
	)
}

func TestWalker_FinalizesNeighborsFirst(t *testing.T) {
	edges := map[string][]string{"a": {"b"}, "b": {"c"}}
	var finalized []string
	var cycles [][2]string
	w := graphWalker(edges, &finalized, &cycles)

	w.Visit("a")

	assert.Equal(t, []string{"c", "b", "a"}, finalized)
	assert.Empty(t, cycles)
	for _, id := range []string{"a", "b", "c"} {
		assert.Equal(t, Done, w.State(id), id)
	}
}

func TestWalker_DiamondFinalizesOnce(t *testing.T) {
	edges := map[string][]string{"a": {"b", "c"}, "b": {"d"}, "c": {"d"}}
	var finalized []string
	var cycles [][2]string
	w := graphWalker(edges, &finalized, &cycles)

	w.Visit("a")
	w.Visit("d")
	w.Visit("b")

	assert.Equal(t, []string{"d", "b", "c", "a"}, finalized)
	assert.Empty(t, cycles)
}

func TestWalker_CycleReportedNotFollowed(t *testing.T) {
	edges := map[string][]string{"a": {"b"}, "b": {"c"}, "c": {"a"}}
	var finalized []string
	var cycles [][2]string
	w := graphWalker(edges, &finalized, &cycles)

	w.Visit("a")

	assert.Equal(t, []string{"c", "b", "a"}, finalized)
	assert.Equal(t, [][2]string{{"c", "a"}}, cycles)
}

func TestWalker_SelfLoop(t *testing.T) {
	edges := map[string][]string{"a": {"a"}}
	var finalized []string
	var cycles [][2]string
	w := graphWalker(edges, &finalized, &cycles)

	w.Visit("a")

	assert.Equal(t, []string{"a"}, finalized)
	assert.Equal(t, [][2]string{{"a", "a"}}, cycles)
}

func TestWalker_NilCycleHandler(t *testing.T) {
	edges := map[string][]string{"a": {"b"}, "b": {"a"}}
	var finalized []string
	w := NewWalker(
		func(id string) []string { return edges[id] },
		func(id string) { finalized = append(finalized, id) },
		nil,
	)

	assert.NotPanics(t, func() { w.Visit("a") })
	assert.Equal(t, []string{"b", "a"}, finalized)
}

func TestWalker_UnvisitedByDefault(t *testing.T) {
	w := NewWalker(func(string) []string { return nil }, func(string) {}, nil)
	assert.Equal(t, Unvisited, w.State("x"))
}
