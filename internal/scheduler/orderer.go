package scheduler

import (
	"sort"

	"github.com/alexanderramin/revgantt/internal/domain"
)

// Order arranges the stages of p, and the tasks of every stage, so that each
// item comes after everything it depends on. Independent items keep their
// relative order from p. Dangling and self references are skipped; an edge
// that closes a cycle is skipped with a warning.
func Order(p domain.Plan) (domain.Plan, []Warning) {
	out := p.Clone()
	var warns []Warning

	stageIDs := make([]string, len(out.Stages))
	stageDeps := make([][]string, len(out.Stages))
	for i, s := range out.Stages {
		stageIDs[i] = s.ID
		stageDeps[i] = s.Dependencies
	}
	perm := stableTopo(stageIDs, stageDeps, func(from, to string) {
		warns = append(warns, Warning{
			Kind: WarnCycle, Pass: PassOrder, Entity: domain.EntityStage,
			StageID: from, RefID: to,
		})
	})
	out.Stages = permute(out.Stages, perm)

	for i := range out.Stages {
		s := &out.Stages[i]
		taskIDs := make([]string, len(s.Tasks))
		taskDeps := make([][]string, len(s.Tasks))
		for j, t := range s.Tasks {
			taskIDs[j] = t.ID
			taskDeps[j] = t.Dependencies
		}
		stageID := s.ID
		perm := stableTopo(taskIDs, taskDeps, func(from, to string) {
			warns = append(warns, Warning{
				Kind: WarnCycle, Pass: PassOrder, Entity: domain.EntityTask,
				StageID: stageID, TaskID: from, RefID: to,
			})
		})
		s.Tasks = permute(s.Tasks, perm)
	}

	return out, warns
}

// stableTopo returns the positions of ids in dependency-first order.
// Items without resolvable dependencies are placed first, in input order;
// the rest follow in input order, each pulling its dependencies (sorted by
// input position) ahead of itself.
//
// Items on a common cycle move as one group and keep their input order
// inside it. Every dependency that points forward within a group is
// reported to onCycle. Ordering an already ordered list changes nothing.
func stableTopo(ids []string, deps [][]string, onCycle func(from, to string)) []int {
	pos := make(map[string]int, len(ids))
	for i, id := range ids {
		if _, dup := pos[id]; !dup {
			pos[id] = i
		}
	}

	resolved := make([][]string, len(ids))
	for i, id := range ids {
		var rs []string
		for _, dep := range domain.NormalizeDependencies(deps[i], id) {
			if _, ok := pos[dep]; ok {
				rs = append(rs, dep)
			}
		}
		sort.SliceStable(rs, func(a, b int) bool { return pos[rs[a]] < pos[rs[b]] })
		resolved[i] = rs
	}

	groups := cyclicGroups(ids, pos, resolved)

	// Each group is represented by its first member; group edges are the
	// member edges that leave the group.
	rep := func(id string) string { return groups[pos[id]][0] }
	groupDeps := make(map[string][]string)
	for i, id := range ids {
		if pos[id] != i || rep(id) != id {
			continue
		}
		seen := make(map[string]bool)
		var gd []string
		for _, member := range groups[pos[id]] {
			for _, dep := range resolved[pos[member]] {
				r := rep(dep)
				if r == id {
					if pos[dep] > pos[member] && onCycle != nil {
						onCycle(member, dep)
					}
					continue
				}
				if !seen[r] {
					seen[r] = true
					gd = append(gd, r)
				}
			}
		}
		sort.SliceStable(gd, func(a, b int) bool { return pos[gd[a]] < pos[gd[b]] })
		groupDeps[id] = gd
	}

	order := make([]int, 0, len(ids))
	w := NewWalker(
		func(id string) []string { return groupDeps[id] },
		func(id string) {
			for _, member := range groups[pos[id]] {
				order = append(order, pos[member])
			}
		},
		nil,
	)
	for _, id := range ids {
		if r := rep(id); r == id && len(groupDeps[r]) == 0 {
			w.Visit(r)
		}
	}
	for _, id := range ids {
		w.Visit(rep(id))
	}

	// Items sharing an id are reachable only once through the walker; keep
	// the later copies right where the first one landed.
	if len(order) < len(ids) {
		placed := make([]bool, len(ids))
		for _, i := range order {
			placed[i] = true
		}
		full := make([]int, 0, len(ids))
		for _, i := range order {
			full = append(full, i)
			for j := i + 1; j < len(ids); j++ {
				if !placed[j] && ids[j] == ids[i] {
					placed[j] = true
					full = append(full, j)
				}
			}
		}
		order = full
	}
	return order
}

// cyclicGroups finds the strongly connected components of the dependency
// graph with two walker passes (Kosaraju). The result maps the position of
// every distinct id to the members of its component, in input order.
func cyclicGroups(ids []string, pos map[string]int, resolved [][]string) map[int][]string {
	var finished []string
	forward := NewWalker(
		func(id string) []string { return resolved[pos[id]] },
		func(id string) { finished = append(finished, id) },
		nil,
	)
	dependents := make(map[string][]string)
	for i, id := range ids {
		if pos[id] != i {
			continue
		}
		forward.Visit(id)
		for _, dep := range resolved[i] {
			dependents[dep] = append(dependents[dep], id)
		}
	}

	var current []string
	backward := NewWalker(
		func(id string) []string { return dependents[id] },
		func(id string) { current = append(current, id) },
		nil,
	)
	groups := make(map[int][]string, len(finished))
	for i := len(finished) - 1; i >= 0; i-- {
		if backward.State(finished[i]) != Unvisited {
			continue
		}
		current = nil
		backward.Visit(finished[i])
		sort.SliceStable(current, func(a, b int) bool { return pos[current[a]] < pos[current[b]] })
		for _, id := range current {
			groups[pos[id]] = current
		}
	}
	return groups
}

func permute[T any](items []T, perm []int) []T {
	if items == nil {
		return nil
	}
	out := make([]T, len(perm))
	for i, p := range perm {
		out[i] = items[p]
	}
	return out
}
