package scheduler

import "github.com/alexanderramin/revgantt/internal/domain"

// DependsOn reports whether stage sourceID depends on stage targetID,
// directly or through other stages. Cycles in the existing graph are
// tolerated.
func DependsOn(p domain.Plan, sourceID, targetID string) bool {
	idx := p.StageIndex()
	return reaches(sourceID, targetID, func(id string) []string {
		i, ok := idx[id]
		if !ok {
			return nil
		}
		return p.Stages[i].Dependencies
	})
}

// TaskDependsOn is DependsOn for sibling tasks of s.
func TaskDependsOn(s domain.Stage, sourceID, targetID string) bool {
	idx := s.TaskIndex()
	return reaches(sourceID, targetID, func(id string) []string {
		i, ok := idx[id]
		if !ok {
			return nil
		}
		return s.Tasks[i].Dependencies
	})
}

// WouldCycle reports whether making sourceID depend on targetID closes a
// cycle, i.e. whether target already depends on source (or they are equal).
func WouldCycle(p domain.Plan, sourceID, targetID string) bool {
	return sourceID == targetID || DependsOn(p, targetID, sourceID)
}

// WouldCycleTask is WouldCycle for sibling tasks of s.
func WouldCycleTask(s domain.Stage, sourceID, targetID string) bool {
	return sourceID == targetID || TaskDependsOn(s, targetID, sourceID)
}

func reaches(from, to string, deps func(id string) []string) bool {
	visited := map[string]bool{from: true}
	stack := []string{from}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, dep := range deps(id) {
			if dep == to {
				return true
			}
			if !visited[dep] {
				visited[dep] = true
				stack = append(stack, dep)
			}
		}
	}
	return false
}
