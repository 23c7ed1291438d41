package wire

import (
	"github.com/alexanderramin/revgantt/internal/domain"
)

// TaskStride separates stage and task index in an encoded task reference:
// stageIndex*TaskStride + taskIndex.
const TaskStride = 10000

// StagePayload is one stage of a full-rewrite save. Items carry no ids;
// dependencies point at positions in the payload.
//
// Stage dependencies hold stage indexes. Task dependencies hold
// stageIndex*TaskStride+taskIndex for a task and -(stageIndex+1) for a stage.
type StagePayload struct {
	Name         string        `json:"name"`
	Duration     int           `json:"duration"`
	IsCompleted  bool          `json:"is_completed"`
	Responsibles []string      `json:"responsibles"`
	Feedback     *string       `json:"feedback,omitempty"`
	Dependencies PositionList  `json:"dependencies"`
	Tasks        []TaskPayload `json:"tasks"`
}

type TaskPayload struct {
	Name         string       `json:"name"`
	Duration     int          `json:"duration"`
	IsCompleted  bool         `json:"is_completed"`
	Responsibles []string     `json:"responsibles"`
	Feedback     *string      `json:"feedback,omitempty"`
	Dependencies PositionList `json:"dependencies"`
}

type taskPos struct{ stage, task int }

// EncodeSave converts stages, in display order, into the positional save
// payload. References that resolve to nothing are omitted. A task
// dependency resolves to a sibling first, then to a task of any stage, then
// to a stage.
func EncodeSave(stages []domain.Stage) []StagePayload {
	stageIdx := make(map[string]int, len(stages))
	taskIdx := make(map[string]taskPos)
	for i, s := range stages {
		if _, dup := stageIdx[s.ID]; !dup {
			stageIdx[s.ID] = i
		}
		for j, t := range s.Tasks {
			if _, dup := taskIdx[t.ID]; !dup {
				taskIdx[t.ID] = taskPos{i, j}
			}
		}
	}

	out := make([]StagePayload, 0, len(stages))
	for i, s := range stages {
		sp := StagePayload{
			Name:         s.Name,
			Duration:     s.Duration,
			IsCompleted:  s.IsCompleted,
			Responsibles: nonNil(s.Responsibles),
			Feedback:     ref(s.Feedback),
			Dependencies: PositionList{},
			Tasks:        make([]TaskPayload, 0, len(s.Tasks)),
		}
		for _, dep := range domain.NormalizeDependencies(s.Dependencies, s.ID) {
			if k, ok := stageIdx[dep]; ok {
				sp.Dependencies = append(sp.Dependencies, k)
			}
		}

		siblings := s.TaskIndex()
		for _, t := range s.Tasks {
			tp := TaskPayload{
				Name:         t.Name,
				Duration:     t.Duration,
				IsCompleted:  t.IsCompleted,
				Responsibles: nonNil(t.Responsibles),
				Feedback:     ref(t.Feedback),
				Dependencies: PositionList{},
			}
			for _, dep := range domain.NormalizeDependencies(t.Dependencies, t.ID) {
				if n, ok := encodeTaskRef(dep, i, siblings, taskIdx, stageIdx); ok {
					tp.Dependencies = append(tp.Dependencies, n)
				}
			}
			sp.Tasks = append(sp.Tasks, tp)
		}
		out = append(out, sp)
	}
	return out
}

func encodeTaskRef(dep string, stage int, siblings map[string]int, tasks map[string]taskPos, stages map[string]int) (int, bool) {
	if j, ok := siblings[dep]; ok {
		return taskCode(stage, j)
	}
	if pos, ok := tasks[dep]; ok {
		return taskCode(pos.stage, pos.task)
	}
	if k, ok := stages[dep]; ok {
		return -(k + 1), true
	}
	return 0, false
}

func taskCode(stage, task int) (int, bool) {
	if task >= TaskStride {
		return 0, false
	}
	return stage*TaskStride + task, true
}

// DecodeSave rebuilds stages from a save payload, giving every stage and
// task a fresh id from newID and mapping positions back onto those ids.
// Positions that point outside the payload are dropped.
func DecodeSave(payload []StagePayload, newID func() string) []domain.Stage {
	stages := make([]domain.Stage, len(payload))
	for i, sp := range payload {
		stages[i] = domain.Stage{
			ID:           newID(),
			Name:         sp.Name,
			Duration:     sp.Duration,
			IsCompleted:  sp.IsCompleted,
			Responsibles: nonNil(sp.Responsibles),
			Feedback:     deref(sp.Feedback),
			Dependencies: []string{},
			Tasks:        make([]domain.Task, len(sp.Tasks)),
		}
		for j, tp := range sp.Tasks {
			stages[i].Tasks[j] = domain.Task{
				ID:           newID(),
				Name:         tp.Name,
				Duration:     tp.Duration,
				IsCompleted:  tp.IsCompleted,
				Responsibles: nonNil(tp.Responsibles),
				Feedback:     deref(tp.Feedback),
				Dependencies: []string{},
			}
		}
	}

	for i, sp := range payload {
		for _, k := range sp.Dependencies {
			if k >= 0 && k < len(stages) {
				stages[i].Dependencies = append(stages[i].Dependencies, stages[k].ID)
			}
		}
		for j, tp := range sp.Tasks {
			deps := stages[i].Tasks[j].Dependencies
			for _, n := range tp.Dependencies {
				if id, ok := decodeTaskRef(n, stages); ok {
					deps = append(deps, id)
				}
			}
			stages[i].Tasks[j].Dependencies = deps
		}
	}
	return stages
}

func decodeTaskRef(n int, stages []domain.Stage) (string, bool) {
	if n < 0 {
		k := -(n + 1)
		if k < len(stages) {
			return stages[k].ID, true
		}
		return "", false
	}
	si, ti := n/TaskStride, n%TaskStride
	if si < len(stages) && ti < len(stages[si].Tasks) {
		return stages[si].Tasks[ti].ID, true
	}
	return "", false
}
