package scheduler

// VisitState is the per-node marker kept by a Walker.
type VisitState int

const (
	Unvisited VisitState = iota
	InProgress
	Done
)

// Walker is the depth-first traversal shared by the scheduling and ordering
// passes. It visits a node's neighbours before finalizing the node, finalizes
// every reachable node exactly once, and reports (instead of following) an
// edge back into a node that is still in progress.
//
// A Walker holds the state of one pass; create a new one per pass.
type Walker struct {
	state     map[string]VisitState
	neighbors func(id string) []string
	finalize  func(id string)
	onCycle   func(from, to string)
	stack     []string
}

// NewWalker builds a Walker. neighbors must return ids in a deterministic
// order. onCycle may be nil.
func NewWalker(neighbors func(id string) []string, finalize func(id string), onCycle func(from, to string)) *Walker {
	return &Walker{
		state:     make(map[string]VisitState),
		neighbors: neighbors,
		finalize:  finalize,
		onCycle:   onCycle,
	}
}

// Visit walks id and everything reachable from it.
func (w *Walker) Visit(id string) {
	switch w.state[id] {
	case Done:
		return
	case InProgress:
		if w.onCycle != nil {
			from := ""
			if n := len(w.stack); n > 0 {
				from = w.stack[n-1]
			}
			w.onCycle(from, id)
		}
		return
	}

	w.state[id] = InProgress
	w.stack = append(w.stack, id)
	for _, next := range w.neighbors(id) {
		w.Visit(next)
	}
	w.stack = w.stack[:len(w.stack)-1]

	// Still marked in progress while finalizing, so a finalize that
	// re-enters the walker cannot finalize id twice.
	w.finalize(id)
	w.state[id] = Done
}

// State returns the current marker of id.
func (w *Walker) State(id string) VisitState {
	return w.state[id]
}
