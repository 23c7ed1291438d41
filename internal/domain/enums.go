package domain

// EntityKind names the two schedulable node types.
type EntityKind string

const (
	EntityStage EntityKind = "stage"
	EntityTask  EntityKind = "task"
)

// MinDuration is the shortest schedulable item, in days.
const MinDuration = 1

// ValidDuration reports whether d is a schedulable whole-day duration.
func ValidDuration(d int) bool {
	return d >= MinDuration
}
