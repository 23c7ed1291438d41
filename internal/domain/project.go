package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidProject is wrapped by every project validation failure.
var ErrInvalidProject = errors.New("invalid project")

type Project struct {
	ID          string
	TeamID      string
	Name        string
	Description string
	Deadline    time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the fields a project needs before it can be stored.
func (p *Project) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: project name is required", ErrInvalidProject)
	}
	if p.Deadline.IsZero() {
		return fmt.Errorf("%w: project deadline is required", ErrInvalidProject)
	}
	return nil
}

// DisplayID returns the first 8 characters of the project ID.
func (p *Project) DisplayID() string {
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}

// DeadlineEnd is the last schedulable instant of the project.
func (p *Project) DeadlineEnd() time.Time {
	return EndOfDay(p.Deadline)
}

// Degenerate reports whether the deadline falls on a day before the creation
// day. Such a project has a single-day schedulable range.
func (p *Project) Degenerate() bool {
	if p.CreatedAt.IsZero() || p.Deadline.IsZero() {
		return false
	}
	return EndOfDay(p.Deadline).Before(StartOfDay(p.CreatedAt))
}
