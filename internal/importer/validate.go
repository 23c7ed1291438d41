package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/revgantt/internal/domain"
)

const dateLayout = "2006-01-02"

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	errs = append(errs, validateProject(&schema.Project)...)
	errs = append(errs, validateDefaults(schema.Defaults)...)

	stageRefs := make(map[string]bool, len(schema.Stages))
	for i, s := range schema.Stages {
		prefix := fmt.Sprintf("stages[%d]", i)
		switch {
		case s.Ref == "":
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		case stageRefs[s.Ref]:
			errs = append(errs, fmt.Errorf("%s.ref %q is duplicated", prefix, s.Ref))
		default:
			stageRefs[s.Ref] = true
		}
	}

	for i, s := range schema.Stages {
		prefix := fmt.Sprintf("stages[%d]", i)
		errs = append(errs, validateItem(prefix, s.Ref, s.Name, s.Duration, s.After, stageRefs)...)
		errs = append(errs, validateTasks(prefix, s.Tasks)...)
	}

	return errs
}

func validateProject(p *ProjectImport) []error {
	var errs []error

	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, fmt.Errorf("project.name is required"))
	}
	if p.Deadline == "" {
		errs = append(errs, fmt.Errorf("project.deadline is required"))
	} else if _, err := time.Parse(dateLayout, p.Deadline); err != nil {
		errs = append(errs, fmt.Errorf("project.deadline: invalid date format %q (expected YYYY-MM-DD)", p.Deadline))
	}
	if p.Created != nil {
		if _, err := time.Parse(dateLayout, *p.Created); err != nil {
			errs = append(errs, fmt.Errorf("project.created: invalid date format %q (expected YYYY-MM-DD)", *p.Created))
		}
	}

	return errs
}

func validateDefaults(d *DefaultsImport) []error {
	if d == nil || d.Duration == nil {
		return nil
	}
	if !domain.ValidDuration(*d.Duration) {
		return []error{fmt.Errorf("defaults.duration must be at least 1 day")}
	}
	return nil
}

func validateTasks(stagePrefix string, tasks []TaskImport) []error {
	var errs []error

	refs := make(map[string]bool, len(tasks))
	for j, t := range tasks {
		prefix := fmt.Sprintf("%s.tasks[%d]", stagePrefix, j)
		switch {
		case t.Ref == "":
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		case refs[t.Ref]:
			errs = append(errs, fmt.Errorf("%s.ref %q is duplicated", prefix, t.Ref))
		default:
			refs[t.Ref] = true
		}
	}
	for j, t := range tasks {
		prefix := fmt.Sprintf("%s.tasks[%d]", stagePrefix, j)
		errs = append(errs, validateItem(prefix, t.Ref, t.Name, t.Duration, t.After, refs)...)
	}

	return errs
}

// validateItem checks the fields stages and tasks share. known holds the
// refs After may name.
func validateItem(prefix, ref, name string, duration *int, after []string, known map[string]bool) []error {
	var errs []error

	if strings.TrimSpace(name) == "" {
		errs = append(errs, fmt.Errorf("%s.name is required", prefix))
	}
	if duration != nil && !domain.ValidDuration(*duration) {
		errs = append(errs, fmt.Errorf("%s.duration must be at least 1 day, got %d", prefix, *duration))
	}
	for _, dep := range after {
		switch {
		case dep == ref:
			errs = append(errs, fmt.Errorf("%s.after: %q cannot depend on itself", prefix, dep))
		case !known[dep]:
			errs = append(errs, fmt.Errorf("%s.after: unknown ref %q", prefix, dep))
		}
	}

	return errs
}
