package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/revgantt/internal/domain"
	"github.com/alexanderramin/revgantt/internal/editor"
)

// resolveProjectID accepts a full project id or a unique prefix of one.
func resolveProjectID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("project ID is required")
	}
	projects, err := app.Projects.List(ctx)
	if err != nil {
		return "", err
	}

	var matches []string
	for _, p := range projects {
		if p.ID == input {
			return p.ID, nil
		}
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("project not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("project ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveTeamID accepts a team id, a unique id prefix, or a team name.
func resolveTeamID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("team is required")
	}
	teams, err := app.Teams.List(ctx)
	if err != nil {
		return "", err
	}

	var matches []string
	for _, t := range teams {
		if t.ID == input {
			return t.ID, nil
		}
		if strings.EqualFold(t.Name, input) || strings.HasPrefix(t.ID, input) {
			matches = append(matches, t.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("team not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("team %q is ambiguous (%d matches)", input, len(matches))
	}
}

// positional parses "S3", "s3" or "3" into index 2.
func positional(ref, prefix string) (int, bool) {
	digits := ref
	if len(ref) > len(prefix) && strings.EqualFold(ref[:len(prefix)], prefix) {
		digits = ref[len(prefix):]
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 {
		return 0, false
	}
	return n - 1, true
}

// stageID resolves a positional stage reference, or a raw stage id, against
// the snapshot's display order.
func stageID(p domain.Plan, ref string) (string, error) {
	if i, ok := positional(ref, "S"); ok && i < len(p.Stages) {
		return p.Stages[i].ID, nil
	}
	if p.FindStage(ref) >= 0 {
		return ref, nil
	}
	return "", fmt.Errorf("%w: %q", editor.ErrStageNotFound, ref)
}

func stageIDs(p domain.Plan, refs []string) ([]string, error) {
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		id, err := stageID(p, ref)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

// taskID resolves a positional task reference, or a raw task id, within
// one stage.
func taskID(s domain.Stage, ref string) (string, error) {
	if j, ok := positional(ref, "T"); ok && j < len(s.Tasks) {
		return s.Tasks[j].ID, nil
	}
	if s.FindTask(ref) >= 0 {
		return ref, nil
	}
	return "", fmt.Errorf("%w: %q in stage %s", editor.ErrTaskNotFound, ref, s.Name)
}

func taskIDs(s domain.Stage, refs []string) ([]string, error) {
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		id, err := taskID(s, ref)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

// stageOf resolves ref and returns the stage itself.
func stageOf(p domain.Plan, ref string) (domain.Stage, error) {
	id, err := stageID(p, ref)
	if err != nil {
		return domain.Stage{}, err
	}
	return p.Stages[p.FindStage(id)], nil
}
