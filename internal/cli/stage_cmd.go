package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/revgantt/internal/cli/formatter"
	"github.com/alexanderramin/revgantt/internal/domain"
	"github.com/alexanderramin/revgantt/internal/editor"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var errNothingToChange = errors.New("nothing to change: pass at least one field flag")

func newStageCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stage",
		Short: "Edit the stages of a project",
		Long: "Edit the stages of a project. Stages are referred to by their position\n" +
			"in the schedule (S1, S2 or just 1, 2) or by id.",
	}

	cmd.AddCommand(
		newStageAddCmd(app),
		newStageEditCmd(app),
		newStageRemoveCmd(app),
		newStageDepsCmd(app),
		newStageLinkCmd(app),
		newStageDoneCmd(app),
		newStageCandidatesCmd(app),
	)
	return cmd
}

// itemFlags are the fields shared by stages and tasks.
type itemFlags struct {
	name         string
	duration     int
	responsibles []string
	feedback     string
	after        []string
}

func (f *itemFlags) register(fs *pflag.FlagSet, afterUsage string) {
	fs.StringVar(&f.name, "name", "", "Name")
	fs.IntVar(&f.duration, "duration", 1, "Duration in whole days")
	fs.StringSliceVar(&f.responsibles, "responsible", nil, "Responsible member (repeatable)")
	fs.StringVar(&f.feedback, "feedback", "", "Feedback note")
	if afterUsage != "" {
		fs.StringSliceVar(&f.after, "after", nil, afterUsage)
	}
}

// patch builds an editor.Patch from the flags the user actually passed.
func (f *itemFlags) patch(fs *pflag.FlagSet) (editor.Patch, error) {
	var p editor.Patch
	if fs.Changed("name") {
		p.Name = &f.name
	}
	if fs.Changed("duration") {
		p.Duration = &f.duration
	}
	if fs.Changed("responsible") {
		p.Responsibles = &f.responsibles
	}
	if fs.Changed("feedback") {
		p.Feedback = &f.feedback
	}
	if p == (editor.Patch{}) {
		return p, errNothingToChange
	}
	return p, nil
}

func newStageAddCmd(app *App) *cobra.Command {
	var f itemFlags

	cmd := &cobra.Command{
		Use:   "add <project>",
		Short: "Append a stage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, app, args[0], func(p domain.Plan) (editor.Edit, error) {
				deps, err := stageIDs(p, f.after)
				if err != nil {
					return nil, err
				}
				return editor.AddStage(editor.StageDraft{
					Name:         f.name,
					Duration:     f.duration,
					Responsibles: f.responsibles,
					Feedback:     f.feedback,
					Dependencies: deps,
				}), nil
			})
		},
	}

	f.register(cmd.Flags(), "Stages this one depends on (S1,S2)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newStageEditCmd(app *App) *cobra.Command {
	var f itemFlags

	cmd := &cobra.Command{
		Use:   "edit <project> <stage>",
		Short: "Change the fields of a stage",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := f.patch(cmd.Flags())
			if err != nil {
				return err
			}
			return runEdit(cmd, app, args[0], func(p domain.Plan) (editor.Edit, error) {
				id, err := stageID(p, args[1])
				if err != nil {
					return nil, err
				}
				return editor.UpdateStage(id, patch), nil
			})
		},
	}

	f.register(cmd.Flags(), "")
	return cmd
}

func newStageRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <project> <stage>",
		Short: "Delete a stage and its tasks",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, app, args[0], func(p domain.Plan) (editor.Edit, error) {
				id, err := stageID(p, args[1])
				if err != nil {
					return nil, err
				}
				return editor.DeleteStage(id), nil
			})
		},
	}
}

func newStageDepsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "deps <project> <stage> [stage...]",
		Short: "Replace the dependencies of a stage",
		Long:  "Replace the dependencies of a stage. Passing no dependencies clears them.",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, app, args[0], func(p domain.Plan) (editor.Edit, error) {
				id, err := stageID(p, args[1])
				if err != nil {
					return nil, err
				}
				deps, err := stageIDs(p, args[2:])
				if err != nil {
					return nil, err
				}
				return editor.SetStageDependencies(id, deps), nil
			})
		},
	}
}

func newStageLinkCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "link <project> <dragged> <target>",
		Short: "Make the target stage depend on the dragged one",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, app, args[0], func(p domain.Plan) (editor.Edit, error) {
				dragged, err := stageID(p, args[1])
				if err != nil {
					return nil, err
				}
				target, err := stageID(p, args[2])
				if err != nil {
					return nil, err
				}
				return editor.LinkStage(dragged, target), nil
			})
		},
	}
}

func newStageDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <project> <stage>",
		Short: "Toggle the completion of a stage",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, app, args[0], func(p domain.Plan) (editor.Edit, error) {
				id, err := stageID(p, args[1])
				if err != nil {
					return nil, err
				}
				return editor.ToggleStageCompletion(id), nil
			})
		},
	}
}

func newStageCandidatesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "candidates <project> <stage>",
		Short: "List the stages this stage may depend on",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			loaded, err := app.Plans.Load(ctx, projectID)
			if err != nil {
				return err
			}
			id, err := stageID(loaded.Plan, args[1])
			if err != nil {
				return err
			}
			cands, err := editor.AvailableStageDependencies(loaded.Plan, id)
			if err != nil {
				return err
			}

			refs := make(map[string]string, len(loaded.Plan.Stages))
			for i, s := range loaded.Plan.Stages {
				refs[s.ID] = formatter.StageRef(i)
			}
			printCandidates(cmd, cands, refs)
			return nil
		},
	}
}

func printCandidates(cmd *cobra.Command, cands []editor.Candidate, refs map[string]string) {
	out := cmd.OutOrStdout()
	for _, c := range cands {
		mark := "[ ]"
		switch {
		case c.Disabled:
			mark = "[-]"
		case c.Selected:
			mark = "[x]"
		}
		fmt.Fprintf(out, "%s %s %s\n", mark, refs[c.ID], c.Name)
	}
}
