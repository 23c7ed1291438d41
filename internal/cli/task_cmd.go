package cli

import (
	"github.com/alexanderramin/revgantt/internal/cli/formatter"
	"github.com/alexanderramin/revgantt/internal/domain"
	"github.com/alexanderramin/revgantt/internal/editor"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Edit the tasks of a stage",
		Long: "Edit the tasks of a stage. Tasks are referred to by their position in\n" +
			"their stage (T1, T2 or just 1, 2) or by id.",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskEditCmd(app),
		newTaskRemoveCmd(app),
		newTaskDepsCmd(app),
		newTaskLinkCmd(app),
		newTaskDoneCmd(app),
		newTaskCandidatesCmd(app),
	)
	return cmd
}

// taskEdit resolves the stage and task references before building the edit.
func taskEdit(stageRef, taskRef string, build func(s domain.Stage, taskID string) (editor.Edit, error)) editBuilder {
	return func(p domain.Plan) (editor.Edit, error) {
		s, err := stageOf(p, stageRef)
		if err != nil {
			return nil, err
		}
		id, err := taskID(s, taskRef)
		if err != nil {
			return nil, err
		}
		return build(s, id)
	}
}

func newTaskAddCmd(app *App) *cobra.Command {
	var f itemFlags

	cmd := &cobra.Command{
		Use:   "add <project> <stage>",
		Short: "Append a task to a stage",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, app, args[0], func(p domain.Plan) (editor.Edit, error) {
				s, err := stageOf(p, args[1])
				if err != nil {
					return nil, err
				}
				deps, err := taskIDs(s, f.after)
				if err != nil {
					return nil, err
				}
				return editor.AddTask(s.ID, editor.TaskDraft{
					Name:         f.name,
					Duration:     f.duration,
					Responsibles: f.responsibles,
					Feedback:     f.feedback,
					Dependencies: deps,
				}), nil
			})
		},
	}

	f.register(cmd.Flags(), "Sibling tasks this one depends on (T1,T2)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newTaskEditCmd(app *App) *cobra.Command {
	var f itemFlags

	cmd := &cobra.Command{
		Use:   "edit <project> <stage> <task>",
		Short: "Change the fields of a task",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := f.patch(cmd.Flags())
			if err != nil {
				return err
			}
			return runEdit(cmd, app, args[0], taskEdit(args[1], args[2], func(s domain.Stage, id string) (editor.Edit, error) {
				return editor.UpdateTask(s.ID, id, patch), nil
			}))
		},
	}

	f.register(cmd.Flags(), "")
	return cmd
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <project> <stage> <task>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, app, args[0], taskEdit(args[1], args[2], func(s domain.Stage, id string) (editor.Edit, error) {
				return editor.DeleteTask(s.ID, id), nil
			}))
		},
	}
}

func newTaskDepsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "deps <project> <stage> <task> [task...]",
		Short: "Replace the dependencies of a task",
		Long:  "Replace the dependencies of a task with sibling tasks. Passing none clears them.",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, app, args[0], taskEdit(args[1], args[2], func(s domain.Stage, id string) (editor.Edit, error) {
				deps, err := taskIDs(s, args[3:])
				if err != nil {
					return nil, err
				}
				return editor.SetTaskDependencies(s.ID, id, deps), nil
			}))
		},
	}
}

func newTaskLinkCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "link <project> <stage> <dragged> <target>",
		Short: "Make the target task depend on the dragged one",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, app, args[0], taskEdit(args[1], args[3], func(s domain.Stage, target string) (editor.Edit, error) {
				dragged, err := taskID(s, args[2])
				if err != nil {
					return nil, err
				}
				return editor.LinkTask(s.ID, dragged, target), nil
			}))
		},
	}
}

func newTaskDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <project> <stage> <task>",
		Short: "Toggle the completion of a task",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, app, args[0], taskEdit(args[1], args[2], func(s domain.Stage, id string) (editor.Edit, error) {
				return editor.ToggleTaskCompletion(s.ID, id), nil
			}))
		},
	}
}

func newTaskCandidatesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "candidates <project> <stage> <task>",
		Short: "List the sibling tasks this task may depend on",
		Args:  cobra.ExactArgs(3),
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
			s, err := stageOf(loaded.Plan, args[1])
			if err != nil {
				return err
			}
			id, err := taskID(s, args[2])
			if err != nil {
				return err
			}
			cands, err := editor.AvailableTaskDependencies(loaded.Plan, s.ID, id)
			if err != nil {
				return err
			}

			refs := make(map[string]string, len(s.Tasks))
			for j, t := range s.Tasks {
				refs[t.ID] = formatter.TaskRef(j)
			}
			printCandidates(cmd, cands, refs)
			return nil
		},
	}
}
