package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	var team string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Create a project with its stages from a JSON file",
		Long: "Create a project with its stages and tasks from a JSON file. Stages and\n" +
			"tasks refer to each other by the \"ref\" they are given in the file.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var teamID string
			if team != "" {
				id, err := resolveTeamID(ctx, app, team)
				if err != nil {
					return err
				}
				teamID = id
			}

			result, err := app.Imports.ImportProject(ctx, args[0], teamID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported project %s (%s): %d stages, %d tasks, %d dependencies\n",
				result.Project.Name, result.Project.ID, result.StageCount, result.TaskCount, result.DependencyCount)

			loaded, err := app.Plans.Load(ctx, result.Project.ID)
			if err != nil {
				return err
			}
			printPlan(cmd, loaded)
			return nil
		},
	}

	cmd.Flags().StringVar(&team, "team", "", "Team that owns the project (id or name)")
	return cmd
}
