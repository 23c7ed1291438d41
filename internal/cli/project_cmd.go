package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/revgantt/internal/cli/formatter"
	"github.com/alexanderramin/revgantt/internal/domain"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectShowCmd(app),
		newProjectUpdateCmd(app),
		newProjectRemoveCmd(app),
	)

	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var name, team, description string
	var deadline, created time.Time

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p := &domain.Project{
				Name:        name,
				Description: description,
				Deadline:    deadline,
				CreatedAt:   created,
			}
			if team != "" {
				teamID, err := resolveTeamID(ctx, app, team)
				if err != nil {
					return err
				}
				p.TeamID = teamID
			}
			if p.CreatedAt.IsZero() {
				p.CreatedAt = time.Now().UTC()
			}

			if err := app.Projects.Create(ctx, p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s (%s)\n", p.Name, p.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&team, "team", "", "Team id or name")
	cmd.Flags().StringVar(&description, "description", "", "Project description")
	dateVar(cmd.Flags(), &deadline, "deadline", "Deadline (YYYY-MM-DD)")
	dateVar(cmd.Flags(), &created, "created", "Creation day (YYYY-MM-DD, default today)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("deadline")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	var team string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var (
				projects []*domain.Project
				err      error
			)
			if team != "" {
				teamID, rerr := resolveTeamID(ctx, app, team)
				if rerr != nil {
					return rerr
				}
				projects, err = app.Projects.ListByTeam(ctx, teamID)
			} else {
				projects, err = app.Projects.List(ctx)
			}
			if err != nil {
				return err
			}

			if len(projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No projects found.")
				return nil
			}

			teams, err := app.Teams.List(ctx)
			if err != nil {
				return err
			}
			names := make(map[string]string, len(teams))
			for _, t := range teams {
				names[t.ID] = t.Name
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectList(projects, names))
			return nil
		},
	}

	cmd.Flags().StringVar(&team, "team", "", "Only projects of this team")
	return cmd
}

func newProjectShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <project>",
		Short: "Show a project and a summary of its plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			result, err := app.Plans.Load(ctx, id)
			if err != nil {
				return err
			}

			teamName := ""
			if teamID := result.Plan.Project.TeamID; teamID != "" {
				if team, err := app.Teams.GetByID(ctx, teamID); err == nil {
					teamName = team.Name
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectCard(result.Plan, teamName))
			return nil
		},
	}
}

func newProjectUpdateCmd(app *App) *cobra.Command {
	var name, description string
	var deadline time.Time

	cmd := &cobra.Command{
		Use:   "update <project>",
		Short: "Update a project's name, description or deadline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Projects.GetByID(ctx, id)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				p.Name = name
			}
			if cmd.Flags().Changed("description") {
				p.Description = description
			}
			if cmd.Flags().Changed("deadline") {
				p.Deadline = deadline
			}

			if err := app.Projects.Update(ctx, p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated project %s\n", p.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	dateVar(cmd.Flags(), &deadline, "deadline", "New deadline (YYYY-MM-DD)")
	return cmd
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <project>",
		Short: "Delete a project with its stages and tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Projects.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed project %s\n", id)
			return nil
		},
	}
}
