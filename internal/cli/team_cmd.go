package cli

import (
	"fmt"

	"github.com/alexanderramin/revgantt/internal/cli/formatter"
	"github.com/alexanderramin/revgantt/internal/domain"
	"github.com/spf13/cobra"
)

func newTeamCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Manage teams and their members",
	}

	member := &cobra.Command{
		Use:   "member",
		Short: "Manage the members of a team",
	}
	member.AddCommand(
		newTeamMemberAddCmd(app),
		newTeamMemberRemoveCmd(app),
		newTeamMemberListCmd(app),
	)

	cmd.AddCommand(
		newTeamAddCmd(app),
		newTeamListCmd(app),
		newTeamRemoveCmd(app),
		member,
	)
	return cmd
}

func newTeamAddCmd(app *App) *cobra.Command {
	var name string
	var members []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a team",
		RunE: func(cmd *cobra.Command, args []string) error {
			t := &domain.Team{Name: name, Members: members}
			if err := app.Teams.Create(cmd.Context(), t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created team %s (%s)\n", t.Name, t.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Team name")
	cmd.Flags().StringSliceVar(&members, "member", nil, "Initial member (repeatable)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newTeamListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List teams",
		RunE: func(cmd *cobra.Command, args []string) error {
			teams, err := app.Teams.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(teams) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No teams found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTeamList(teams))
			return nil
		},
	}
}

func newTeamRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <team>",
		Short: "Delete a team and every project it owns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveTeamID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if err := app.Teams.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed team %s\n", id)
			return nil
		},
	}
}

func newTeamMemberAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <team> <name>",
		Short: "Add a member to a team",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveTeamID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if err := app.Teams.AddMember(cmd.Context(), id, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", args[1])
			return nil
		},
	}
}

func newTeamMemberRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <team> <name>",
		Short: "Remove a member from a team",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveTeamID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if err := app.Teams.RemoveMember(cmd.Context(), id, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[1])
			return nil
		},
	}
}

func newTeamMemberListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list <team>",
		Short: "List the members of a team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveTeamID(ctx, app, args[0])
			if err != nil {
				return err
			}
			team, err := app.Teams.GetByID(ctx, id)
			if err != nil {
				return err
			}
			members, err := app.Teams.Members(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatMembers(team.Name, members))
			return nil
		},
	}
}
