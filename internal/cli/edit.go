package cli

import (
	"fmt"

	"github.com/alexanderramin/revgantt/internal/cli/formatter"
	"github.com/alexanderramin/revgantt/internal/domain"
	"github.com/alexanderramin/revgantt/internal/editor"
	"github.com/alexanderramin/revgantt/internal/service"
	"github.com/spf13/cobra"
)

// editBuilder turns command arguments into an edit. It sees the loaded,
// ordered snapshot so positional references resolve the way the schedule
// command shows them.
type editBuilder func(p domain.Plan) (editor.Edit, error)

// runEdit loads a project, applies one edit, saves the tree and prints the
// recomputed schedule.
func runEdit(cmd *cobra.Command, app *App, projectRef string, build editBuilder) error {
	ctx := cmd.Context()
	projectID, err := resolveProjectID(ctx, app, projectRef)
	if err != nil {
		return err
	}
	loaded, err := app.Plans.Load(ctx, projectID)
	if err != nil {
		return fmt.Errorf("loading project: %w", err)
	}
	edit, err := build(loaded.Plan)
	if err != nil {
		return err
	}

	session := service.NewEditSession(loaded, app.Plans, service.WithLogger(app.logger()))
	defer session.Close()

	result, err := session.Apply(ctx, edit)
	if err != nil {
		return err
	}
	if err := session.Flush(ctx); err != nil {
		return err
	}
	printPlan(cmd, result)
	return nil
}

func printPlan(cmd *cobra.Command, result editor.Result) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, formatter.FormatSchedule(result.Plan))
	if w := formatter.FormatWarnings(result.Warnings); w != "" {
		fmt.Fprint(out, w)
	}
}
