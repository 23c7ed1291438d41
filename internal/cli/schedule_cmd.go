package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/revgantt/internal/api"
	"github.com/alexanderramin/revgantt/internal/cli/formatter"
	"github.com/alexanderramin/revgantt/internal/service"
	"github.com/alexanderramin/revgantt/internal/wire"
	"github.com/spf13/cobra"
)

func newScheduleCmd(app *App) *cobra.Command {
	var chart bool

	cmd := &cobra.Command{
		Use:   "schedule <project>",
		Short: "Show the backward schedule of a project",
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

			if !chart {
				printPlan(cmd, result)
				return nil
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatter.FormatChart(result.Plan))
			if w := formatter.FormatWarnings(result.Warnings); w != "" {
				fmt.Fprint(out, "\n"+w)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&chart, "chart", false, "Render a day-grid chart instead of a table")
	return cmd
}

func newExportCmd(app *App) *cobra.Command {
	var loadShape bool

	cmd := &cobra.Command{
		Use:   "export <project>",
		Short: "Print a project's stages as JSON",
		Long: "Print a project's stages as JSON. The default is the positional save\n" +
			"payload; --load prints the scheduled load document with ids instead.",
		Args: cobra.ExactArgs(1),
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

			var doc any = wire.EncodeSave(result.Plan.Stages)
			if loadShape {
				doc = wire.FromPlan(result.Plan)
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(doc)
		},
	}

	cmd.Flags().BoolVar(&loadShape, "load", false, "Print the load document instead of the save payload")
	return cmd
}

func newServeCmd(app *App) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger := app.logger()
			return api.Start(ctx, api.StartOpts{
				Sessions: service.NewSessionManager(app.Plans, app.AutosaveDelay, logger),
				Teams:    app.Teams,
				Listen:   listen,
				Out:      cmd.OutOrStdout(),
				Logger:   logger,
			})
		},
	}

	cmd.Flags().StringVar(&listen, "listen", app.Listen, "Address to listen on")
	return cmd
}
