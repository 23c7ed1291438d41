package cli

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alexanderramin/revgantt/internal/cli/formatter"
	"github.com/alexanderramin/revgantt/internal/service"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects service.ProjectService
	Teams    service.TeamService
	Plans    service.PlanService
	Imports  service.ImportService
	Logger   *slog.Logger

	// Listen and AutosaveDelay configure the serve command.
	Listen        string
	AutosaveDelay time.Duration

	// IsTerminal reports whether w is an interactive terminal. Output is
	// only coloured when it is. Nil means TerminalWriter.
	IsTerminal func(w io.Writer) bool
}

// TerminalWriter reports whether w is a file attached to a terminal.
func TerminalWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (a *App) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return a.Logger
}

// NewRootCmd creates the top-level "revgantt" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var noColor bool

	root := &cobra.Command{
		Use:           "revgantt",
		Short:         "Reverse-Gantt project planner",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			isTerminal := app.IsTerminal
			if isTerminal == nil {
				isTerminal = TerminalWriter
			}
			formatter.UseColor(!noColor && isTerminal(cmd.OutOrStdout()))
		},
	}
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable coloured output")

	root.AddCommand(
		newProjectCmd(app),
		newTeamCmd(app),
		newStageCmd(app),
		newTaskCmd(app),
		newScheduleCmd(app),
		newExportCmd(app),
		newImportCmd(app),
		newServeCmd(app),
	)

	return root
}
