package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/revgantt/internal/cli"
	"github.com/alexanderramin/revgantt/internal/config"
	"github.com/alexanderramin/revgantt/internal/db"
	"github.com/alexanderramin/revgantt/internal/repository"
	"github.com/alexanderramin/revgantt/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := cfg.NewLogger(os.Stderr)

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	projectRepo := repository.NewSQLiteProjectRepo(database)
	teamRepo := repository.NewSQLiteTeamRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	observer := service.NewLogUseCaseObserver(logger)
	app := &cli.App{
		Projects:      service.NewProjectService(projectRepo, observer),
		Teams:         service.NewTeamService(teamRepo, uow, observer),
		Plans:         service.NewPlanService(uow, observer),
		Imports:       service.NewImportService(uow, observer),
		Logger:        logger,
		Listen:        cfg.Listen,
		AutosaveDelay: cfg.AutosaveDelay,
		IsTerminal:    cli.TerminalWriter,
	}

	// Execute root command
	return cli.NewRootCmd(app).Execute()
}
