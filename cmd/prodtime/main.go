package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/alexanderramin/prodtime/internal/cli"
	"github.com/alexanderramin/prodtime/internal/cli/formatter"
	"github.com/alexanderramin/prodtime/internal/config"
	"github.com/alexanderramin/prodtime/internal/db"
	"github.com/alexanderramin/prodtime/internal/repository"
	"github.com/alexanderramin/prodtime/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	database, err := db.OpenDB(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	taskRepo := repository.NewSQLiteTaskRepo(database)
	sessionRepo := repository.NewSQLiteSessionRepo(database)
	costRepo := repository.NewSQLiteCostRepo(database)
	analysisRepo := repository.NewSQLiteCostAnalysisRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	app := &cli.App{
		Tasks:         service.NewTaskService(taskRepo),
		Sessions:      service.NewSessionService(sessionRepo),
		Import:        service.NewImportService(uow, nil, observers...),
		Gaps:          service.NewGapService(sessionRepo, taskRepo, observers...),
		Costs:         service.NewCostService(costRepo, analysisRepo, sessionRepo, uow, cfg.RecalcWorkers, observers...),
		Trend:         service.NewTrendService(sessionRepo, taskRepo, observers...),
		Schedule:      cfg.Schedule,
		MinGapMinutes: cfg.MinGapMinutes,
	}

	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		formatter.DisableColor()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
