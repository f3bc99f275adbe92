package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/alexanderramin/timereport/internal/api"
	"github.com/alexanderramin/timereport/internal/cli"
	"github.com/alexanderramin/timereport/internal/client"
	"github.com/alexanderramin/timereport/internal/config"
	"github.com/alexanderramin/timereport/internal/db"
	"github.com/alexanderramin/timereport/internal/export"
	"github.com/alexanderramin/timereport/internal/holidays"
	"github.com/alexanderramin/timereport/internal/repository"
	"github.com/alexanderramin/timereport/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfgPath := config.DefaultPath()
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	live := config.NewLive(cfg)

	level := new(slog.LevelVar)
	lvl, _ := cfg.SlogLevel()
	level.Set(lvl)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	// Times, export paths and the log level follow edits to the file.
	// Database and listen address need a restart.
	if err := config.Watch(ctx, cfgPath, live, logger, func(c config.Config) {
		if l, err := c.SlogLevel(); err == nil {
			level.Set(l)
		}
	}); err != nil {
		logger.Debug("config watch disabled", "path", cfgPath, "error", err)
	}

	database, err := db.OpenDB(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	employeeRepo := repository.NewSQLiteEmployeeRepo(database)
	reportRepo := repository.NewSQLiteReportRepo(database)
	itemRepo := repository.NewSQLiteItemRepo(database)
	weekRepo := repository.NewSQLiteWeekRepo(database)
	holidayRepo := repository.NewSQLiteHolidayRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if lvl <= slog.LevelDebug {
		observer = service.NewLogUseCaseObserver(os.Stderr)
	}

	holidaySource := holidays.NewClient(holidays.Config{
		PublicURL: cfg.Holidays.PublicURL,
		SchoolURL: cfg.Holidays.SchoolURL,
		State:     cfg.Holidays.State,
		Timeout:   cfg.Client.Timeout,
	})

	// Wire services
	calendar := service.NewCalendarService(holidayRepo, weekRepo, holidaySource, uow, observer)
	svc := api.Services{
		Items: service.NewItemService(itemRepo, calendar, uow, func() service.RowDefaults {
			c := live.Load()
			return service.RowDefaults{Start: c.DefaultStart(), End: c.DefaultEnd()}
		}, observer),
		Reports: service.NewReportService(reportRepo, itemRepo, func() service.TimeWindow {
			c := live.Load()
			return service.TimeWindow{Min: c.MinTime(), Max: c.MaxTime()}
		}, observer),
		Employees: service.NewEmployeeService(employeeRepo, itemRepo),
		Calendar:  calendar,
		Export: service.NewExportService(reportRepo, itemRepo,
			export.XeLaTeX{Binary: cfg.Export.XeLaTeX},
			func() string { return live.Load().Export.Dir },
			logger, observer),
	}

	app := &cli.App{
		Items:     svc.Items,
		Reports:   svc.Reports,
		Employees: svc.Employees,
		Calendar:  svc.Calendar,
		Export:    svc.Export,
		Backend:   client.New(cfg.Client.APIURL, cfg.Client.Timeout),
		Serve: func(ctx context.Context, addr string) error {
			return api.NewServer(svc, logger, cfg.Server.FrontendDir).ListenAndServe(ctx, addr)
		},
		Config: live,
		Logger: logger,
	}

	// Prompts for missing arguments only on a terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.ExecuteContext(ctx)
}
