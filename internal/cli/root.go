package cli

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/timereport/internal/api"
	"github.com/alexanderramin/timereport/internal/config"
	"github.com/alexanderramin/timereport/internal/domain"
	"github.com/alexanderramin/timereport/internal/service"
	"github.com/alexanderramin/timereport/internal/worksheet"
)

// Backend is the REST surface the TUI works against.
type Backend interface {
	worksheet.Backend
	Reports(ctx context.Context) ([]*domain.Report, error)
	CreateReport(ctx context.Context, title string) (*domain.Report, error)
	Employees(ctx context.Context) ([]*domain.Employee, error)
	AddEmployee(ctx context.Context, name string) (int64, error)
	RenameEmployee(ctx context.Context, id int64, name string) error
	DeleteEmployee(ctx context.Context, id int64) error
	Summary(ctx context.Context, reportID int64) (api.Summary, error)
	NextSchoolDay(ctx context.Context, day time.Time) (time.Time, error)
}

// App holds references to the services and clients used by CLI commands.
type App struct {
	Items     service.ItemService
	Reports   service.ReportService
	Employees service.EmployeeService
	Calendar  service.CalendarService
	Export    service.ExportService

	// Backend is the REST client the TUI edits through.
	Backend Backend

	// Serve runs the REST server on addr until ctx is cancelled.
	Serve func(ctx context.Context, addr string) error

	Config *config.Live
	Logger *slog.Logger

	// IsInteractive reports whether stdin is a terminal. Prompts for
	// missing arguments are only shown when it returns true.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.Logger
}

func (a *App) config() config.Config {
	if a.Config == nil {
		return config.DefaultConfig()
	}
	return a.Config.Load()
}

// NewRootCmd creates the top-level "timereport" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "timereport",
		Short:         "Caregiver hours billing",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCmd(app),
		newReportCmd(app),
		newItemCmd(app),
		newEmployeeCmd(app),
		newHolidayCmd(app),
		newWeekCmd(app),
		newTUICmd(app),
	)

	return root
}
