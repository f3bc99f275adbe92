package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/timereport/internal/cli/formatter"
	"github.com/alexanderramin/timereport/internal/domain"
)

func parseID(s, what string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", what, s)
	}
	return id, nil
}

func newReportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "report",
		Aliases: []string{"abrechnung"},
		Short:   "Manage billing periods",
	}

	cmd.AddCommand(
		newReportListCmd(app),
		newReportCreateCmd(app),
		newReportUpdateCmd(app),
		newReportShowCmd(app),
		newReportSummaryCmd(app),
		newReportCheckCmd(app),
		newReportExportCmd(app),
	)
	return cmd
}

func newReportListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reports, err := app.Reports.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatReportList(reports))
			return nil
		},
	}
}

func newReportCreateCmd(app *App) *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:   "create [TITLE]",
		Short: "Open a report; without dates it follows the latest one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			title := strings.Join(args, " ")
			if title == "" {
				tmpl, err := app.Reports.Template(ctx)
				if err != nil {
					return err
				}
				if start == "" {
					start = domain.FormatDate(tmpl.StartDate)
				}
				if err := runForm(app, reportForm(&title, &start, &end)); err != nil {
					return err
				}
			}

			var r *domain.Report
			var err error
			if start == "" {
				r, err = app.Reports.CreateFromTitle(ctx, title)
			} else {
				r, err = reportFromFlags(0, title, start, end)
				if err == nil {
					err = app.Reports.Add(ctx, r)
				}
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created report %d %s (from %s)\n", r.ID, r.Title, domain.FormatDate(r.StartDate))
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD), blank for open")
	return cmd
}

func reportFromFlags(id int64, title, start, end string) (*domain.Report, error) {
	s, err := domain.ParseDate(start)
	if err != nil {
		return nil, err
	}
	e, err := domain.ParseDate(end)
	if err != nil {
		return nil, err
	}
	return &domain.Report{ID: id, Title: strings.TrimSpace(title), StartDate: s, EndDate: e}, nil
}

func newReportUpdateCmd(app *App) *cobra.Command {
	var title, start, end string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change a report's title or period",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID(args[0], "report")
			if err != nil {
				return err
			}
			r, err := app.Reports.Get(ctx, id)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("title") {
				r.Title = strings.TrimSpace(title)
			}
			if cmd.Flags().Changed("start") {
				if r.StartDate, err = domain.ParseDate(start); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("end") {
				if r.EndDate, err = domain.ParseDate(end); err != nil {
					return err
				}
			}
			if err := app.Reports.Update(ctx, r); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated report %d\n", r.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD), empty for open")
	return cmd
}

// reportArg resolves an optional report id argument, defaulting to the
// active report.
func reportArg(cmd *cobra.Command, app *App, args []string) (*domain.Report, error) {
	if len(args) == 0 {
		return app.Reports.Active(cmd.Context())
	}
	id, err := parseID(args[0], "report")
	if err != nil {
		return nil, err
	}
	return app.Reports.Get(cmd.Context(), id)
}

func newReportShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [ID]",
		Short: "Show the rows of a report",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := reportArg(cmd, app, args)
			if err != nil {
				return err
			}
			rows, err := app.Items.List(cmd.Context(), r.ID)
			if err != nil {
				return err
			}
			cfg := app.config()
			g := domain.Globals{
				ReportID: r.ID, Title: r.Title,
				MinDate: r.StartDate, MaxDate: r.EndDate,
				MinTime: cfg.MinTime(), MaxTime: cfg.MaxTime(),
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatRows(rows, g))
			return nil
		},
	}
}

func newReportSummaryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "summary [ID]",
		Short: "Show hours per employee",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := reportArg(cmd, app, args)
			if err != nil {
				return err
			}
			s, err := app.Reports.Summary(cmd.Context(), r.ID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSummary(*s))
			return nil
		},
	}
}

func newReportCheckCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check [ID]",
		Short: "List suspicious rows",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := reportArg(cmd, app, args)
			if err != nil {
				return err
			}
			warnings, err := app.Export.Check(cmd.Context(), r.ID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(warnings) == 0 {
				fmt.Fprintln(out, formatter.StyleGreen.Render("✔")+" No findings.")
				return nil
			}
			for _, w := range warnings {
				fmt.Fprintf(out, "%s %s %s: %s\n", formatter.StyleYellow.Render("!"),
					domain.FormatDate(w.Row.Date), w.Row.Name, w.Message)
			}
			return nil
		},
	}
}

func newReportExportCmd(app *App) *cobra.Command {
	var format, output string

	cmd := &cobra.Command{
		Use:   "export [ID]",
		Short: "Export a report as csv, tex or pdf",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			r, err := reportArg(cmd, app, args)
			if err != nil {
				return err
			}

			if format == "pdf" {
				if app.interactive() {
					stop := formatter.StartSpinner(cmd.ErrOrStderr(), "Running xelatex...")
					defer stop()
				}
				path, err := app.Export.PDF(ctx, r.ID)
				if err != nil {
					return err
				}
				app.logger().Info("pdf written", "report_id", r.ID, "path", path)
				fmt.Fprintln(cmd.OutOrStdout(), path)
				return nil
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			switch format {
			case "csv":
				return app.Export.WriteCSV(ctx, r.ID, w)
			case "tex":
				return app.Export.WriteLaTeX(ctx, r.ID, w)
			}
			return fmt.Errorf("unknown format %q (csv, tex, pdf)", format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "pdf", "Output format: csv, tex or pdf")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write csv or tex to a file instead of stdout")
	return cmd
}
