package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/timereport/internal/cli/formatter"
	"github.com/alexanderramin/timereport/internal/domain"
	"github.com/alexanderramin/timereport/internal/service"
)

func newItemCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "item",
		Aliases: []string{"row"},
		Short:   "Manage the rows of a report",
	}

	cmd.AddCommand(
		newItemListCmd(app),
		newItemAddCmd(app),
		newItemSetCmd(app),
		newItemRemoveCmd(app),
	)
	return cmd
}

func newItemListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list [REPORT]",
		Short: "List rows (default: active report)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			r, err := reportArg(cmd, app, args)
			if err != nil {
				return err
			}
			rows, err := app.Items.List(ctx, r.ID)
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

func newItemAddCmd(app *App) *cobra.Command {
	var reportID int64
	var name, date, start, end, week, remark string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a row; unset fields come from the next-row template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if reportID == 0 {
				r, err := app.Reports.Active(ctx)
				if err != nil {
					return err
				}
				reportID = r.ID
			}
			row, err := app.Items.Template(ctx, reportID)
			if err != nil {
				return err
			}
			for _, kv := range [][2]string{{"name", name}, {"date", date}, {"start", start}, {"end", end}} {
				if kv[1] == "" {
					continue
				}
				if err := row.SetByName(kv[0], kv[1]); err != nil {
					return err
				}
			}
			if week != "" {
				if row.Week, err = domain.ParseWeek(week); err != nil {
					return err
				}
			}
			row.Remark = remark

			id, err := app.Items.Save(ctx, row)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added row %d: %s %s %s-%s\n",
				id, row.Name, domain.FormatDate(row.Date), row.Start, row.End)
			return nil
		},
	}

	cmd.Flags().Int64Var(&reportID, "report", 0, "Report id (default: active report)")
	cmd.Flags().StringVar(&name, "name", "", "Employee name")
	cmd.Flags().StringVar(&date, "date", "", "Day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "End time (HH:MM)")
	cmd.Flags().StringVar(&week, "week", "", "Week label A-D")
	cmd.Flags().StringVar(&remark, "remark", "", "Remark")
	return cmd
}

// patchFor builds a single-field patch from a field name and raw value.
func patchFor(field, value string) (service.RowPatch, error) {
	var p service.RowPatch
	field = strings.ToLower(field)
	switch field {
	case "remark":
		p.Remark = &value
		return p, nil
	case "week", "type_of_week":
		w, err := domain.ParseWeek(value)
		if err != nil {
			return p, err
		}
		p.Week = &w
		return p, nil
	}

	f, err := domain.ParseField(field)
	if err != nil {
		return p, err
	}
	scratch := domain.NewRow(0)
	if err := scratch.Set(f, value); err != nil {
		return p, err
	}
	switch f {
	case domain.FieldName:
		p.Name = &scratch.Name
	case domain.FieldDate:
		p.Date = &scratch.Date
	case domain.FieldStart:
		p.Start = &scratch.Start
	case domain.FieldEnd:
		p.End = &scratch.End
	}
	return p, nil
}

func newItemSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set REPORT ID FIELD VALUE",
		Short: "Change one field of a stored row",
		Long:  "FIELD is one of name, date, start, end, week or remark.",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			reportID, err := parseID(args[0], "report")
			if err != nil {
				return err
			}
			id, err := parseID(args[1], "row")
			if err != nil {
				return err
			}
			patch, err := patchFor(args[2], args[3])
			if err != nil {
				return err
			}
			row, err := app.Items.Patch(cmd.Context(), reportID, id, patch)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Row %d: %s %s %s-%s %s\n", row.ID, row.Name,
				domain.FormatDate(row.Date), row.Start, row.End, row.Week)
			return nil
		},
	}
}

func newItemRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm REPORT ID",
		Aliases: []string{"delete"},
		Short:   "Delete a row",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			reportID, err := parseID(args[0], "report")
			if err != nil {
				return err
			}
			id, err := parseID(args[1], "row")
			if err != nil {
				return err
			}
			if err := app.Items.Delete(cmd.Context(), reportID, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted row %d\n", id)
			return nil
		},
	}
}
