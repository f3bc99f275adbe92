package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/timereport/internal/cli/formatter"
	"github.com/alexanderramin/timereport/internal/domain"
)

func newHolidayCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "holiday",
		Aliases: []string{"ferien"},
		Short:   "Public and school holidays",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List stored holidays",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				hs, err := app.Calendar.Holidays(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatHolidays(hs))
				return nil
			},
		},
		&cobra.Command{
			Use:   "fetch YEAR...",
			Short: "Download holidays for the given years",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				for _, a := range args {
					year, err := strconv.Atoi(a)
					if err != nil || year < 1900 || year > 2999 {
						return fmt.Errorf("invalid year %q", a)
					}
					n, err := app.Calendar.RefreshHolidays(cmd.Context(), year)
					if err != nil {
						return err
					}
					app.logger().Debug("holidays refreshed", "year", year, "added", n)
					fmt.Fprintf(cmd.OutOrStdout(), "%d: %d new holidays\n", year, n)
				}
				return nil
			},
		},
	)
	return cmd
}

func newWeekCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "week",
		Short: "School week labels (A-D)",
	}

	cmd.AddCommand(
		newWeekPopulateCmd(app),
		&cobra.Command{
			Use:   "show DATE",
			Short: "Show the week label and next school day for a date",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := cmd.Context()
				day, err := requiredDate(args[0])
				if err != nil {
					return err
				}
				w, err := app.Calendar.WeekOf(ctx, day)
				if err != nil {
					return err
				}
				school, err := app.Calendar.IsSchoolDay(ctx, day)
				if err != nil {
					return err
				}
				next, err := app.Calendar.NextSchoolDay(ctx, day)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s  week %s  school day: %t\n", formatter.GermanDate(day), formatter.WeekBadge(w), school)
				fmt.Fprintf(out, "next school day: %s\n", formatter.GermanDate(next))
				return nil
			},
		},
	)
	return cmd
}

func newWeekPopulateCmd(app *App) *cobra.Command {
	var from, to, first string

	cmd := &cobra.Command{
		Use:   "populate",
		Short: "Label calendar weeks in a range, rotating A-D",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := requiredDate(from)
			if err != nil {
				return err
			}
			end, err := requiredDate(to)
			if err != nil {
				return err
			}
			w, err := domain.ParseWeek(first)
			if err != nil {
				return err
			}
			n, err := app.Calendar.PopulateWeeks(cmd.Context(), start, end, w)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Labelled %d weeks\n", n)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "First day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Last day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&first, "first", "A", "Label of the first school week")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func requiredDate(s string) (time.Time, error) {
	day, err := domain.ParseDate(s)
	if err != nil {
		return time.Time{}, err
	}
	if day.IsZero() {
		return time.Time{}, fmt.Errorf("date required")
	}
	return day, nil
}
