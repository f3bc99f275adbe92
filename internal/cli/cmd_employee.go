package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/timereport/internal/cli/formatter"
)

func newEmployeeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "employee",
		Aliases: []string{"mitarbeiter"},
		Short:   "Manage employees",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List employees",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				employees, err := app.Employees.List(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatEmployees(employees))
				return nil
			},
		},
		newEmployeeAddCmd(app),
		&cobra.Command{
			Use:   "rename ID NAME",
			Short: "Rename an employee",
			Args:  cobra.MinimumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0], "employee")
				if err != nil {
					return err
				}
				name := strings.Join(args[1:], " ")
				if err := app.Employees.Rename(cmd.Context(), id, name); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Renamed employee %d to %s\n", id, name)
				return nil
			},
		},
		newEmployeeRemoveCmd(app),
	)
	return cmd
}

func newEmployeeAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add [NAME]",
		Short: "Add an employee",
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			if name == "" {
				if err := runForm(app, wizardInputText("Name", "Vorname Nachname", &name)); err != nil {
					return err
				}
			}
			id, err := app.Employees.Add(cmd.Context(), name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Employee %d: %s\n", id, strings.TrimSpace(name))
			return nil
		},
	}
}

func newEmployeeRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"delete"},
		Short:   "Delete an employee without rows",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "employee")
			if err != nil {
				return err
			}
			if !yes {
				ok, err := confirm(app, fmt.Sprintf("Delete employee %d?", id))
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("not deleted: pass --yes to confirm")
				}
			}
			if err := app.Employees.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted employee %d\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}
