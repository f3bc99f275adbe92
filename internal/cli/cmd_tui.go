package cli

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newTUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui [PATH]",
		Short: "Open the interactive worksheet",
		Long:  "PATH selects the start screen: /, /abrechnung/ID or /mitarbeiter.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Backend == nil {
				return errors.New("no backend configured")
			}
			route := Route{Kind: RouteOverview}
			if len(args) == 1 {
				r, err := ParseRoute(args[0])
				if err != nil {
					return err
				}
				route = r
			}
			state := &SharedState{Backend: app.Backend, Config: app.config}
			p := tea.NewProgram(newAppModel(state, route),
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()))
			_, err := p.Run()
			return err
		},
	}
}
