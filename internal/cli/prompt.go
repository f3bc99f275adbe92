package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

// ErrNotInteractive indicates a missing argument that could only be asked
// for on a terminal.
var ErrNotInteractive = fmt.Errorf("missing argument and stdin is not a terminal")

// runForm shows form on the terminal when the app is interactive.
func runForm(app *App, form *huh.Form) error {
	if !app.interactive() {
		return ErrNotInteractive
	}
	return form.Run()
}

// confirm asks a yes/no question; non-interactive sessions answer no.
func confirm(app *App, question string) (bool, error) {
	if !app.interactive() {
		return false, nil
	}
	var ok bool
	if err := wizardConfirm(question, &ok).Run(); err != nil {
		return false, err
	}
	return ok, nil
}
