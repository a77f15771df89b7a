package notifier

import (
	"context"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

// TerminalPrompter asks on the controlling terminal. It returns nil when stdin is not a
// terminal, so cron and piped runs never block on a prompt.
func TerminalPrompter() Prompter {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return nil
	}
	return func(ctx context.Context) (bool, error) {
		allow := true
		confirm := huh.NewConfirm().
			Title("Allow noor to show prayer reminders?").
			Description("Reminders are delivered through noor-tray when `noor notify` runs.").
			Affirmative("Allow").
			Negative("Don't allow").
			Value(&allow)
		err := huh.NewForm(huh.NewGroup(confirm)).RunWithContext(ctx)
		if err != nil {
			return false, err
		}
		return allow, nil
	}
}
