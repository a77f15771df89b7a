package system

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/noor/internal/cli"
	"github.com/julianstephens/noor/internal/logger"
	"github.com/julianstephens/noor/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	ctx.PerformAutomaticBackup()

	p := tea.NewProgram(tui.NewModel(dashboardDeps(ctx)), tea.WithAltScreen(), tea.WithReportFocus())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("dashboard exited: %w", err)
	}
	return nil
}

// dashboardDeps wires the dashboard. The permission question is asked inside the dashboard,
// so its scheduler never prompts on the terminal itself.
func dashboardDeps(ctx *cli.Context) tui.Deps {
	quiet := *ctx
	quiet.Prompter = nil
	scheduler := quiet.Scheduler()

	return tui.Deps{
		Store:      ctx.Store,
		Reconciler: quiet.Reconciler(),
		Permission: scheduler,
		Verses:     ctx.Quran(),
		Calendar:   ctx.Calendar(),
		Now: func() time.Time {
			now, err := ctx.LocalNow()
			if err != nil {
				logger.Warn("Falling back to system time", "error", err)
				return time.Now()
			}
			return now
		},
	}
}
