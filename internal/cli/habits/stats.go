package habits

import (
	"fmt"
	"strings"

	"github.com/julianstephens/noor/internal/cli"
	"github.com/julianstephens/noor/internal/habits"
	"github.com/julianstephens/noor/internal/stats"
)

const barWidth = 20

type StatsCmd struct {
	Date string `help:"Summary end date in YYYY-MM-DD format (default: today)."`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	date, err := dateOrToday(ctx, c.Date)
	if err != nil {
		return err
	}
	summary, err := stats.Build(habits.New(ctx.Store), date)
	if err != nil {
		return err
	}

	fmt.Println(cli.HeaderStyle.Render("Completions"))
	fmt.Printf("  Today (%s):        %d\n", summary.Date, summary.Today)
	fmt.Printf("  Since %s:   %d\n", summary.MonthStart, summary.Month)
	fmt.Println()

	peak := 0
	for _, d := range summary.Days {
		peak = max(peak, d.Count)
	}
	for _, d := range summary.Days {
		fmt.Printf("  %s  %3d  %s\n", d.Date, d.Count, bar(d.Count, peak))
	}
	return nil
}

func bar(count, peak int) string {
	if peak == 0 || count == 0 {
		return ""
	}
	n := max(1, count*barWidth/peak)
	return cli.DoneStyle.Render(strings.Repeat("█", n))
}
