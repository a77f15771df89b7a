package system

import (
	"context"
	"fmt"

	"github.com/julianstephens/noor/internal/cli"
	"github.com/julianstephens/noor/internal/notifier"
)

// NotifyCmd delivers due reminders. It is meant to run every minute from cron or a systemd timer.
type NotifyCmd struct {
	DryRun bool `help:"Report due notifications without sending or marking them."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	return c.run(ctx, notifier.NewTray())
}

func (c *NotifyCmd) run(ctx *cli.Context, d notifier.Deliverer) error {
	now, err := ctx.LocalNow()
	if err != nil {
		return err
	}

	dispatcher := notifier.NewDispatcher(ctx.Store, d)
	dispatcher.SetDryRun(c.DryRun)
	res, err := dispatcher.Dispatch(context.Background(), now)
	if err != nil {
		return err
	}

	if c.DryRun || res != (notifier.DispatchResult{}) {
		prefix := ""
		if c.DryRun {
			prefix = "[DryRun] "
		}
		fmt.Printf("%sdelivered=%d expired=%d skipped=%d failed=%d\n", prefix, res.Delivered, res.Expired, res.Skipped, res.Failed)
	}
	if res.Failed > 0 {
		return fmt.Errorf("%d notification(s) could not be delivered and will be retried", res.Failed)
	}
	return nil
}
