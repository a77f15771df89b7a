package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/noor/internal/constants"
	"github.com/julianstephens/noor/internal/logger"
)

// DispatchResult summarizes one dispatch run
type DispatchResult struct {
	Delivered int
	Expired   int
	Failed    int
	Skipped   int
}

// Dispatcher delivers due notifications. It is run periodically, typically from cron via `noor notify`.
type Dispatcher struct {
	store     Store
	deliverer Deliverer
	grace     time.Duration
	dryRun    bool
}

func NewDispatcher(store Store, deliverer Deliverer) *Dispatcher {
	return &Dispatcher{
		store:     store,
		deliverer: deliverer,
		grace:     constants.NotificationGraceMin * time.Minute,
	}
}

// SetDryRun makes Dispatch report what it would deliver without sending or marking anything.
func (d *Dispatcher) SetDryRun(dryRun bool) {
	d.dryRun = dryRun
}

// Dispatch delivers every due notification. Notifications more than the grace period late, or due
// while notifications are disabled or not permitted, are marked delivered without being shown.
// A failed delivery stays pending and is retried on the next run.
func (d *Dispatcher) Dispatch(ctx context.Context, now time.Time) (DispatchResult, error) {
	var res DispatchResult

	settings, err := d.store.GetSettings()
	if err != nil {
		return res, fmt.Errorf("failed to load settings: %w", err)
	}
	allowed := settings.NotificationsEnabled && settings.NotificationPermission == constants.PermissionGranted

	due, err := d.store.DueNotifications(now)
	if err != nil {
		return res, fmt.Errorf("failed to load due notifications: %w", err)
	}

	for _, n := range due {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		late := now.Sub(n.FireAt) > d.grace
		switch {
		case !allowed:
			res.Skipped++
		case late:
			res.Expired++
		}

		if d.dryRun {
			if allowed && !late {
				res.Delivered++
			}
			logger.Info("Dry run", "id", n.ID, "title", n.Title, "fire_at", n.FireAt, "allowed", allowed, "late", late)
			continue
		}

		if allowed && !late {
			if err := d.deliverer.Deliver(ctx, n); err != nil {
				logger.Warn("Notification delivery failed", "id", n.ID, "error", err)
				res.Failed++
				continue
			}
			res.Delivered++
		} else {
			logger.Debug("Dropping notification", "id", n.ID, "allowed", allowed, "late", late)
		}

		if err := d.store.MarkNotificationDelivered(n.ID, now); err != nil {
			return res, fmt.Errorf("failed to mark notification %s delivered: %w", n.ID, err)
		}
	}

	return res, nil
}
