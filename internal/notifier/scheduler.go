// Package notifier schedules one-shot local notifications and delivers them when due.
package notifier

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/noor/internal/constants"
	"github.com/julianstephens/noor/internal/logger"
	"github.com/julianstephens/noor/internal/models"
)

// ErrNotFound is returned when cancelling an id that is unknown or already delivered.
var ErrNotFound = errors.New("notification not found")

// Notification is a request to show Title and Body at FireAt.
type Notification struct {
	Title   string
	Body    string
	Channel string
	FireAt  time.Time
}

// Scheduler is the platform notification facility the reminder logic depends on.
type Scheduler interface {
	Schedule(ctx context.Context, n Notification) (string, error)
	Cancel(ctx context.Context, id string) error
	PermissionStatus(ctx context.Context) (string, error)
	RequestPermission(ctx context.Context) (string, error)
}

// Store is the persistence LocalScheduler needs.
type Store interface {
	SaveNotification(models.ScheduledNotification) error
	DeletePendingNotification(id string) (bool, error)
	ListPendingNotifications() ([]models.ScheduledNotification, error)
	DueNotifications(now time.Time) ([]models.ScheduledNotification, error)
	MarkNotificationDelivered(id string, at time.Time) error
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error
}

// Prompter asks the user whether notifications may be shown.
type Prompter func(ctx context.Context) (bool, error)

// LocalScheduler keeps scheduled notifications in the database until Dispatch delivers them.
type LocalScheduler struct {
	store  Store
	prompt Prompter
	now    func() time.Time
}

type Option func(*LocalScheduler)

// WithPrompter sets how RequestPermission asks the user. Without one, undetermined permission is reported as denied.
func WithPrompter(p Prompter) Option {
	return func(s *LocalScheduler) {
		s.prompt = p
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *LocalScheduler) {
		s.now = now
	}
}

func NewLocal(store Store, opts ...Option) *LocalScheduler {
	s := &LocalScheduler{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *LocalScheduler) Schedule(_ context.Context, n Notification) (string, error) {
	if n.FireAt.IsZero() {
		return "", errors.New("notification has no fire time")
	}
	rec := models.ScheduledNotification{
		ID:        uuid.NewString(),
		Title:     n.Title,
		Body:      n.Body,
		Channel:   n.Channel,
		FireAt:    n.FireAt,
		CreatedAt: s.now(),
	}
	if err := s.store.SaveNotification(rec); err != nil {
		return "", fmt.Errorf("failed to schedule notification: %w", err)
	}
	logger.Debug("Scheduled notification", "id", rec.ID, "fire_at", rec.FireAt, "channel", rec.Channel)
	return rec.ID, nil
}

func (s *LocalScheduler) Cancel(_ context.Context, id string) error {
	deleted, err := s.store.DeletePendingNotification(id)
	if err != nil {
		return fmt.Errorf("failed to cancel notification %s: %w", id, err)
	}
	if !deleted {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	logger.Debug("Cancelled notification", "id", id)
	return nil
}

// Pending lists notifications that have not been delivered yet, soonest first.
func (s *LocalScheduler) Pending() ([]models.ScheduledNotification, error) {
	return s.store.ListPendingNotifications()
}

func (s *LocalScheduler) PermissionStatus(_ context.Context) (string, error) {
	settings, err := s.store.GetSettings()
	if err != nil {
		return "", fmt.Errorf("failed to read notification permission: %w", err)
	}
	if settings.NotificationPermission == "" {
		return constants.PermissionUndetermined, nil
	}
	return settings.NotificationPermission, nil
}

// RequestPermission prompts only while the permission is undetermined; an answer is persisted.
func (s *LocalScheduler) RequestPermission(ctx context.Context) (string, error) {
	status, err := s.PermissionStatus(ctx)
	if err != nil {
		return "", err
	}
	if status != constants.PermissionUndetermined {
		return status, nil
	}
	if s.prompt == nil {
		return constants.PermissionDenied, nil
	}

	allowed, err := s.prompt(ctx)
	if err != nil {
		return "", fmt.Errorf("permission prompt failed: %w", err)
	}
	status = constants.PermissionDenied
	if allowed {
		status = constants.PermissionGranted
	}
	if err := s.SetPermission(status); err != nil {
		return "", err
	}
	return status, nil
}

// SetPermission records the user's answer directly, e.g. from a settings command or an in-app prompt.
func (s *LocalScheduler) SetPermission(status string) error {
	switch status {
	case constants.PermissionGranted, constants.PermissionDenied, constants.PermissionUndetermined:
	default:
		return fmt.Errorf("invalid permission %q", status)
	}
	settings, err := s.store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}
	settings.NotificationPermission = status
	if err := s.store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save notification permission: %w", err)
	}
	return nil
}
