package prayer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/julianstephens/noor/internal/aladhan"
	"github.com/julianstephens/noor/internal/constants"
	"github.com/julianstephens/noor/internal/kv"
	"github.com/julianstephens/noor/internal/logger"
	"github.com/julianstephens/noor/internal/models"
	"github.com/julianstephens/noor/internal/notifier"
	"github.com/julianstephens/noor/internal/utils"
)

const reminderTitle = "Prayer time"

var (
	// ErrPermissionDenied is returned when the user has not allowed notifications.
	ErrPermissionDenied = errors.New("notification permission denied")
	// ErrTimesNotLoaded is returned when a reminder is enabled before prayer times were fetched.
	ErrTimesNotLoaded = errors.New("prayer times not loaded")
	ErrUnknownPrayer  = errors.New("unknown prayer")
)

// TimesFetcher fetches one day's prayer times for a location.
type TimesFetcher interface {
	TimingsByCity(ctx context.Context, q aladhan.TimingsQuery) (models.PrayerTimes, error)
}

// SettingsSource provides the user's location and timezone.
type SettingsSource interface {
	GetSettings() (models.Settings, error)
}

// Reconciler owns the persisted prayer → notification id map. Operations are serialized.
type Reconciler struct {
	fetcher   TimesFetcher
	scheduler notifier.Scheduler
	store     kv.Store
	settings  SettingsSource
	now       func() time.Time

	mu    sync.Mutex
	times models.PrayerTimes
	next  map[string]time.Time
}

type Option func(*Reconciler)

func WithClock(now func() time.Time) Option {
	return func(r *Reconciler) {
		r.now = now
	}
}

func NewReconciler(fetcher TimesFetcher, scheduler notifier.Scheduler, store kv.Store, settings SettingsSource, opts ...Option) *Reconciler {
	r := &Reconciler{
		fetcher:   fetcher,
		scheduler: scheduler,
		store:     store,
		settings:  settings,
		now:       time.Now,
		next:      map[string]time.Time{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func reminderBody(key string) string {
	return fmt.Sprintf("It’s time for %s.", key)
}

// localNow returns the current time in the configured timezone.
func (r *Reconciler) localNow() (time.Time, error) {
	settings, err := r.settings.GetSettings()
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to load settings: %w", err)
	}
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", settings.Timezone, err)
	}
	return r.now().In(loc), nil
}

// fetch loads the timetable for the local date. fresh forces a network round trip.
func (r *Reconciler) fetch(ctx context.Context, fresh bool) (models.PrayerTimes, error) {
	settings, err := r.settings.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	now, err := r.localNow()
	if err != nil {
		return nil, err
	}
	times, err := r.fetcher.TimingsByCity(ctx, aladhan.TimingsQuery{
		City:    settings.City,
		Country: settings.Country,
		Method:  settings.Method,
		Date:    now,
		Fresh:   fresh,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch prayer times: %w", err)
	}
	return times, nil
}

// LoadTimes fetches today's prayer times and keeps them for later Enable calls.
func (r *Reconciler) LoadTimes(ctx context.Context) (models.PrayerTimes, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	times, err := r.fetch(ctx, false)
	if err != nil {
		return nil, err
	}
	r.times = times
	return times, nil
}

// Times returns the last fetched prayer times, or nil before the first successful fetch.
func (r *Reconciler) Times() models.PrayerTimes {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.times
}

func (r *Reconciler) loadIDs() (models.AlarmIDs, error) {
	ids := models.AlarmIDs{}
	if _, err := kv.LoadJSON(r.store, constants.KeyAlarmIDs, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *Reconciler) saveIDs(ids models.AlarmIDs) error {
	return kv.SaveJSON(r.store, constants.KeyAlarmIDs, ids)
}

// AlarmIDs returns the persisted map of enabled prayers to notification ids.
func (r *Reconciler) AlarmIDs() (models.AlarmIDs, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadIDs()
}

func (r *Reconciler) ensurePermission(ctx context.Context) error {
	status, err := r.scheduler.PermissionStatus(ctx)
	if err != nil {
		return err
	}
	if status == constants.PermissionGranted {
		return nil
	}
	status, err = r.scheduler.RequestPermission(ctx)
	if err != nil {
		return err
	}
	if status != constants.PermissionGranted {
		return ErrPermissionDenied
	}
	return nil
}

func (r *Reconciler) schedule(ctx context.Context, key string, now time.Time) (string, time.Time, error) {
	hhmm, ok := r.times[key]
	if !ok {
		return "", time.Time{}, fmt.Errorf("no time for %s in fetched prayer times", key)
	}
	at, err := NextOccurrence(hhmm, now)
	if err != nil {
		return "", time.Time{}, err
	}
	id, err := r.scheduler.Schedule(ctx, notifier.Notification{
		Title:   reminderTitle,
		Body:    reminderBody(key),
		Channel: constants.PrayerChannel,
		FireAt:  at,
	})
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to schedule %s reminder: %w", key, err)
	}
	return id, at, nil
}

func (r *Reconciler) cancel(ctx context.Context, key, id string) {
	if err := r.scheduler.Cancel(ctx, id); err != nil {
		logger.Debug("Ignoring cancel failure", "prayer", key, "id", id, "error", err)
	}
}

// Enable schedules a reminder for key's next occurrence and returns when it will fire.
// An already enabled prayer is rescheduled.
func (r *Reconciler) Enable(ctx context.Context, key string) (time.Time, error) {
	if !IsPrayer(key) {
		return time.Time{}, fmt.Errorf("%w: %s", ErrUnknownPrayer, key)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.times == nil {
		return time.Time{}, ErrTimesNotLoaded
	}
	now, err := r.localNow()
	if err != nil {
		return time.Time{}, err
	}
	if err := r.ensurePermission(ctx); err != nil {
		return time.Time{}, err
	}

	ids, err := r.loadIDs()
	if err != nil {
		return time.Time{}, err
	}
	if old, ok := ids[key]; ok {
		r.cancel(ctx, key, old)
	}

	id, at, err := r.schedule(ctx, key, now)
	if err != nil {
		return time.Time{}, err
	}
	ids[key] = id
	if err := r.saveIDs(ids); err != nil {
		r.cancel(ctx, key, id)
		return time.Time{}, err
	}
	r.next[key] = at
	logger.Info("Enabled prayer reminder", "prayer", key, "fire_at", at)
	return at, nil
}

// Disable cancels key's reminder and forgets it. Disabling a prayer that is not enabled is a no-op.
func (r *Reconciler) Disable(ctx context.Context, key string) error {
	if !IsPrayer(key) {
		return fmt.Errorf("%w: %s", ErrUnknownPrayer, key)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ids, err := r.loadIDs()
	if err != nil {
		return err
	}
	id, ok := ids[key]
	if !ok {
		return nil
	}
	r.cancel(ctx, key, id)
	delete(ids, key)
	delete(r.next, key)
	if err := r.saveIDs(ids); err != nil {
		return err
	}
	logger.Info("Disabled prayer reminder", "prayer", key)
	return nil
}

// Toggle enables key when it is disabled and disables it otherwise. It reports the new state.
func (r *Reconciler) Toggle(ctx context.Context, key string) (bool, error) {
	ids, err := r.AlarmIDs()
	if err != nil {
		return false, err
	}
	if _, ok := ids[key]; ok {
		return false, r.Disable(ctx, key)
	}
	if _, err := r.Enable(ctx, key); err != nil {
		return false, err
	}
	return true, nil
}

// Reconcile fetches fresh prayer times, bypassing any cached table, and reschedules every
// enabled reminder against them. When the fetch fails, existing schedules are left untouched.
func (r *Reconciler) Reconcile(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	times, err := r.fetch(ctx, true)
	if err != nil {
		return err
	}
	r.times = times

	ids, err := r.loadIDs()
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	now, err := r.localNow()
	if err != nil {
		return err
	}

	for _, key := range constants.DailyPrayers {
		old, ok := ids[key]
		if !ok {
			continue
		}
		r.cancel(ctx, key, old)

		id, at, err := r.schedule(ctx, key, now)
		if err != nil {
			return err
		}
		ids[key] = id
		if err := r.saveIDs(ids); err != nil {
			r.cancel(ctx, key, id)
			return err
		}
		r.next[key] = at
		logger.Debug("Rescheduled prayer reminder", "prayer", key, "id", id, "fire_at", at)
	}
	return nil
}

// Status describes each daily prayer: its time, whether a reminder is enabled, and which prayer is next.
// Times are empty until prayer times have been fetched.
func (r *Reconciler) Status() ([]models.AlarmStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids, err := r.loadIDs()
	if err != nil {
		return nil, err
	}
	now, err := r.localNow()
	if err != nil {
		return nil, err
	}

	var nextKey string
	if r.times != nil {
		if key, _, err := NextPrayer(r.times, now); err == nil {
			nextKey = key
		}
	}

	out := make([]models.AlarmStatus, 0, len(constants.DailyPrayers))
	for _, key := range constants.DailyPrayers {
		_, enabled := ids[key]
		st := models.AlarmStatus{
			Prayer:  key,
			Time:    r.times[key],
			Enabled: enabled,
			IsNext:  key == nextKey,
		}
		if enabled {
			if at, ok := r.next[key]; ok {
				st.NextAt = &at
			} else if hhmm, ok := r.times[key]; ok {
				if at, err := NextOccurrence(hhmm, now); err == nil {
					st.NextAt = &at
				}
			}
		}
		out = append(out, st)
	}
	return out, nil
}
