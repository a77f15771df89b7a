// Package chat keeps a private message log that only ever holds the current day.
package chat

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/noor/internal/constants"
	"github.com/julianstephens/noor/internal/kv"
	"github.com/julianstephens/noor/internal/logger"
	"github.com/julianstephens/noor/internal/models"
)

type Log struct {
	store kv.Store
}

func New(store kv.Store) *Log {
	return &Log{store: store}
}

func dayKey(t time.Time) string {
	return t.Format(constants.DateFormat)
}

func sameDay(a, b time.Time) bool {
	return dayKey(a) == dayKey(b.In(a.Location()))
}

func (l *Log) load() ([]models.ChatMessage, error) {
	msgs := []models.ChatMessage{}
	if _, err := kv.LoadJSON(l.store, constants.KeyChatMessages, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (l *Log) save(msgs []models.ChatMessage, now time.Time) error {
	if err := kv.SaveJSON(l.store, constants.KeyChatMessages, msgs); err != nil {
		return err
	}
	return l.store.SetValue(constants.KeyChatLastDay, dayKey(now))
}

// EnsureToday wipes the log when the stored day differs from now's day and reports whether it did.
func (l *Log) EnsureToday(now time.Time) (bool, error) {
	last, err := kv.GetString(l.store, constants.KeyChatLastDay, "")
	if err != nil {
		return false, err
	}
	if last == dayKey(now) {
		return false, nil
	}
	if last != "" {
		logger.Debug("Starting a new chat day", "previous", last, "today", dayKey(now))
	}
	return last != "", l.save([]models.ChatMessage{}, now)
}

// List returns today's messages in the order they were sent.
func (l *Log) List(now time.Time) ([]models.ChatMessage, error) {
	if _, err := l.EnsureToday(now); err != nil {
		return nil, err
	}
	msgs, err := l.load()
	if err != nil {
		return nil, err
	}
	out := make([]models.ChatMessage, 0, len(msgs))
	for _, m := range msgs {
		if sameDay(now, m.CreatedAt) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// Send appends a trimmed message. Blank text is ignored and returns ok=false.
func (l *Log) Send(text string, now time.Time) (models.ChatMessage, bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.ChatMessage{}, false, nil
	}
	msgs, err := l.List(now)
	if err != nil {
		return models.ChatMessage{}, false, err
	}
	msg := models.ChatMessage{ID: uuid.NewString(), Text: text, CreatedAt: now}
	if err := l.save(append(msgs, msg), now); err != nil {
		return models.ChatMessage{}, false, err
	}
	return msg, true, nil
}

// ClearToday removes every message.
func (l *Log) ClearToday(now time.Time) error {
	return l.save([]models.ChatMessage{}, now)
}
