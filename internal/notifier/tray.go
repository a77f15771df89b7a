package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/noor/internal/constants"
	"github.com/julianstephens/noor/internal/models"
)

// swapped in tests
var (
	userConfigDirFunc = os.UserConfigDir
	findProcessFunc   = ps.FindProcess
)

// ErrTrayNotRunning is returned when no tray application is available to show notifications.
var ErrTrayNotRunning = errors.New("noor-tray is not running")

// Deliverer shows a notification to the user.
type Deliverer interface {
	Deliver(ctx context.Context, n models.ScheduledNotification) error
}

// Tray delivers notifications to the noor-tray desktop app over its loopback webhook.
type Tray struct {
	client *http.Client
}

type WebhookPayload struct {
	ID         string `json:"id,omitempty"`
	Title      string `json:"title,omitempty"`
	Text       string `json:"text"`
	Channel    string `json:"channel,omitempty"`
	DurationMs uint32 `json:"duration_ms"`
}

func NewTray() *Tray {
	return &Tray{client: &http.Client{Timeout: 5 * time.Second}}
}

func (t *Tray) Deliver(ctx context.Context, n models.ScheduledNotification) error {
	dir, err := trayDir()
	if err != nil {
		return err
	}
	lock, err := readTrayLock(filepath.Join(dir, constants.NotifierLockfileName))
	if err != nil {
		return err
	}
	if err := lock.verify(); err != nil {
		return err
	}
	return t.post(ctx, lock, WebhookPayload{
		ID:         n.ID,
		Title:      n.Title,
		Text:       n.Body,
		Channel:    n.Channel,
		DurationMs: constants.NotificationDurationMs,
	})
}

// trayDir is where the tray app keeps its lockfile: <user config>/<app id>, unless the
// tray's settings.json names another lockfile_dir.
func trayDir() (string, error) {
	base, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}
	dir := filepath.Join(base, constants.TrayAppIdentifier)

	data, err := os.ReadFile(filepath.Join(dir, "settings.json"))
	if err != nil {
		return dir, nil
	}
	var traySettings struct {
		Settings struct {
			LockfileDir string `json:"lockfile_dir"`
		} `json:"settings"`
	}
	if json.Unmarshal(data, &traySettings) == nil && traySettings.Settings.LockfileDir != "" {
		return traySettings.Settings.LockfileDir, nil
	}
	return dir, nil
}

// trayLock is the "port|pid|secret" record the tray writes while it is running.
type trayLock struct {
	Port   int
	PID    int
	Secret string
}

func readTrayLock(path string) (trayLock, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return trayLock{}, ErrTrayNotRunning
	}
	return parseTrayLock(string(content))
}

func parseTrayLock(content string) (trayLock, error) {
	fields := strings.Split(strings.TrimSpace(content), "|")
	if len(fields) != 3 {
		return trayLock{}, errors.New("lockfile is malformed")
	}
	var lock trayLock

	port := strings.TrimSpace(fields[0])
	if port == "" {
		return trayLock{}, errors.New("port in lockfile is empty")
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return trayLock{}, fmt.Errorf("invalid port %q in lockfile", port)
	}
	if n < 1 || n > 65535 {
		return trayLock{}, fmt.Errorf("port %d is outside the valid range (1-65535)", n)
	}
	lock.Port = n

	if lock.PID, err = strconv.Atoi(strings.TrimSpace(fields[1])); err != nil {
		return trayLock{}, fmt.Errorf("invalid process ID %q in lockfile", fields[1])
	}
	if lock.Secret = strings.TrimSpace(fields[2]); lock.Secret == "" {
		return trayLock{}, errors.New("secret in lockfile is empty")
	}
	return lock, nil
}

// verify checks that the lockfile's pid is a live noor-tray process and not a stale or reused pid.
func (l trayLock) verify() error {
	process, err := findProcessFunc(l.PID)
	if err != nil || process == nil {
		return ErrTrayNotRunning
	}
	if !strings.HasPrefix(process.Executable(), constants.TrayExecutablePrefix) {
		return fmt.Errorf("process %d is %s, not %s", l.PID, process.Executable(), constants.TrayExecutablePrefix)
	}
	return nil
}

func (t *Tray) post(ctx context.Context, lock trayLock, payload WebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	url := "http://127.0.0.1:" + strconv.Itoa(lock.Port)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Noor-Secret", lock.Secret)

	res, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach noor-tray: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return fmt.Errorf("noor-tray rejected notification with status %d: %s", res.StatusCode, strings.TrimSpace(string(msg)))
	}
	return nil
}
