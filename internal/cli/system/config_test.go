package system

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/julianstephens/noor/internal/cli"
	"github.com/julianstephens/noor/internal/config"
	"github.com/julianstephens/noor/internal/constants"
	"github.com/julianstephens/noor/internal/notifier"
)

func TestConfigInitCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noor", "config.yaml")
	ctx := &cli.Context{ConfigPath: path}

	if err := (&ConfigInitCmd{}).Run(ctx); err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("failed to load written config: %v", err)
	}
	if cfg.API.AladhanBaseURL != constants.DefaultAladhanBaseURL {
		t.Errorf("aladhan base URL = %q", cfg.API.AladhanBaseURL)
	}

	if err := (&ConfigInitCmd{}).Run(ctx); err == nil {
		t.Error("expected error when config already exists")
	}
	if err := os.WriteFile(path, []byte("api: {timeout: 1s}\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := (&ConfigInitCmd{Force: true}).Run(ctx); err != nil {
		t.Fatalf("forced config init failed: %v", err)
	}
}

func TestConfigShowCmd(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Cache.RedisPassword = "secret"
	ctx := &cli.Context{Config: cfg}

	if err := (&ConfigShowCmd{}).Run(ctx); err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	if cfg.Cache.RedisPassword != "secret" {
		t.Error("config show must not modify the loaded config")
	}
}

func TestDashboardDepsNeverPromptOnTerminal(t *testing.T) {
	ctx, cleanup := setupTestDB(t)
	defer cleanup()

	asked := false
	ctx.Prompter = func(_ context.Context) (bool, error) {
		asked = true
		return true, nil
	}
	deps := dashboardDeps(ctx)

	status, err := deps.Permission.PermissionStatus(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if status != constants.PermissionUndetermined {
		t.Fatalf("unexpected permission status %q", status)
	}
	scheduler, ok := deps.Permission.(*notifier.LocalScheduler)
	if !ok {
		t.Fatalf("unexpected permission type %T", deps.Permission)
	}
	if status, err := scheduler.RequestPermission(context.Background()); err != nil || status != constants.PermissionDenied {
		t.Errorf("RequestPermission() = %q, %v; want denied without prompting", status, err)
	}
	if asked {
		t.Error("dashboard scheduler must not use the terminal prompter")
	}
	if ctx.Prompter == nil {
		t.Error("dashboardDeps must not clear the caller's prompter")
	}
}
