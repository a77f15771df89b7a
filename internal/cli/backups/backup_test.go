package backups

import (
	"path/filepath"
	"testing"

	"github.com/julianstephens/noor/internal/backup"
	"github.com/julianstephens/noor/internal/cli"
	"github.com/julianstephens/noor/internal/storage/postgres"
	"github.com/julianstephens/noor/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "noor.db")
	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init database: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return &cli.Context{Store: store}, dbPath
}

func TestBackupCreateAndList(t *testing.T) {
	ctx, dbPath := setupTestDB(t)

	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}

	list, err := backup.NewManager(dbPath).List()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 backup, got %d", len(list))
	}
}

func TestBackupRestoreByName(t *testing.T) {
	ctx, dbPath := setupTestDB(t)

	mgr := backup.NewManager(dbPath)
	snapshot, err := mgr.Create()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ctx.Store.InsertHabit("Dhikr", nil); err != nil {
		t.Fatal(err)
	}

	if err := (&BackupRestoreCmd{BackupFile: filepath.Base(snapshot), Yes: true}).Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}

	store := sqlite.NewStore(dbPath)
	if err := store.Load(); err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	habits, err := store.ListHabits()
	if err != nil {
		t.Fatal(err)
	}
	if len(habits) != 0 {
		t.Errorf("expected restored database without habits, got %d", len(habits))
	}
}

func TestBackupRestoreMissing(t *testing.T) {
	ctx, _ := setupTestDB(t)
	if err := (&BackupRestoreCmd{BackupFile: "noor-20000101-0000.db", Yes: true}).Run(ctx); err == nil {
		t.Error("expected error for missing backup")
	}
}

func TestBackupRequiresSQLite(t *testing.T) {
	ctx := &cli.Context{Store: postgres.New("postgres://localhost/noor")}
	if err := (&BackupCreateCmd{}).Run(ctx); err == nil {
		t.Error("expected error for PostgreSQL backend")
	}
}
