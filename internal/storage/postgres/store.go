package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/julianstephens/noor/internal/constants"
	"github.com/julianstephens/noor/internal/migration"
	"github.com/julianstephens/noor/internal/storage"
	"github.com/julianstephens/noor/migrations"
)

type Store struct {
	dsn      string
	parseErr error
	db       *sql.DB
}

// New prepares a store for connStr. Problems with the connection string surface on first use.
func New(connStr string) *Store {
	p, err := parseParams(connStr)
	if err != nil {
		return &Store{parseErr: err}
	}
	return &Store{dsn: p.dsn()}
}

func (s *Store) open() error {
	if s.parseErr != nil {
		return s.parseErr
	}
	db, err := sql.Open("postgres", s.dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		if strings.Contains(err.Error(), "SSL is not enabled on the server") && !strings.Contains(s.dsn, "sslmode=") {
			return fmt.Errorf("failed to connect to database: %w (hint: try adding ?sslmode=disable to your connection string)", err)
		}
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	s.db = db
	return nil
}

func (s *Store) Init() error {
	if s.db == nil {
		if err := s.open(); err != nil {
			return err
		}
	}

	if _, err := s.db.Exec("CREATE SCHEMA IF NOT EXISTS " + constants.AppName); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if err := s.Migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := storage.EnsureSettings(s); err != nil {
		return err
	}

	return nil
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}
	if err := s.open(); err != nil {
		return err
	}
	return s.runner().Check(context.Background())
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Store) runner() *migration.Runner {
	subFS, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		panic(fmt.Sprintf("postgres migrations missing from build: %v", err))
	}
	return migration.NewRunner(s.db, subFS, migration.WithPostgres())
}

// Migrate applies all pending schema migrations.
func (s *Store) Migrate() error {
	if s.db == nil {
		if err := s.open(); err != nil {
			return err
		}
	}
	_, err := s.runner().Up(context.Background())
	return err
}

func (s *Store) GetConfigPath() string {
	// Never expose the connection string
	return "postgresql"
}
