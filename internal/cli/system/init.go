package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/noor/internal/cli"
	"github.com/julianstephens/noor/internal/habits"
	"github.com/julianstephens/noor/internal/storage/sqlite"
)

type InitCmd struct {
	Force  bool `help:"Delete an existing SQLite database before initializing."`
	NoSeed bool `help:"Do not insert the default habits."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if _, ok := ctx.Store.(*sqlite.Store); !ok {
			return fmt.Errorf("--force is only supported for SQLite databases")
		}
		dbPath := ctx.Store.GetConfigPath()
		if _, err := os.Stat(dbPath); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized noor storage at: %s\n", ctx.Store.GetConfigPath())

	if c.NoSeed {
		return nil
	}
	seeded, err := habits.New(ctx.Store).SeedIfEmpty()
	if err != nil {
		return fmt.Errorf("failed to seed default habits: %w", err)
	}
	if seeded {
		fmt.Println("Added the default habits.")
	}
	return nil
}
