package system

import (
	"fmt"

	"github.com/julianstephens/noor/internal/cli"
)

type migrator interface {
	Migrate() error
}

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	m, ok := ctx.Store.(migrator)
	if !ok {
		return fmt.Errorf("storage backend does not support migrations")
	}
	if err := m.Migrate(); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	fmt.Println("Database is up to date.")
	return nil
}
