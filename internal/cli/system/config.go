package system

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/noor/internal/cli"
	"github.com/julianstephens/noor/internal/config"
	"github.com/julianstephens/noor/internal/logger"
	"github.com/julianstephens/noor/internal/utils"
)

type ConfigCmd struct {
	Show ConfigShowCmd `cmd:"" help:"Print the effective configuration." default:"1"`
	Init ConfigInitCmd `cmd:"" help:"Write a config file with the default values."`
}

type ConfigShowCmd struct{}

func (c *ConfigShowCmd) Run(ctx *cli.Context) error {
	cfg := ctx.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	shown := *cfg
	if shown.Cache.RedisPassword != "" {
		shown.Cache.RedisPassword = "****"
	}
	data, err := yaml.Marshal(&shown)
	if err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}
	if ctx.ConfigPath != "" {
		fmt.Printf("# %s\n", ctx.ConfigPath)
	}
	if p := logger.Path(); p != "" {
		fmt.Printf("# logs: %s\n", p)
	}
	fmt.Print(string(data))
	return nil
}

type ConfigInitCmd struct {
	Force bool `help:"Overwrite an existing config file."`
}

func (c *ConfigInitCmd) Run(ctx *cli.Context) error {
	path := ctx.ConfigPath
	if path == "" {
		path = config.DefaultPath
	}
	path, err := utils.ExpandPath(path)
	if err != nil {
		return fmt.Errorf("invalid config path: %w", err)
	}
	if _, err := os.Stat(path); err == nil && !c.Force {
		return fmt.Errorf("config file already exists at %s; use --force to overwrite", path)
	}
	if err := config.DefaultConfig().Save(path); err != nil {
		return err
	}
	fmt.Printf("✓ Wrote %s\n", path)
	return nil
}
