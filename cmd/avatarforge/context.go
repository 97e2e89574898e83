package main

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/spf13/cobra"

	"avatarforge/internal/config"
	"avatarforge/internal/jobs"
	"avatarforge/internal/logging"
)

// commandContext carries lazily loaded state shared by subcommands. Config
// loading is deferred until a command actually needs it so commands like
// "config init" can run against a missing or broken file.
type commandContext struct {
	configFlag  *string
	verboseFlag *bool

	configOnce sync.Once
	cfg        *config.Config
	configPath string
	configErr  error
}

func newCommandContext(configFlag *string, verboseFlag *bool) *commandContext {
	return &commandContext{configFlag: configFlag, verboseFlag: verboseFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, _, err := config.Load(*c.configFlag)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = fmt.Errorf("prepare directories: %w", err)
			return
		}
		c.cfg = cfg
		c.configPath = path
	})
	return c.cfg, c.configErr
}

func (c *commandContext) configValue() (*config.Config, error) {
	return c.ensureConfig()
}

// newLogger builds a logger from the loaded configuration. The --verbose
// flag lowers the level to debug regardless of what the config says.
func (c *commandContext) newLogger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	verbose := c.verboseFlag != nil && *c.verboseFlag
	return logging.New(logging.Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		OutputPaths: []string{"stderr"},
		Verbose:     verbose,
	})
}

// openStore opens the jobs ledger at the configured path. Callers own the
// returned store and must close it.
func (c *commandContext) openStore() (*jobs.Store, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	store, err := jobs.Open(cfg.Paths.JobsDB)
	if err != nil {
		return nil, fmt.Errorf("open jobs database: %w", err)
	}
	return store, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for current := cmd; current != nil; current = current.Parent() {
		if current.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
