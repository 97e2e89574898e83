// Package testsupport holds shared fixtures for pipeline and CLI tests.
package testsupport

import (
	"path/filepath"
	"testing"

	"avatarforge/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.OutputDir = filepath.Join(base, "out")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.JobsDB = filepath.Join(base, "jobs.db")

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithWorkers overrides the batch worker count on the test config.
func WithWorkers(n int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Batch.Workers = n
	}
}

// WithStrict enables strict coverage handling on the test config.
func WithStrict() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Build.Strict = true
	}
}

// WithRulesFile points the test config at a mapping rules file.
func WithRulesFile(path string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Rules.File = path
	}
}
