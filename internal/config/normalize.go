package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeRules(); err != nil {
		return err
	}
	c.normalizeGraph()
	c.normalizeBatch()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.JobsDB) == "" {
		c.Paths.JobsDB = defaultJobsDB
	}
	if c.Paths.JobsDB, err = expandPath(c.Paths.JobsDB); err != nil {
		return fmt.Errorf("paths.jobs_db: %w", err)
	}
	return nil
}

func (c *Config) normalizeRules() error {
	c.Rules.File = strings.TrimSpace(c.Rules.File)
	if c.Rules.File != "" {
		expanded, err := expandPath(c.Rules.File)
		if err != nil {
			return fmt.Errorf("rules.file: %w", err)
		}
		c.Rules.File = expanded
	}
	c.Rules.Language = strings.ToLower(strings.TrimSpace(c.Rules.Language))
	if c.Rules.Language == "" {
		c.Rules.Language = defaultLanguage
	}
	return nil
}

func (c *Config) normalizeGraph() {
	presets := make([]string, 0, len(c.Graph.Presets))
	seen := map[string]struct{}{}
	for _, preset := range c.Graph.Presets {
		trimmed := strings.ToLower(strings.TrimSpace(preset))
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		presets = append(presets, trimmed)
	}
	c.Graph.Presets = presets
}

func (c *Config) normalizeBatch() {
	if c.Batch.Workers <= 0 {
		c.Batch.Workers = defaultBatchWorkers
	}
	c.Batch.Pattern = strings.TrimSpace(c.Batch.Pattern)
	if c.Batch.Pattern == "" {
		c.Batch.Pattern = defaultBatchPattern
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
