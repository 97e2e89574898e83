package config

import (
	"errors"
	"fmt"
)

var knownPresets = map[string]struct{}{
	"idle-talk":    {},
	"full-emotion": {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAtlas(); err != nil {
		return err
	}
	if err := c.validateGraph(); err != nil {
		return err
	}
	if err := c.validateLipsync(); err != nil {
		return err
	}
	if err := c.validateOptimizer(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateAtlas() error {
	if c.Atlas.MinSize <= 0 {
		return errors.New("atlas.min_size must be positive")
	}
	return nil
}

func (c *Config) validateGraph() error {
	for _, preset := range c.Graph.Presets {
		if _, ok := knownPresets[preset]; !ok {
			return fmt.Errorf("graph.presets: unknown preset %q", preset)
		}
	}
	return nil
}

func (c *Config) validateLipsync() error {
	if c.Lipsync.SpeechRateWPM <= 0 {
		return errors.New("lipsync.speech_rate_wpm must be positive")
	}
	if c.Lipsync.SampleRate <= 0 {
		return errors.New("lipsync.sample_rate must be positive")
	}
	return nil
}

func (c *Config) validateOptimizer() error {
	if c.Optimizer.TargetWidth <= 0 || c.Optimizer.TargetHeight <= 0 {
		return errors.New("optimizer target dimensions must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
