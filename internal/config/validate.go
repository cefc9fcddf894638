package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateRoles(); err != nil {
		return err
	}
	if err := c.validateLabels(); err != nil {
		return err
	}
	if err := c.validateBlocks(); err != nil {
		return err
	}
	if err := c.validateSRT(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateRoles() error {
	if c.Roles.Window <= 0 {
		return errors.New("roles.window must be positive")
	}
	if c.Roles.GuestMinInteractions <= 0 {
		return errors.New("roles.guest_min_interactions must be positive")
	}
	if c.Roles.GuestDominance < 1 {
		return errors.New("roles.guest_dominance must be >= 1")
	}
	return nil
}

func (c *Config) validateLabels() error {
	if err := ensureRatio("labels.guest_min_rate", c.Labels.GuestMinRate); err != nil {
		return err
	}
	if c.Labels.GuestMinCount <= 0 {
		return errors.New("labels.guest_min_count must be positive")
	}
	if c.Labels.ADMinSeconds < 0 {
		return errors.New("labels.ad_min_seconds must be >= 0")
	}
	if c.Labels.ADMaxSeconds < c.Labels.ADMinSeconds {
		return errors.New("labels.ad_max_seconds must be >= labels.ad_min_seconds")
	}
	return nil
}

func (c *Config) validateBlocks() error {
	if c.Blocks.MusicMinSeconds <= 0 {
		return errors.New("blocks.music_min_seconds must be positive")
	}
	return ensureRatio("blocks.music_ratio", c.Blocks.MusicRatio)
}

func (c *Config) validateSRT() error {
	if c.SRT.MusicMinSeconds <= 0 {
		return errors.New("srt.music_min_seconds must be positive")
	}
	if c.SRT.GapMusicMinSeconds <= 0 {
		return errors.New("srt.gap_music_min_seconds must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}
	return nil
}

func ensureRatio(name string, value float64) error {
	if value <= 0 || value > 1 {
		return fmt.Errorf("%s must be in (0, 1]", name)
	}
	return nil
}
