package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	// BaseDir holds one directory per broadcast date (YYYYMMDD).
	BaseDir  string `toml:"base_dir"`
	LogDir   string `toml:"log_dir"`
	StateDir string `toml:"state_dir"`
}

// Layout describes where artifacts live inside a broadcast date directory.
type Layout struct {
	TranscriptSubdir string `toml:"transcript_subdir"`
}

// Roles tunes speaker role inference.
type Roles struct {
	// Window is the number of positions inspected on each side of a speaker
	// occurrence when counting DJ interactions.
	Window               int     `toml:"window"`
	GuestMinInteractions int     `toml:"guest_min_interactions"`
	GuestDominance       float64 `toml:"guest_dominance"`
}

// Labels tunes the per-segment label assignment.
type Labels struct {
	GuestMinRate  float64 `toml:"guest_min_rate"`
	GuestMinCount int     `toml:"guest_min_count"`
	ADMinSeconds  float64 `toml:"ad_min_seconds"`
	ADMaxSeconds  float64 `toml:"ad_max_seconds"`
}

// Blocks tunes block type decisions.
type Blocks struct {
	MusicMinSeconds float64 `toml:"music_min_seconds"`
	MusicRatio      float64 `toml:"music_ratio"`
}

// SRT controls conversion of SRT transcripts into segment tables.
type SRT struct {
	Enabled            bool    `toml:"enabled"`
	MusicMinSeconds    float64 `toml:"music_min_seconds"`
	GapMusicMinSeconds float64 `toml:"gap_music_min_seconds"`
}

// Store controls persistence of run results.
type Store struct {
	Enabled bool `toml:"enabled"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for radiotimeline.
//
// Configuration sections by subsystem:
//   - Paths: broadcast archive root, logs and state database
//   - Layout: per-date artifact directory
//   - Roles, Labels, Blocks: classification thresholds
//   - SRT: SRT to segment table conversion
//   - Store: SQLite persistence of results
//   - Logging: log format and level
type Config struct {
	Paths   Paths   `toml:"paths"`
	Layout  Layout  `toml:"layout"`
	Roles   Roles   `toml:"roles"`
	Labels  Labels  `toml:"labels"`
	Blocks  Blocks  `toml:"blocks"`
	SRT     SRT     `toml:"srt"`
	Store   Store   `toml:"store"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("radiotimeline.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the log and state directories. The broadcast
// archive is never created: a missing archive is reported by preflight.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.LogDir, c.Paths.StateDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// DayDir returns the transcript directory for one broadcast date.
func (c *Config) DayDir(date string) string {
	return filepath.Join(c.Paths.BaseDir, date, c.Layout.TranscriptSubdir)
}

// DatabasePath returns the SQLite database location.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Paths.StateDir, "radiotimeline.db")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
