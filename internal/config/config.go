// Package config loads the aradocs configuration file (aradocs.yaml).
//
// Loading order: .env and .env.local next to the configuration file are read
// into the process environment (existing variables win), ${VAR} references
// in the file are expanded, the YAML is decoded strictly, defaults are
// applied, and the result is validated.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sage-code/ara-docs/internal/docs"
	derrors "github.com/sage-code/ara-docs/internal/foundation/errors"
	"github.com/sage-code/ara-docs/internal/render"
	"github.com/sage-code/ara-docs/internal/site"
)

// DefaultFile is the configuration file looked up in the working directory.
const DefaultFile = "aradocs.yaml"

// Defaults.
const (
	DefaultOutputDir      = "dist/aradocs"
	DefaultDebounce       = 300 * time.Millisecond
	DefaultRescanInterval = 5 * time.Minute
)

// Config is the aradocs configuration.
type Config struct {
	// ProjectRoot is relative to the configuration file.
	ProjectRoot string `yaml:"project_root"`
	// ContentDir is relative to ProjectRoot.
	ContentDir string `yaml:"content_dir"`
	// Preset names a built-in site configuration. Mutually exclusive with Site.
	Preset  string        `yaml:"preset,omitempty"`
	Site    *site.Config  `yaml:"site,omitempty"`
	Output  OutputConfig  `yaml:"output"`
	Watch   WatchConfig   `yaml:"watch"`
	Logging LoggingConfig `yaml:"logging"`
	Check   CheckConfig   `yaml:"check"`

	// baseDir is the directory of the loaded file.
	baseDir string
}

// OutputConfig selects where and what the build writes.
type OutputConfig struct {
	// Directory is relative to ProjectRoot.
	Directory string   `yaml:"directory"`
	Formats   []string `yaml:"formats"`
}

// WatchConfig tunes watch mode.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
	// RescanInterval schedules full rebuilds (default 5m); zero disables them.
	RescanInterval time.Duration `yaml:"rescan_interval"`
	// MetricsAddr serves Prometheus metrics while watching (":9464"); empty disables.
	MetricsAddr string `yaml:"metrics_addr,omitempty"`
	// MetricsTextfile is rewritten after every build; empty disables.
	MetricsTextfile string `yaml:"metrics_textfile,omitempty"`
}

// LoggingConfig configures log/slog.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// CheckConfig tunes the check stage.
type CheckConfig struct {
	FailOnWarnings bool `yaml:"fail_on_warnings"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	c := defaults()
	c.applyDefaults()
	return c
}

// defaults holds the values a file overrides key by key. The preset is left
// empty so that an inline site does not conflict with it.
func defaults() *Config {
	return &Config{
		ProjectRoot: ".",
		ContentDir:  docs.DefaultContentDir,
		Output:      OutputConfig{Directory: DefaultOutputDir, Formats: []string{render.FormatJSON}},
		Watch:       WatchConfig{Debounce: DefaultDebounce, RescanInterval: DefaultRescanInterval},
		Logging:     LoggingConfig{Level: LogLevelInfo, Format: LogFormatText},
	}
}

func (c *Config) applyDefaults() {
	if c.ProjectRoot == "" {
		c.ProjectRoot = "."
	}
	if c.ContentDir == "" {
		c.ContentDir = docs.DefaultContentDir
	}
	if c.Site == nil && c.Preset == "" {
		c.Preset = site.DefaultPreset
	}
	if c.Output.Directory == "" {
		c.Output.Directory = DefaultOutputDir
	}
	if len(c.Output.Formats) == 0 {
		c.Output.Formats = []string{render.FormatJSON}
	}
	if c.Watch.Debounce == 0 {
		c.Watch.Debounce = DefaultDebounce
	}
	if c.Logging.Level == "" {
		c.Logging.Level = LogLevelInfo
	}
	if c.Logging.Format == "" {
		c.Logging.Format = LogFormatText
	}
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, derrors.WrapError(err, derrors.CategoryConfig, "invalid configuration path").Build()
	}
	baseDir := filepath.Dir(abs)
	if err := loadEnvFiles(baseDir); err != nil {
		return nil, err
	}

	// #nosec G304 -- the configuration path is chosen by the user.
	data, err := os.ReadFile(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, derrors.NewError(derrors.CategoryNotFound, "configuration file not found").
				WithContext("path", path).
				Build()
		}
		return nil, derrors.WrapError(err, derrors.CategoryConfig, "failed to read configuration file").
			WithContext("path", path).
			Build()
	}

	cfg, err := Parse([]byte(os.ExpandEnv(string(data))))
	if err != nil {
		return nil, err
	}
	cfg.baseDir = baseDir
	return cfg, nil
}

// LoadOrDefault loads path, falling back to Default (rooted at the
// directory of path) when the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if derrors.HasCategory(err, derrors.CategoryNotFound) {
		cfg = Default()
		if abs, absErr := filepath.Abs(filepath.Dir(path)); absErr == nil {
			cfg.baseDir = abs
		}
		return cfg, nil
	}
	return cfg, err
}

// Parse decodes, defaults, normalizes and validates YAML configuration data.
// Unknown keys are rejected. Relative paths resolve against the working
// directory until SetBaseDir is called.
func Parse(data []byte) (*Config, error) {
	cfg := defaults()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, derrors.WrapError(err, derrors.CategoryConfig, "failed to parse configuration").Build()
	}
	cfg.applyDefaults()
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SiteConfig returns the site configuration: the inline site when present,
// otherwise the named preset.
func (c *Config) SiteConfig() (*site.Config, error) {
	if c.Site != nil {
		return c.Site.Clone(), nil
	}
	return site.Preset(c.Preset)
}

// BaseDir returns the directory relative paths are resolved against.
func (c *Config) BaseDir() string {
	if c.baseDir == "" {
		return "."
	}
	return c.baseDir
}

// SetBaseDir overrides the directory relative paths are resolved against.
func (c *Config) SetBaseDir(dir string) { c.baseDir = dir }

// ProjectPath returns the project root.
func (c *Config) ProjectPath() string {
	return resolve(c.BaseDir(), c.ProjectRoot)
}

// ContentPath returns the content directory.
func (c *Config) ContentPath() string {
	return resolve(c.ProjectPath(), c.ContentDir)
}

// OutputPath returns the output directory.
func (c *Config) OutputPath() string {
	return resolve(c.ProjectPath(), c.Output.Directory)
}

func resolve(base, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, filepath.FromSlash(p))
}

// Marshal encodes the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode configuration: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode configuration: %w", err)
	}
	return buf.Bytes(), nil
}
