package config

import (
	"fmt"
	"strings"

	derrors "github.com/sage-code/ara-docs/internal/foundation/errors"
	"github.com/sage-code/ara-docs/internal/foundation/normalization"
	"github.com/sage-code/ara-docs/internal/render"
	"github.com/sage-code/ara-docs/internal/site"
)

func formatNormalizer() *normalization.Normalizer[string] {
	values := map[string]string{}
	for _, f := range render.Formats() {
		values[f] = f
	}
	return normalization.NewNormalizer("output format", values, render.FormatJSON)
}

// normalize canonicalizes enum-like values, rejecting unknown ones.
func (c *Config) normalize() error {
	level, err := logLevelNormalizer.NormalizeWithError(string(c.Logging.Level))
	if err != nil {
		return derrors.WrapError(err, derrors.CategoryConfig, "invalid logging.level").Build()
	}
	c.Logging.Level = level

	format, err := logFormatNormalizer.NormalizeWithError(string(c.Logging.Format))
	if err != nil {
		return derrors.WrapError(err, derrors.CategoryConfig, "invalid logging.format").Build()
	}
	c.Logging.Format = format

	formats := formatNormalizer()
	seen := map[string]bool{}
	out := make([]string, 0, len(c.Output.Formats))
	for _, raw := range c.Output.Formats {
		f, err := formats.NormalizeWithError(raw)
		if err != nil {
			return derrors.WrapError(err, derrors.CategoryConfig, "invalid output.formats").Build()
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	c.Output.Formats = out
	c.Preset = strings.ToLower(strings.TrimSpace(c.Preset))
	return nil
}

// Validate checks the configuration. Inline site configurations are checked
// by the check stage, which reports every problem at once.
func (c *Config) Validate() error {
	if c.Site != nil && c.Preset != "" {
		return derrors.ConfigError("preset and site are mutually exclusive").Build()
	}
	if c.Site == nil {
		if _, err := site.Preset(c.Preset); err != nil {
			return derrors.WrapError(err, derrors.CategoryConfig, "invalid preset").
				WithContext("valid", strings.Join(site.PresetNames(), ", ")).
				Build()
		}
	}
	if c.Watch.Debounce < 0 {
		return derrors.ConfigError(fmt.Sprintf("watch.debounce must not be negative, got %s", c.Watch.Debounce)).Build()
	}
	if c.Watch.RescanInterval < 0 {
		return derrors.ConfigError(fmt.Sprintf("watch.rescan_interval must not be negative, got %s", c.Watch.RescanInterval)).Build()
	}
	return nil
}
