package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	derrors "github.com/sage-code/ara-docs/internal/foundation/errors"
	"github.com/sage-code/ara-docs/internal/render"
	"github.com/sage-code/ara-docs/internal/site"
)

const exampleConfig = `# aradocs configuration
# Values may reference environment variables (${VAR}); .env and .env.local
# next to this file are loaded first.

project_root: .
content_dir: src/content/docs

# Built-in site configuration: %s.
# Replace with an inline "site:" block to declare the sidebar yourself.
preset: %s

output:
  directory: dist/aradocs
  formats: [json]  # %s

watch:
  debounce: 300ms
  rescan_interval: 5m
  # metrics_addr: ":9464"

logging:
  level: info
  format: text

check:
  fail_on_warnings: false
`

// Example returns the annotated configuration written by Init.
func Example(preset string) (string, error) {
	if _, err := site.Preset(preset); err != nil {
		return "", err
	}
	if preset == "" {
		preset = site.DefaultPreset
	}
	return fmt.Sprintf(exampleConfig,
		strings.Join(site.PresetNames(), ", "),
		strings.ToLower(strings.TrimSpace(preset)),
		strings.Join(render.Formats(), ", "),
	), nil
}

// Init writes the example configuration to path. An existing file is only
// replaced when force is set.
func Init(path, preset string, force bool) error {
	content, err := Example(preset)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil && !force {
		return derrors.ConfigError("configuration file already exists").
			WithContext("path", path).
			Build()
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return derrors.WrapError(err, derrors.CategoryFileSystem, "cannot stat configuration file").Build()
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return derrors.WrapError(err, derrors.CategoryConfig, "invalid configuration path").Build()
	}
	if _, err := render.WriteFile(filepath.Dir(abs), filepath.Base(abs), []byte(content)); err != nil {
		return derrors.WrapError(err, derrors.CategoryFileSystem, "failed to write configuration file").
			WithContext("path", path).
			Build()
	}
	return nil
}
