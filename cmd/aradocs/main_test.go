package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun_ExitCodes(t *testing.T) {
	assert.Equal(t, 0, run([]string{"presets"}))
	assert.Equal(t, 2, run([]string{"no-such-command"}))

	// Missing content directory is a content error.
	cfg := filepath.Join(t.TempDir(), "aradocs.yaml")
	assert.Equal(t, 11, run([]string{"-c", cfg, "build"}))
}
