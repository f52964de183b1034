package render

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
)

// WriteFile atomically replaces root/relativePath with data. The path must
// stay below root; parent directories are created as needed.
func WriteFile(root, relativePath string, data []byte) (string, error) {
	if root == "" {
		return "", errors.New("output directory is required")
	}
	if relativePath == "" {
		return "", errors.New("output path is required")
	}

	cleanRel := filepath.Clean(filepath.FromSlash(relativePath))
	if filepath.IsAbs(cleanRel) || cleanRel == ".." || strings.HasPrefix(cleanRel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("output path %q must be relative to the output directory", relativePath)
	}
	fullPath := filepath.Join(root, cleanRel)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o750); err != nil {
		return "", fmt.Errorf("create directory for %s: %w", relativePath, err)
	}

	pf, err := renameio.NewPendingFile(fullPath, renameio.WithPermissions(0o644))
	if err != nil {
		return "", fmt.Errorf("create pending file for %s: %w", relativePath, err)
	}
	defer func() { _ = pf.Cleanup() }()

	if _, err := pf.Write(data); err != nil {
		return "", fmt.Errorf("write %s: %w", relativePath, err)
	}
	if err := pf.CloseAtomicallyReplace(); err != nil {
		return "", fmt.Errorf("replace %s: %w", relativePath, err)
	}
	return fullPath, nil
}
