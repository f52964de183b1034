package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	derrors "github.com/sage-code/ara-docs/internal/foundation/errors"
	"github.com/sage-code/ara-docs/internal/logfields"
)

var envFiles = []string{".env", ".env.local"}

// loadEnvFiles loads .env and .env.local from dir into the process
// environment. Variables already set are never overwritten, so .env wins over
// .env.local for keys both define.
func loadEnvFiles(dir string) error {
	for _, name := range envFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return derrors.WrapError(err, derrors.CategoryConfig, "failed to load environment file").
				WithContext("path", path).
				Build()
		}
		slog.Debug("Loaded environment file", logfields.Path(path))
	}
	return nil
}
