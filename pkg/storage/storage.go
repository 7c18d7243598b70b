// Package storage provides a filesystem staging area for uploaded files
// awaiting processing.
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/slatehq/slate/pkg/lifecycle"
)

// System manages staged files and lifecycle coordination.
type System interface {
	// Start registers a startup hook that initializes the staging directory
	// and a shutdown hook that clears it.
	Start(lc *lifecycle.Coordinator) error
	// Stage writes data to a file at the given key and returns its absolute path.
	Stage(ctx context.Context, key string, reader io.Reader) (string, error)
	// Remove deletes the staged file at the given key.
	// Returns ErrNotFound if the file does not exist.
	Remove(ctx context.Context, key string) error
	// Exists reports whether a staged file exists at the given key.
	Exists(ctx context.Context, key string) (bool, error)
}

type filesystem struct {
	dir    string
	logger *slog.Logger
}

// New creates a staging system rooted at the configured directory.
// The directory is not created until Start is called.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	dir, err := filepath.Abs(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("resolve staging dir: %w", err)
	}

	return &filesystem{
		dir:    dir,
		logger: logger.With("system", "storage"),
	}, nil
}

func (f *filesystem) Start(lc *lifecycle.Coordinator) error {
	f.logger.Info("starting staging storage")

	lc.OnStartup(func() {
		if err := os.MkdirAll(f.dir, 0o755); err != nil {
			f.logger.Error("staging directory initialization failed", "error", err)
			return
		}

		f.logger.Info("staging directory ready", "dir", f.dir)
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()

		if err := os.RemoveAll(f.dir); err != nil {
			f.logger.Error("staging directory cleanup failed", "error", err)
			return
		}

		f.logger.Info("staging directory cleared")
	})

	return nil
}

func (f *filesystem) Stage(ctx context.Context, key string, reader io.Reader) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := filepath.Join(f.dir, key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("stage file %s: %w", key, err)
	}

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("stage file %s: %w", key, err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("stage file %s: %w", key, err)
	}

	return path, nil
}

func (f *filesystem) Remove(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	path := filepath.Join(f.dir, key)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("remove staged file %s: %w", key, err)
	}

	return nil
}

func (f *filesystem) Exists(ctx context.Context, key string) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	_, err := os.Stat(filepath.Join(f.dir, key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("check staged file %s: %w", key, err)
	}

	return true, nil
}

func validateKey(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if strings.Contains(key, "..") || strings.HasPrefix(key, "/") {
		return ErrInvalidKey
	}
	return nil
}
