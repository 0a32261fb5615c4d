package compiler

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Write stores the artifact of result under the configured output directory
func (c *Compiler) Write(result *Result) (string, error) {
	return c.WriteTo(result, c.config.OutputPath)
}

// WriteTo stores the artifact of result under dir, replacing any previous artifact
// atomically, and returns its path
func (c *Compiler) WriteTo(result *Result, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:gosec // generated sources are world readable
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, result.Filename())

	tmp, err := os.CreateTemp(dir, "."+result.Filename()+".*")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}

	cleanup := func() {
		_ = os.Remove(tmp.Name())
	}

	if _, err := tmp.WriteString(result.Script); err != nil {
		_ = tmp.Close()
		cleanup()
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := tmp.Close(); err != nil {
		cleanup()
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := os.Chmod(tmp.Name(), 0o644); err != nil { //nolint:gosec // generated sources are world readable
		cleanup()
		return "", err
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		cleanup()
		return "", fmt.Errorf("failed to move artifact into place: %w", err)
	}

	c.log.WithFields(logrus.Fields{
		"industry": result.Industry,
		"path":     path,
		"bytes":    len(result.Script),
	}).Info("Wrote artifact")

	return path, nil
}
