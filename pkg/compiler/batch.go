package compiler

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/idesignres/iisim/pkg/models"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// CompileAll compiles and writes every industry directory below root. A failing
// industry is logged and skipped; the returned error aggregates every failure.
func (c *Compiler) CompileAll(ctx context.Context, root string) ([]*Result, error) {
	dirs, err := models.NewDiscovery(root).Industries()
	if err != nil {
		return nil, fmt.Errorf("failed to list industries in %s: %w", root, err)
	}

	results := make([]*Result, len(dirs))
	failures := make([]error, len(dirs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.config.Concurrency)

	for i, dir := range dirs {
		g.Go(func() error {
			name := filepath.Base(dir)

			result, err := c.CompileDir(gctx, dir)
			if err == nil {
				_, err = c.Write(result)
			}

			if err != nil {
				c.log.WithError(err).WithField("industry", name).Error("Failed to compile industry")
				failures[i] = fmt.Errorf("industry %s: %w", name, err)
				return nil
			}

			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	compiled := make([]*Result, 0, len(results))
	for _, result := range results {
		if result != nil {
			compiled = append(compiled, result)
		}
	}

	return compiled, multierr.Combine(failures...)
}
