// Package compiler runs the compilation pipeline of an industry: load, validate,
// build, check, order, generate and write
package compiler

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/idesignres/iisim/pkg/cache"
	"github.com/idesignres/iisim/pkg/industry"
	"github.com/idesignres/iisim/pkg/models"
	"github.com/idesignres/iisim/pkg/models/rendering"
	"github.com/idesignres/iisim/pkg/observability"
	"github.com/idesignres/iisim/pkg/validation"
	"github.com/sirupsen/logrus"
)

// Compiler compiles industry directories into generated artifacts
type Compiler struct {
	log       logrus.FieldLogger
	config    *Config
	templates *rendering.Templates
	validator validation.Validator
	cache     cache.Store
}

// Option configures a Compiler
type Option func(*Compiler)

// WithValidator replaces the schema validator
func WithValidator(v validation.Validator) Option {
	return func(c *Compiler) {
		c.validator = v
	}
}

// WithCache enables the build cache
func WithCache(store cache.Store) Option {
	return func(c *Compiler) {
		c.cache = store
	}
}

// WithTemplates replaces the templates loaded from the configuration
func WithTemplates(templates *rendering.Templates) Option {
	return func(c *Compiler) {
		c.templates = templates
	}
}

// Result is the outcome of compiling one industry
type Result struct {
	RunID     string
	Dir       string
	Industry  string // short name of the industry
	Script    string
	Digest    string // sha256 of the documents and templates
	Processes int
	Queue     []string
	Cached    bool
}

// Filename returns the name of the generated artifact
func (r *Result) Filename() string {
	return strings.ToLower(r.Industry) + ".py"
}

// New creates a compiler
func New(log logrus.FieldLogger, config *Config, opts ...Option) (*Compiler, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	c := &Compiler{
		log:    log.WithField("component", "compiler"),
		config: config,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.templates == nil {
		templates, err := rendering.LoadTemplates(config.TemplatesPath)
		if err != nil {
			return nil, err
		}
		c.templates = templates
	}

	if c.validator == nil {
		validator, err := validation.NewSchemaValidator(log)
		if err != nil {
			return nil, err
		}
		c.validator = validator
	}

	return c, nil
}

// Config returns the compiler configuration
func (c *Compiler) Config() *Config {
	return c.config
}

// Load reads, validates and builds the industry of dir without generating code
func (c *Compiler) Load(ctx context.Context, dir string) (*industry.Industry, error) {
	docs, _, err := c.read(ctx, dir)
	if err != nil {
		return nil, err
	}

	return c.build(dir, docs)
}

// CompileDir runs the whole pipeline for the industry of dir
func (c *Compiler) CompileDir(ctx context.Context, dir string) (*Result, error) {
	start := time.Now()
	name := filepath.Base(dir)
	status := "failed"

	observability.RecordCompilationStart(name)
	defer func() {
		observability.RecordCompilationComplete(name, status, time.Since(start).Seconds())
	}()

	result := &Result{RunID: uuid.New().String(), Dir: dir}
	log := c.log.WithFields(logrus.Fields{
		"industry": name,
		"run_id":   result.RunID,
	})

	docs, digest, err := c.read(ctx, dir)
	if err != nil {
		return nil, err
	}
	result.Digest = digest

	if entry := c.cached(ctx, log, name, digest); entry != nil {
		result.Industry = entry.Industry
		result.Script = entry.Script
		result.Processes = entry.Processes
		result.Cached = true
		status = "cached"

		log.WithField("digest", digest).Debug("Using cached build")

		return result, nil
	}

	ind, err := c.build(dir, docs)
	if err != nil {
		return nil, err
	}

	queue, err := ind.ExecutionQueue()
	if err != nil {
		return nil, err
	}

	if c.config.Verify {
		if err := ind.Verify(); err != nil {
			observability.RecordGoldenCheck(name, "failed")
			return nil, err
		}
		observability.RecordGoldenCheck(name, "passed")
	}

	script, err := ind.Script(c.templates)
	if err != nil {
		return nil, err
	}

	result.Industry = ind.Meta().ShortName()
	result.Script = script
	result.Processes = len(queue)
	result.Queue = queue

	if c.cache != nil {
		if err := c.cache.Set(ctx, digest, cache.Entry{
			Industry:  result.Industry,
			Script:    script,
			Processes: result.Processes,
			RunID:     result.RunID,
		}); err != nil {
			observability.RecordError("cache", "set")
			log.WithError(err).Warn("Failed to store build in cache")
		}
	}

	observability.RecordArtifact(name, result.Processes, len(script))
	status = "success"

	log.WithFields(logrus.Fields{
		"processes": result.Processes,
		"queue":     queue,
	}).Info("Compiled industry")

	return result, nil
}

func (c *Compiler) cached(ctx context.Context, log logrus.FieldLogger, name, digest string) *cache.Entry {
	if c.cache == nil {
		return nil
	}

	entry, err := c.cache.Get(ctx, digest)
	if err != nil {
		observability.RecordError("cache", "get")
		log.WithError(err).Warn("Failed to read build cache")
		return nil
	}

	if entry == nil {
		observability.RecordBuildCacheMiss(name)
		return nil
	}

	observability.RecordBuildCacheHit(name)
	return entry
}

// read loads every document of dir and digests them together with the templates
func (c *Compiler) read(ctx context.Context, dir string) ([]*models.Document, string, error) {
	paths, err := models.Documents(dir)
	if err != nil {
		return nil, "", fmt.Errorf("failed to list documents of %s: %w", dir, err)
	}

	h := sha256.New()
	docs := make([]*models.Document, 0, len(paths))

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, "", err
		}

		doc, err := models.ReadDocument(path)
		if err != nil {
			return nil, "", err
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			rel = path
		}
		_, _ = h.Write([]byte(rel))
		_, _ = h.Write(doc.Data)

		docs = append(docs, doc)
	}

	for _, source := range c.templates.Sources() {
		_, _ = h.Write([]byte(source))
	}

	fmt.Fprintf(h, "%v:%v:%v", c.config.MinUnits, c.config.MaxUnits, c.config.Verify)

	return docs, hex.EncodeToString(h.Sum(nil)), nil
}

// build validates the documents and assembles the industry
func (c *Compiler) build(dir string, docs []*models.Document) (*industry.Industry, error) {
	var (
		metaDoc   *models.Document
		metaCfg   *models.IndustryConfig
		processes []*models.ProcessConfig
	)

	for _, doc := range docs {
		if _, err := c.validator.Validate(doc); err != nil {
			return nil, err
		}

		kind, err := doc.Kind()
		if err != nil {
			return nil, err
		}

		switch kind {
		case models.KindIndustry:
			if metaDoc != nil {
				return nil, fmt.Errorf("%w: %s and %s", ErrMultipleIndustries, metaDoc.Path, doc.Path)
			}

			cfg, err := doc.IndustryConfig()
			if err != nil {
				return nil, err
			}
			metaDoc, metaCfg = doc, cfg
		case models.KindProcess:
			cfg, err := doc.ProcessConfig()
			if err != nil {
				return nil, err
			}
			processes = append(processes, cfg)
		}
	}

	if metaCfg == nil {
		return nil, fmt.Errorf("%w in %s", ErrNoIndustry, dir)
	}

	meta, err := industry.NewMeta(metaCfg)
	if err != nil {
		return nil, err
	}

	ind := industry.New(
		industry.WithLogger(c.log.WithField("industry", metaCfg.ShortName)),
		industry.WithUnitBounds(c.config.MinUnits, c.config.MaxUnits),
	)
	ind.SetMeta(meta)

	for _, cfg := range processes {
		p, err := industry.NewProcess(cfg)
		if err != nil {
			return nil, err
		}

		if err := ind.AddProcess(cfg.ID, p); err != nil {
			return nil, err
		}
	}

	if err := ind.CheckTypes(); err != nil {
		return nil, err
	}

	return ind, nil
}
