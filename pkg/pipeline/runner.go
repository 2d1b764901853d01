package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/refdoc/pkg/cache"
	"github.com/matzehuels/refdoc/pkg/io"
	"github.com/matzehuels/refdoc/pkg/model"
	"github.com/matzehuels/refdoc/pkg/observability"
	"github.com/matzehuels/refdoc/pkg/render"
	"github.com/matzehuels/refdoc/pkg/source"
	"github.com/matzehuels/refdoc/pkg/symbols"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Watch mode reuses one Runner for every
// regeneration.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// collected is the output of the first phase.
type collected struct {
	sources []source.Source
	modules []*model.Module
}

// Execute runs the complete pipeline: every module is parsed and indexed
// before the first document is rendered.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{RunID: uuid.NewString()}
	logger := opts.Logger.With("run", result.RunID)

	// Phase 1: Collect
	c, err := r.collect(ctx, opts, result, logger)
	if err != nil {
		return nil, err
	}

	// Barrier: the index covers every module before anything renders.
	result.Index = r.buildIndex(ctx, c, result, logger)

	// Phase 2: Emit. A failed document does not stop the others.
	docErr, err := r.emit(ctx, opts, c, result, logger)
	if err != nil {
		return nil, err
	}

	logger.Info("generated documentation",
		"sources", result.Stats.Sources,
		"written", result.Stats.Written,
		"unchanged", result.Stats.Unchanged,
		"cache_hits", result.CacheInfo.Hits)

	if docErr != nil {
		return result, docErr
	}
	if opts.Check && len(result.Stale) > 0 {
		return result, StaleError(result.Stale)
	}
	return result, nil
}

// Index runs the first phase only and returns the symbol index.
func (r *Runner) Index(ctx context.Context, opts Options) (*symbols.Index, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{RunID: uuid.NewString()}
	logger := opts.Logger.With("run", result.RunID)
	c, err := r.collect(ctx, opts, result, logger)
	if err != nil {
		return nil, err
	}
	return r.buildIndex(ctx, c, result, logger), nil
}

func (r *Runner) collect(ctx context.Context, opts Options, result *Result, logger *log.Logger) (*collected, error) {
	layout := opts.Layout()
	sources, err := source.Discover(layout)
	if err != nil {
		return nil, fmt.Errorf("discover: %w", err)
	}
	observability.Pipeline().OnDiscover(ctx, layout.SourceRoot, len(sources))
	result.Stats.Sources = len(sources)
	logger.Debug("discovered sources", "root", layout.SourceRoot, "count", len(sources))

	start := time.Now()
	c := &collected{sources: sources, modules: make([]*model.Module, len(sources))}
	for i, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		parseStart := time.Now()
		m, hit, err := r.ParseWithCacheInfo(ctx, src, opts)
		observability.Pipeline().OnParseComplete(ctx, src.Path, hit, time.Since(parseStart), err)
		if err != nil {
			return nil, fmt.Errorf("parse: %w", err)
		}
		if hit {
			result.CacheInfo.Hits++
		} else {
			result.CacheInfo.Misses++
		}
		c.modules[i] = m
	}
	result.Stats.ParseTime = time.Since(start)

	logger.Info("parsed sources",
		"count", len(sources),
		"cached", result.CacheInfo.Hits,
		"duration", result.Stats.ParseTime)
	return c, nil
}

func (r *Runner) buildIndex(ctx context.Context, c *collected, result *Result, logger *log.Logger) *symbols.Index {
	start := time.Now()
	located := make([]symbols.Located, len(c.modules))
	for i, m := range c.modules {
		located[i] = symbols.Located{Module: m, URL: c.sources[i].URL}
	}
	idx := symbols.Build(located)
	result.Stats.Entries = idx.Len()
	result.Stats.IndexTime = time.Since(start)
	observability.Pipeline().OnIndexBuilt(ctx, idx.Len(), result.Stats.IndexTime)
	logger.Debug("built symbol index", "entries", idx.Len(), "duration", result.Stats.IndexTime)
	return idx
}

// emit renders and persists every module. Per-document failures are
// logged and returned joined as docErr; err is reserved for failures that
// stop the whole phase (bad rules, cancellation).
func (r *Runner) emit(ctx context.Context, opts Options, c *collected, result *Result, logger *log.Logger) (docErr, err error) {
	rules, err := opts.Config.ExternalRules()
	if err != nil {
		return nil, err
	}
	renderer := render.New(symbols.NewLinker(result.Index, rules), render.Options{
		CodeLanguage: opts.Config.Render.CodeLanguage,
		BooleanName:  opts.Config.Render.BooleanType,
	})

	start := time.Now()
	var failed []error
	for i, m := range c.modules {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		src := c.sources[i]

		if err := r.emitOne(ctx, opts, renderer, m, src, result, logger); err != nil {
			logger.Error("document failed", "source", src.Rel, "err", err)
			failed = append(failed, err)
		}
	}
	result.Stats.RenderTime = time.Since(start)
	return errors.Join(failed...), nil
}

func (r *Runner) emitOne(ctx context.Context, opts Options, renderer *render.Renderer, m *model.Module, src source.Source, result *Result, logger *log.Logger) error {
	renderStart := time.Now()
	doc, err := renderer.Module(m)
	observability.Pipeline().OnRenderComplete(ctx, m.Name, time.Since(renderStart), err)
	if err != nil {
		return fmt.Errorf("render %s: %w", src.Rel, err)
	}
	content := doc.Bytes()

	status, err := r.persist(opts, src.OutPath, content, result)
	if err != nil {
		return fmt.Errorf("persist %s: %w", src.Rel, err)
	}
	observability.Pipeline().OnWrite(ctx, src.OutPath, string(status))
	logger.Debug("document", "path", src.OutPath, "status", status)

	result.Documents = append(result.Documents, Document{
		Source:  src,
		Module:  m.Name,
		Content: content,
		Status:  status,
	})
	return nil
}

// persist writes content, or in check mode compares it with the file on disk.
func (r *Runner) persist(opts Options, path string, content []byte, result *Result) (io.Status, error) {
	if opts.Check {
		stale, current, err := io.Compare(path, content)
		if err != nil {
			return "", err
		}
		if !stale {
			result.Stats.Unchanged++
			return io.Unchanged, nil
		}
		result.Stale = append(result.Stale, StaleDocument{Path: path, Diff: io.Diff(path, current, content)})
		return io.Stale, nil
	}

	status, err := io.WriteFile(path, content)
	if err != nil {
		return "", err
	}
	switch status {
	case io.Written:
		result.Stats.Written++
	case io.Unchanged:
		result.Stats.Unchanged++
	}
	return status, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
