// Package pipeline runs a complete documentation generation.
//
// This package implements the discover → parse → index → render → write
// pipeline used by the generate and watch commands of the CLI. By
// centralizing this logic, both commands behave identically.
//
// # Architecture
//
// A run has two phases separated by a barrier:
//
//  1. Collect: discover sources and parse each one into a module model
//     (models are cached by source content hash).
//  2. Emit: build the symbol index over every module, then render each
//     module against that index and write or check its document.
//
// No document is rendered before the index holds every module, so a
// reference from the first module to the last one still links.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{Config: cfg})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Stats.Written, "documents written")
//
// With Options.Check set nothing is written; stale documents are reported
// in Result.Stale and the run fails with a STALE_DOCS error.
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/refdoc/pkg/config"
	"github.com/matzehuels/refdoc/pkg/errors"
	"github.com/matzehuels/refdoc/pkg/io"
	"github.com/matzehuels/refdoc/pkg/parser"
	"github.com/matzehuels/refdoc/pkg/source"
	"github.com/matzehuels/refdoc/pkg/symbols"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one run.
type Options struct {
	// Config is the project configuration; nil means config.Default().
	Config *config.Config

	// Check renders everything but writes nothing; stale documents fail
	// the run with STALE_DOCS.
	Check bool

	// Refresh bypasses cached models (they are still refreshed).
	Refresh bool

	// Runtime options
	Logger *log.Logger   `json:"-"`
	Parser parser.Parser `json:"-"` // overrides the parser built from Config

	validated bool
}

// ValidateAndSetDefaults fills defaults and validates the configuration.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Config == nil {
		o.Config = config.Default()
	}
	if err := o.Config.Validate(); err != nil {
		return err
	}
	if o.Parser == nil {
		p, err := parser.New(o.Config.Parser.Command)
		if err != nil {
			return err
		}
		o.Parser = p
	}
	o.validated = true
	return nil
}

// Layout returns the source layout described by the configuration.
func (o *Options) Layout() source.Layout {
	c := o.Config
	return source.Layout{
		SourceRoot:      c.Source.Root,
		SourceExtension: c.Source.Extension,
		OutputRoot:      c.Output.Root,
		OutputExtension: c.Output.Extension,
		SiteRoot:        c.Output.SiteRoot,
	}
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a run.
type Result struct {
	// RunID identifies the run in logs.
	RunID string

	// Index is the symbol index built over every module.
	Index *symbols.Index

	// Documents lists every rendered document in source order.
	Documents []Document

	// Stale holds the diffs of documents that differ from the output tree.
	// Only filled in check mode.
	Stale []StaleDocument

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks model cache usage.
	CacheInfo CacheInfo
}

// Document is one rendered module.
type Document struct {
	Source  source.Source
	Module  string
	Content []byte
	Status  io.Status
}

// StaleDocument is a document whose file on disk is out of date.
type StaleDocument struct {
	Path string
	Diff string
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Sources    int
	Entries    int
	Written    int
	Unchanged  int
	ParseTime  time.Duration
	IndexTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo counts model cache hits and misses.
type CacheInfo struct {
	Hits   int
	Misses int
}

// StaleError builds the error returned by a check run with stale documents.
func StaleError(stale []StaleDocument) error {
	return errors.New(errors.ErrCodeStale, "%d document(s) out of date, run refdoc generate", len(stale))
}
