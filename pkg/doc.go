// Package pkg provides the libraries behind refdoc, a reference
// documentation generator for annotated Lua modules.
//
// # Overview
//
// refdoc reads a parsed model of every module in a source tree and writes
// one Markdown page per module, in which every mention of a documented
// symbol links to its definition. The pkg directory is organized into:
//
//  1. [model] - The module model (modules, classes, functions, types) and its codec
//  2. [symbols] - The global symbol index and the link substitution built on it
//  3. [typestr], [properties], [markdown], [render] - Turning one module into a document
//  4. [parser], [source], [cache], [io] - Reading sources and writing documents
//  5. [pipeline] - Orchestration (discover → parse → index → render → write)
//  6. [config], [errors], [observability], [watch], [buildinfo] - Supporting infrastructure
//
// # Architecture
//
// Generation has two phases with a barrier between them:
//
//	sources on disk
//	     ↓
//	[parser] package (one model per source, cached by [cache])
//	     ↓
//	[symbols] package (index over every module)
//	     ↓
//	[render] package (one document per module, links resolved)
//	     ↓
//	[io] package (atomic writes, or diffs in check mode)
//
// # Quick Start
//
//	cfg, _ := config.Load(config.FileName)
//	runner := pipeline.NewRunner(nil, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{Config: cfg})
package pkg
