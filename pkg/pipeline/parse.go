package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/matzehuels/refdoc/pkg/cache"
	"github.com/matzehuels/refdoc/pkg/errors"
	"github.com/matzehuels/refdoc/pkg/model"
	"github.com/matzehuels/refdoc/pkg/observability"
	"github.com/matzehuels/refdoc/pkg/source"
)

const modelKeyType = "model"

// ParseWithCacheInfo parses one source with caching and returns cache hit info.
func (r *Runner) ParseWithCacheInfo(ctx context.Context, src source.Source, opts Options) (*model.Module, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	data, err := os.ReadFile(src.Path)
	if os.IsNotExist(err) {
		return nil, false, errors.Wrap(errors.ErrCodeFileNotFound, err, "%s", src.Path)
	}
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeIO, err, "read %s", src.Path)
	}

	// Compute cache key
	cacheKey := r.Keyer.ModelKey(src.Rel, cache.Hash(data), cache.ModelKeyOpts{
		Parser: parserID(opts.Parser),
	})

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if cached, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			m, err := model.DecodeJSON(bytes.NewReader(cached))
			if err == nil {
				observability.Cache().OnCacheHit(ctx, modelKeyType)
				return m, true, nil // Cache hit
			}
			// If deserialization fails, fall through to re-parse
		}
		observability.Cache().OnCacheMiss(ctx, modelKeyType)
	}

	m, err := opts.Parser.Parse(ctx, src.Path, data)
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	var buf bytes.Buffer
	if err := model.EncodeJSON(m, &buf); err != nil {
		return nil, false, fmt.Errorf("%s: %w", src.Path, err)
	}
	if err := r.Cache.Set(ctx, cacheKey, buf.Bytes(), cache.TTLModel); err == nil {
		observability.Cache().OnCacheSet(ctx, modelKeyType, buf.Len())
	} else {
		r.Logger.Warn("cache write failed", "path", src.Path, "error", err)
	}

	return m, false, nil // Cache miss
}

// parserID identifies a parser in cache keys.
func parserID(p any) string {
	if s, ok := p.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", p)
}
