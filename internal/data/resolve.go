package data

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/invengine/internal/model"
)

// ResolveOptions bounds a parallel catalog resolve.
type ResolveOptions struct {
	Concurrency int           // max in-flight lookups (<= 0: unlimited)
	Timeout     time.Duration // per-lookup deadline (<= 0: none)
}

// ResolveAll параллельно запрашивает шаблоны для ids.
//
// Каждый id резолвится независимо: промах или таймаут логируются и id просто
// отсутствует в результате. Медленный lookup и промах неразличимы для вызывающего.
// Returns ctx.Err() only if the parent context is done.
func ResolveAll(ctx context.Context, cat model.Catalog, ids []int32, opts ResolveOptions) (map[int32]*model.ItemTemplate, error) {
	out := make(map[int32]*model.ItemTemplate, len(ids))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	if opts.Concurrency > 0 {
		g.SetLimit(opts.Concurrency)
	}

	seen := make(map[int32]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		g.Go(func() error {
			lctx := gctx
			if opts.Timeout > 0 {
				var cancel context.CancelFunc
				lctx, cancel = context.WithTimeout(gctx, opts.Timeout)
				defer cancel()
			}

			tpl, err := cat.ItemByID(lctx, id)
			if err != nil {
				slog.Warn("catalog lookup failed", "item", id, "error", err)
				return nil
			}

			mu.Lock()
			out[id] = tpl
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return out, err
	}
	return out, nil
}
