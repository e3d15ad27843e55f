package console

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/onebus/fleet-console/internal/domain/model"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const optionFetchTimeout = 30 * time.Second

// OptionSource fetches one enum endpoint.
type OptionSource interface {
	Options(ctx context.Context, path string) ([]model.Option, error)
}

// OptionLoader loads enum option lists and caches them for the process
// lifetime. Concurrent loads of the same path share one request.
type OptionLoader struct {
	src    OptionSource
	logger zerolog.Logger
	group  singleflight.Group

	mu    sync.RWMutex
	cache map[string][]model.Option
}

// NewOptionLoader creates a loader over src.
func NewOptionLoader(src OptionSource, logger zerolog.Logger) *OptionLoader {
	return &OptionLoader{
		src:    src,
		logger: logger.With().Str("component", "options").Logger(),
		cache:  make(map[string][]model.Option),
	}
}

// Load fetches every path concurrently. The first failure cancels the rest
// and is returned; no partial result is returned with it.
func (l *OptionLoader) Load(ctx context.Context, paths ...string) (map[string][]model.Option, error) {
	var mu sync.Mutex
	out := make(map[string][]model.Option, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	for _, p := range paths {
		g.Go(func() error {
			opts, err := l.one(gctx, p)
			if err != nil {
				return err
			}
			mu.Lock()
			out[p] = opts
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Invalidate drops cached lists. Without paths the whole cache is dropped.
func (l *OptionLoader) Invalidate(paths ...string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(paths) == 0 {
		clear(l.cache)
		return
	}
	for _, p := range paths {
		delete(l.cache, optionKey(p))
	}
}

func (l *OptionLoader) one(ctx context.Context, path string) ([]model.Option, error) {
	key := optionKey(path)

	l.mu.RLock()
	cached, ok := l.cache[key]
	l.mu.RUnlock()
	if ok {
		return slices.Clone(cached), nil
	}

	// The shared fetch outlives any one caller; each caller stops waiting
	// on its own ctx.
	ch := l.group.DoChan(key, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), optionFetchTimeout)
		defer cancel()
		opts, err := l.src.Options(fetchCtx, key)
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		l.cache[key] = opts
		l.mu.Unlock()
		return opts, nil
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if res.Err != nil {
		l.logger.Warn().Err(res.Err).Str("path", key).Msg("option load failed")
		return nil, res.Err
	}
	l.logger.Debug().Str("path", key).Bool("shared", res.Shared).Msg("options loaded")
	return slices.Clone(res.Val.([]model.Option)), nil
}

func optionKey(path string) string {
	return "/" + strings.Trim(strings.TrimSpace(path), "/")
}

// Label returns the name of value in opts, or the value itself when absent.
func Label(opts []model.Option, value int) string {
	for _, o := range opts {
		if o.Value == value {
			return o.Name
		}
	}
	return strconv.Itoa(value)
}
