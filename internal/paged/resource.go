// Package paged implements the list screen state machine shared by every
// resource: search, filters, page size and page drive one server-paginated
// fetch, whose result replaces the visible page wholesale.
package paged

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/onebus/fleet-console/internal/domain/model"
	"github.com/onebus/fleet-console/internal/fleetapi"
	"github.com/onebus/fleet-console/internal/observability/metrics"
	"github.com/onebus/fleet-console/internal/observability/statsd"
	"github.com/onebus/fleet-console/internal/pagination"
	"github.com/rs/zerolog"
)

// FetchErrorMessage is shown when a list fetch fails.
const FetchErrorMessage = "Could not load the records. Please try again."

// DefaultDebounce is the quiet period before a search term is fetched.
const DefaultDebounce = 500 * time.Millisecond

// Status is the fetch state of a list.
type Status int

const (
	// StatusIdle means nothing was fetched yet.
	StatusIdle Status = iota
	// StatusLoading means a fetch is in flight.
	StatusLoading
	// StatusSuccess means the last fetch succeeded.
	StatusSuccess
	// StatusFailure means the last fetch failed; the previous items are kept.
	StatusFailure
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusFailure:
		return "failure"
	default:
		return "idle"
	}
}

// ErrStale is returned by fetches whose response was dropped because a newer
// request had been dispatched. It is only produced when the stale guard is on.
var ErrStale = errors.New("paged: response superseded by a newer request")

// Fetcher is the backend collection a list reads from.
type Fetcher[T any] interface {
	List(ctx context.Context, q fleetapi.ListQuery) (model.Page[T], error)
	Delete(ctx context.Context, id int64) error
}

// Snapshot is a copy of a list's state.
type Snapshot[T any, F model.Filter] struct {
	Status       Status
	Items        []T
	Pagination   model.PaginationState
	Page         int
	Search       string
	Filter       F
	OrderField   string
	OrderType    fleetapi.SortDir
	Err          error
	ErrorMessage string
	Window       []int
}

// Option configures a Resource.
type Option func(*options)

type options struct {
	debounce   time.Duration
	pageSize   int
	staleGuard bool
	sink       statsd.Sink
	logger     zerolog.Logger
	onChange   func()
}

// WithDebounce sets the search debounce period.
func WithDebounce(d time.Duration) Option { return func(o *options) { o.debounce = d } }

// WithPageSize sets the initial page size.
func WithPageSize(n int) Option { return func(o *options) { o.pageSize = n } }

// WithStaleResponseGuard drops responses that arrive after a newer request
// was dispatched. Without it the last response to arrive wins.
func WithStaleResponseGuard() Option { return func(o *options) { o.staleGuard = true } }

// WithMetrics sets the metrics sink.
func WithMetrics(sink statsd.Sink) Option { return func(o *options) { o.sink = sink } }

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option { return func(o *options) { o.logger = l } }

// WithOnChange registers a callback run after every state transition.
func WithOnChange(fn func()) Option { return func(o *options) { o.onChange = fn } }

// Resource is the state machine of one list screen.
type Resource[T any, F model.Filter] struct {
	name      string
	fetcher   Fetcher[T]
	opts      options
	debouncer *Debouncer
	logger    zerolog.Logger

	mu         sync.Mutex
	status     Status
	items      []T
	pagination model.PaginationState
	page       int
	pageSize   int
	search     string
	filter     F
	orderField string
	orderType  fleetapi.SortDir
	err        error
	seq        uint64
}

// New creates a list over fetcher. name tags logs and metrics.
func New[T any, F model.Filter](name string, fetcher Fetcher[T], opts ...Option) *Resource[T, F] {
	o := options{debounce: DefaultDebounce, pageSize: 10, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	size := max(o.pageSize, 1)
	return &Resource[T, F]{
		name:       name,
		fetcher:    fetcher,
		opts:       o,
		debouncer:  NewDebouncer(o.debounce),
		logger:     o.logger.With().Str("component", "paged").Str("resource", name).Logger(),
		items:      []T{},
		pagination: model.NewPaginationState(size),
		pageSize:   size,
	}
}

// Load fetches with the current state.
func (r *Resource[T, F]) Load(ctx context.Context) error {
	return r.fetch(ctx)
}

// Refresh re-runs the current fetch. It is the same as Load.
func (r *Resource[T, F]) Refresh(ctx context.Context) error {
	return r.fetch(ctx)
}

// SetSearch records a new search term. The fetch runs on its own goroutine
// once no other SetSearch call arrived for the debounce period; it then
// resets to the first page. ctx must outlive the debounce period.
func (r *Resource[T, F]) SetSearch(ctx context.Context, term string) {
	r.debouncer.Trigger(func() {
		r.mu.Lock()
		r.search = term
		r.page = 0
		r.mu.Unlock()
		if err := r.fetch(ctx); err != nil {
			r.logger.Debug().Err(err).Msg("debounced fetch failed")
		}
	})
}

// SearchNow applies term immediately, skipping the debounce.
func (r *Resource[T, F]) SearchNow(ctx context.Context, term string) error {
	r.debouncer.Stop()
	r.mu.Lock()
	r.search = term
	r.page = 0
	r.mu.Unlock()
	return r.fetch(ctx)
}

// SetFilter replaces the filters and fetches the first page.
func (r *Resource[T, F]) SetFilter(ctx context.Context, f F) error {
	r.mu.Lock()
	r.filter = f
	r.page = 0
	r.mu.Unlock()
	return r.fetch(ctx)
}

// SetPageSize changes the page size and fetches the first page.
func (r *Resource[T, F]) SetPageSize(ctx context.Context, n int) error {
	r.mu.Lock()
	r.pageSize = max(n, 1)
	r.page = 0
	r.mu.Unlock()
	return r.fetch(ctx)
}

// SetPage fetches the zero-based page, keeping search and filters.
func (r *Resource[T, F]) SetPage(ctx context.Context, page int) error {
	r.mu.Lock()
	r.page = max(page, 0)
	r.mu.Unlock()
	return r.fetch(ctx)
}

// SetOrder changes the sort and refetches the current page.
func (r *Resource[T, F]) SetOrder(ctx context.Context, field string, dir fleetapi.SortDir) error {
	r.mu.Lock()
	r.orderField = field
	r.orderType = dir
	r.mu.Unlock()
	return r.fetch(ctx)
}

// Delete removes one record and, on success, re-runs the current fetch so the
// page and counts come from the server. A failed delete leaves the list as is.
func (r *Resource[T, F]) Delete(ctx context.Context, id int64) error {
	if err := r.fetcher.Delete(ctx, id); err != nil {
		r.logger.Warn().Err(err).Int64("id", id).Msg("delete failed")
		return err
	}
	r.logger.Info().Int64("id", id).Msg("record deleted")
	return r.fetch(ctx)
}

// Params is the list state a fetch is built from.
type Params[F model.Filter] struct {
	Search     string
	Filter     F
	Page       int
	PageSize   int
	OrderField string
	OrderType  fleetapi.SortDir
}

// Restore replaces the list state without fetching. A non-positive page size
// keeps the current one.
func (r *Resource[T, F]) Restore(p Params[F]) {
	r.debouncer.Stop()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.search = p.Search
	r.filter = p.Filter
	r.page = max(p.Page, 0)
	if p.PageSize > 0 {
		r.pageSize = p.PageSize
	}
	r.orderField = p.OrderField
	r.orderType = p.OrderType
}

// Query returns the request the next fetch would send.
func (r *Resource[T, F]) Query() fleetapi.ListQuery {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.queryLocked()
}

func (r *Resource[T, F]) queryLocked() fleetapi.ListQuery {
	var filters map[string]string
	for k, v := range r.filter.Params() {
		if v == "" {
			continue
		}
		if filters == nil {
			filters = make(map[string]string)
		}
		filters[k] = v
	}
	return fleetapi.ListQuery{
		Page:       r.page,
		PageSize:   r.pageSize,
		Search:     r.search,
		Filters:    filters,
		OrderField: r.orderField,
		OrderType:  r.orderType,
	}
}

// Snapshot returns a copy of the current state.
func (r *Resource[T, F]) Snapshot() Snapshot[T, F] {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := Snapshot[T, F]{
		Status:     r.status,
		Items:      slices.Clone(r.items),
		Pagination: r.pagination,
		Page:       r.page,
		Search:     r.search,
		Filter:     r.filter,
		OrderField: r.orderField,
		OrderType:  r.orderType,
		Err:        r.err,
		Window:     pagination.ComputeWindow(r.pagination.CurrentPage, r.pagination.TotalPages),
	}
	if r.status == StatusFailure {
		s.ErrorMessage = FetchErrorMessage
	}
	return s
}

// Close cancels a pending debounced search.
func (r *Resource[T, F]) Close() {
	r.debouncer.Stop()
}

func (r *Resource[T, F]) fetch(ctx context.Context) error {
	r.mu.Lock()
	r.seq++
	seq := r.seq
	q := r.queryLocked()
	r.status = StatusLoading
	r.mu.Unlock()
	r.changed()

	start := time.Now()
	page, err := r.fetcher.List(ctx, q)
	elapsed := time.Since(start)

	r.mu.Lock()
	if r.opts.staleGuard && seq != r.seq {
		r.mu.Unlock()
		metrics.EmitListFetch(r.opts.sink, metrics.ListFetch{Resource: r.name, Result: metrics.ResultStale, Duration: elapsed})
		r.logger.Debug().Uint64("seq", seq).Msg("dropped stale response")
		return ErrStale
	}
	if err != nil {
		r.status = StatusFailure
		r.err = err
		r.mu.Unlock()

		metrics.EmitListFetch(r.opts.sink, metrics.ListFetch{Resource: r.name, Result: metrics.ResultError, Duration: elapsed, Err: err})
		r.logger.Warn().Err(err).Int("page", q.Page).Msg("list fetch failed")
		r.changed()
		return err
	}

	r.items = page.Items
	if r.items == nil {
		r.items = []T{}
	}
	r.pagination = model.FromPage(page, q.PageSize)
	r.page = r.pagination.CurrentPage
	r.status = StatusSuccess
	r.err = nil
	r.mu.Unlock()

	metrics.EmitListFetch(r.opts.sink, metrics.ListFetch{
		Resource:   r.name,
		Result:     metrics.ResultSuccess,
		Duration:   elapsed,
		TotalItems: page.TotalItems,
	})
	r.logger.Debug().Int("page", q.Page).Int("items", len(page.Items)).Dur("elapsed", elapsed).Msg("list fetched")
	r.changed()
	return nil
}

func (r *Resource[T, F]) changed() {
	if r.opts.onChange != nil {
		r.opts.onChange()
	}
}
