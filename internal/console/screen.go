package console

import (
	"context"
	"sort"
	"strings"

	"github.com/onebus/fleet-console/internal/domain/model"
	apperrors "github.com/onebus/fleet-console/internal/errors"
	"github.com/onebus/fleet-console/internal/export"
	"github.com/onebus/fleet-console/internal/fleetapi"
	"github.com/onebus/fleet-console/internal/paged"
)

// ListRequest is the state a list screen is fetched with.
type ListRequest struct {
	Search     string
	Filters    map[string]string
	Page       int
	PageSize   int
	OrderField string
	OrderType  fleetapi.SortDir
}

// Listing is one fetched page in generic form.
type Listing struct {
	Resource   string                `json:"resource"`
	Items      []map[string]any      `json:"items"`
	Pagination model.PaginationState `json:"pagination"`
	Window     []int                 `json:"window"`
}

// Table returns the listing as an export table.
func (l Listing) Table(r Resource) export.Table {
	return export.Table{Title: r.Title, Columns: r.Columns, Rows: l.Items}
}

// Screen is a list screen with its record type erased.
type Screen interface {
	Resource() Resource
	List(ctx context.Context, req ListRequest) (Listing, error)
	Get(ctx context.Context, id int64) (map[string]any, error)
	Delete(ctx context.Context, id int64, req ListRequest) (Listing, error)
}

type screen[T any, F model.Filter] struct {
	info   Resource
	api    *fleetapi.Resource[T]
	list   *paged.Resource[T, F]
	filter func(map[string]string) F
}

func screenFor[T any, F model.Filter](filter func(map[string]string) F) func(*fleetapi.Client, Resource, ...paged.Option) Screen {
	return func(c *fleetapi.Client, r Resource, opts ...paged.Option) Screen {
		api := fleetapi.NewResource[T](c, r.Path)
		return &screen[T, F]{
			info:   r,
			api:    api,
			list:   paged.New[T, F](r.Name, api, opts...),
			filter: filter,
		}
	}
}

func (s *screen[T, F]) Resource() Resource { return s.info }

func (s *screen[T, F]) List(ctx context.Context, req ListRequest) (Listing, error) {
	if err := s.restore(req); err != nil {
		return Listing{}, err
	}
	if err := s.list.Load(ctx); err != nil {
		return Listing{}, err
	}
	return s.listing()
}

func (s *screen[T, F]) Get(ctx context.Context, id int64) (map[string]any, error) {
	rec, err := s.api.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	rows, err := export.Rows([]T{rec})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "decode record")
	}
	return rows[0], nil
}

func (s *screen[T, F]) Delete(ctx context.Context, id int64, req ListRequest) (Listing, error) {
	if err := s.restore(req); err != nil {
		return Listing{}, err
	}
	if err := s.list.Delete(ctx, id); err != nil {
		return Listing{}, err
	}
	return s.listing()
}

func (s *screen[T, F]) restore(req ListRequest) error {
	filters, err := NormalizeFilters(s.info, req.Filters)
	if err != nil {
		return err
	}
	s.list.Restore(paged.Params[F]{
		Search:     strings.TrimSpace(req.Search),
		Filter:     s.filter(filters),
		Page:       req.Page,
		PageSize:   req.PageSize,
		OrderField: req.OrderField,
		OrderType:  req.OrderType,
	})
	return nil
}

func (s *screen[T, F]) listing() (Listing, error) {
	snap := s.list.Snapshot()
	rows, err := export.Rows(snap.Items)
	if err != nil {
		return Listing{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "decode records")
	}
	return Listing{
		Resource:   s.info.Name,
		Items:      rows,
		Pagination: snap.Pagination,
		Window:     snap.Window,
	}, nil
}

// NormalizeFilters maps filter names to r's canonical spelling, ignoring case,
// and drops empty values. Unknown names are a validation error.
func NormalizeFilters(r Resource, in map[string]string) (map[string]string, error) {
	out := make(map[string]string, len(in))
	var unknown []string
	for k, v := range in {
		name, ok := canonicalFilter(r, k)
		if !ok {
			unknown = append(unknown, k)
			continue
		}
		if v = strings.TrimSpace(v); v != "" {
			out[name] = v
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, apperrors.Validationf("unknown filter %s for %s (allowed: %s)",
			strings.Join(unknown, ", "), r.Name, strings.Join(r.Filters, ", "))
	}
	return out, nil
}

func canonicalFilter(r Resource, name string) (string, bool) {
	for _, f := range r.Filters {
		if strings.EqualFold(f, strings.TrimSpace(name)) {
			return f, true
		}
	}
	return "", false
}
