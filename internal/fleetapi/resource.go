package fleetapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/onebus/fleet-console/internal/domain/model"
)

// Resource is the CRUD surface of one backend collection such as /employees.
type Resource[T any] struct {
	client *Client
	path   string
}

// NewResource binds path to c.
func NewResource[T any](c *Client, path string) *Resource[T] {
	return &Resource[T]{client: c, path: "/" + strings.Trim(path, "/")}
}

// Path returns the collection path.
func (r *Resource[T]) Path() string { return r.path }

func (r *Resource[T]) itemPath(id int64) string {
	return r.path + "/" + strconv.FormatInt(id, 10)
}

// List fetches one page.
func (r *Resource[T]) List(ctx context.Context, q ListQuery) (model.Page[T], error) {
	var env envelope[model.Page[T]]
	if err := r.client.do(ctx, request{method: http.MethodGet, path: r.path, query: q.Values()}, &env); err != nil {
		return model.Page[T]{}, err
	}
	if env.Value.Items == nil {
		env.Value.Items = []T{}
	}
	return env.Value, nil
}

// Get fetches one record.
func (r *Resource[T]) Get(ctx context.Context, id int64) (T, error) {
	var env envelope[T]
	err := r.client.do(ctx, request{method: http.MethodGet, path: r.itemPath(id)}, &env)
	return env.Value, err
}

// Create posts a new record. The backend's answer body is ignored.
func (r *Resource[T]) Create(ctx context.Context, payload any) error {
	return r.client.do(ctx, request{method: http.MethodPost, path: r.path, body: payload}, nil)
}

// Update replaces record id.
func (r *Resource[T]) Update(ctx context.Context, id int64, payload any) error {
	return r.client.do(ctx, request{method: http.MethodPut, path: r.itemPath(id), body: payload}, nil)
}

// Delete removes record id.
func (r *Resource[T]) Delete(ctx context.Context, id int64) error {
	return r.client.do(ctx, request{method: http.MethodDelete, path: r.itemPath(id)}, nil)
}

// Options fetches an enum endpoint such as /employees/roles.
func (c *Client) Options(ctx context.Context, path string) ([]model.Option, error) {
	var env envelope[[]model.Option]
	p := "/" + strings.Trim(path, "/")
	if err := c.do(ctx, request{method: http.MethodGet, path: p}, &env); err != nil {
		return nil, err
	}
	if env.Value == nil {
		return []model.Option{}, nil
	}
	return env.Value, nil
}

// Raw fetches path with query and returns the decoded envelope value as
// generic JSON, for output filtering.
func (c *Client) Raw(ctx context.Context, path string, query url.Values) (any, error) {
	var env envelope[any]
	p := "/" + strings.Trim(path, "/")
	if err := c.do(ctx, request{method: http.MethodGet, path: p, query: query}, &env); err != nil {
		return nil, err
	}
	return env.Value, nil
}
