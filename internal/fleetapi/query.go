package fleetapi

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// SortDir is the backend's OrderType value.
type SortDir string

const (
	// SortAsc sorts ascending.
	SortAsc SortDir = "Asc"
	// SortDesc sorts descending.
	SortDesc SortDir = "Desc"
)

// ParseSortDir accepts asc/desc in any case. ok is false for anything else.
func ParseSortDir(s string) (SortDir, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc":
		return SortAsc, true
	case "desc":
		return SortDesc, true
	default:
		return "", false
	}
}

// ParseSort splits a "field:dir" sort expression. A bare field sorts
// ascending; an unknown direction keeps the field and drops the direction.
func ParseSort(expr string) (field string, dir SortDir) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return "", ""
	}
	f, d, found := strings.Cut(expr, ":")
	field = strings.TrimSpace(f)
	if !found {
		return field, SortAsc
	}
	dir, _ = ParseSortDir(d)
	return field, dir
}

// ListQuery is one list request. Page is zero-based here and sent one-based.
type ListQuery struct {
	Page       int
	PageSize   int
	Search     string
	Filters    map[string]string
	OrderField string
	OrderType  SortDir
}

// Values encodes q as backend query parameters. Empty search and filter
// values are omitted, which the backend reads as null.
func (q ListQuery) Values() url.Values {
	v := url.Values{}
	v.Set("CurrentPage", strconv.Itoa(max(q.Page, 0)+1))
	if q.PageSize > 0 {
		v.Set("PageSize", strconv.Itoa(q.PageSize))
	}
	if s := strings.TrimSpace(q.Search); s != "" {
		v.Set("Value", s)
	}

	keys := make([]string, 0, len(q.Filters))
	for k := range q.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if val := strings.TrimSpace(q.Filters[k]); k != "" && val != "" {
			v.Set(k, val)
		}
	}

	if q.OrderField != "" {
		v.Set("OrderField", q.OrderField)
		if q.OrderType != "" {
			v.Set("OrderType", string(q.OrderType))
		}
	}
	return v
}
