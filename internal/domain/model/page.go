package model

// Page is one page of a list endpoint as the backend returns it. CurrentPage
// is one-based on the wire.
type Page[T any] struct {
	Items           []T  `json:"items"`
	TotalPages      int  `json:"totalPages"`
	CurrentPage     int  `json:"currentPage"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
	TotalItems      int  `json:"totalItems"`
}

// PaginationState is the client-side view of a list's position. CurrentPage is
// zero-based. HasPreviousPage is CurrentPage > 0 and HasNextPage is
// CurrentPage < TotalPages-1.
type PaginationState struct {
	CurrentPage     int  `json:"currentPage"`
	PageSize        int  `json:"pageSize"`
	TotalPages      int  `json:"totalPages"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
	TotalItems      int  `json:"totalItems"`
}

// NewPaginationState returns the state of a list that has not been fetched yet.
func NewPaginationState(pageSize int) PaginationState {
	return PaginationState{PageSize: max(pageSize, 1)}
}

// FromPage builds the pagination state for a server page fetched with
// pageSize. The server's one-based page is converted to zero-based and the
// navigation flags are derived from it so they can never disagree.
func FromPage[T any](p Page[T], pageSize int) PaginationState {
	total := max(p.TotalPages, 0)
	cur := max(p.CurrentPage-1, 0)
	if total > 0 && cur > total-1 {
		cur = total - 1
	}
	return PaginationState{
		CurrentPage:     cur,
		PageSize:        max(pageSize, 1),
		TotalPages:      total,
		HasNextPage:     cur < total-1,
		HasPreviousPage: cur > 0,
		TotalItems:      max(p.TotalItems, 0),
	}
}

// Option is one entry of an enum endpoint such as /employees/roles.
type Option struct {
	Value int    `json:"value"`
	Name  string `json:"name"`
}

// Filter maps a screen's discrete filters to backend query parameter names.
// Empty values mean "no filter".
type Filter interface {
	Params() map[string]string
}

// NoFilter is used by lists without discrete filters.
type NoFilter struct{}

// Params implements Filter.
func (NoFilter) Params() map[string]string { return nil }

// MapFilter is a free-form FilterSet keyed by query parameter name.
type MapFilter map[string]string

// Params implements Filter.
func (f MapFilter) Params() map[string]string { return f }
