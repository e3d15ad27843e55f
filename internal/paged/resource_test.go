package paged_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/onebus/fleet-console/internal/domain/model"
	"github.com/onebus/fleet-console/internal/fleetapi"
	"github.com/onebus/fleet-console/internal/mocks"
	"github.com/onebus/fleet-console/internal/paged"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type row struct{ ID int }

func page(items []row, current, total, count int) model.Page[row] {
	return model.Page[row]{Items: items, CurrentPage: current, TotalPages: total, TotalItems: count}
}

func newList(t *testing.T, opts ...paged.Option) (*paged.Resource[row, model.MapFilter], *mocks.MockFetcher[row]) {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := mocks.NewMockFetcher[row](ctrl)
	r := paged.New[row, model.MapFilter]("rows", f, opts...)
	t.Cleanup(r.Close)
	return r, f
}

func TestLoadSuccess(t *testing.T) {
	r, f := newList(t, paged.WithPageSize(25))
	ctx := context.Background()

	assert.Equal(t, paged.StatusIdle, r.Snapshot().Status)

	f.EXPECT().List(gomock.Any(), fleetapi.ListQuery{Page: 0, PageSize: 25}).
		Return(page([]row{{1}, {2}}, 1, 3, 52), nil)
	require.NoError(t, r.Load(ctx))

	s := r.Snapshot()
	assert.Equal(t, paged.StatusSuccess, s.Status)
	assert.Equal(t, []row{{1}, {2}}, s.Items)
	assert.Equal(t, model.PaginationState{
		CurrentPage: 0, PageSize: 25, TotalPages: 3, TotalItems: 52, HasNextPage: true,
	}, s.Pagination)
	assert.Equal(t, []int{0, 1, 2}, s.Window)
	assert.Empty(t, s.ErrorMessage)
}

func TestFilterAndPageSizeResetPage(t *testing.T) {
	r, f := newList(t)
	ctx := context.Background()

	f.EXPECT().List(gomock.Any(), gomock.Any()).Return(page([]row{{1}}, 4, 5, 50), nil)
	require.NoError(t, r.SetPage(ctx, 3))
	assert.Equal(t, 3, r.Snapshot().Page)

	f.EXPECT().List(gomock.Any(), fleetapi.ListQuery{
		Page: 0, PageSize: 10, Filters: map[string]string{"Role": "2"},
	}).Return(page([]row{{1}}, 1, 1, 1), nil)
	require.NoError(t, r.SetFilter(ctx, model.MapFilter{"Role": "2"}))

	f.EXPECT().List(gomock.Any(), gomock.Any()).Return(page([]row{{1}}, 2, 5, 50), nil)
	require.NoError(t, r.SetPage(ctx, 1))

	f.EXPECT().List(gomock.Any(), fleetapi.ListQuery{
		Page: 0, PageSize: 50, Filters: map[string]string{"Role": "2"},
	}).Return(page([]row{{1}}, 1, 1, 1), nil)
	require.NoError(t, r.SetPageSize(ctx, 50))
}

func TestSetPageKeepsFilters(t *testing.T) {
	r, f := newList(t)
	ctx := context.Background()

	f.EXPECT().List(gomock.Any(), gomock.Any()).Return(page(nil, 1, 4, 40), nil)
	require.NoError(t, r.SetFilter(ctx, model.MapFilter{"Status": "1"}))

	f.EXPECT().List(gomock.Any(), fleetapi.ListQuery{
		Page: 2, PageSize: 10, Filters: map[string]string{"Status": "1"},
	}).Return(page(nil, 3, 4, 40), nil)
	require.NoError(t, r.SetPage(ctx, 2))

	s := r.Snapshot()
	assert.Equal(t, 2, s.Pagination.CurrentPage)
	assert.NotNil(t, s.Items)
	assert.Empty(t, s.Items)
}

func TestFailureKeepsPreviousPage(t *testing.T) {
	r, f := newList(t)
	ctx := context.Background()

	f.EXPECT().List(gomock.Any(), gomock.Any()).Return(page([]row{{7}}, 1, 2, 11), nil)
	require.NoError(t, r.Load(ctx))
	before := r.Snapshot()

	boom := errors.New("connection refused")
	f.EXPECT().List(gomock.Any(), gomock.Any()).Return(model.Page[row]{}, boom)
	require.ErrorIs(t, r.SetPage(ctx, 1), boom)

	s := r.Snapshot()
	assert.Equal(t, paged.StatusFailure, s.Status)
	assert.Equal(t, paged.FetchErrorMessage, s.ErrorMessage)
	assert.Equal(t, before.Items, s.Items)
	assert.Equal(t, before.Pagination, s.Pagination)
	assert.ErrorIs(t, s.Err, boom)
}

func TestDeleteRefetches(t *testing.T) {
	r, f := newList(t)
	ctx := context.Background()

	f.EXPECT().List(gomock.Any(), gomock.Any()).Return(page([]row{{1}, {2}}, 1, 1, 2), nil)
	require.NoError(t, r.Load(ctx))

	gomock.InOrder(
		f.EXPECT().Delete(gomock.Any(), int64(2)).Return(nil),
		f.EXPECT().List(gomock.Any(), gomock.Any()).Return(page([]row{{1}}, 1, 1, 1), nil),
	)
	require.NoError(t, r.Delete(ctx, 2))
	assert.Equal(t, []row{{1}}, r.Snapshot().Items)
	assert.Equal(t, 1, r.Snapshot().Pagination.TotalItems)
}

func TestDeleteFailureLeavesList(t *testing.T) {
	r, f := newList(t)
	ctx := context.Background()

	f.EXPECT().List(gomock.Any(), gomock.Any()).Return(page([]row{{1}}, 1, 1, 1), nil)
	require.NoError(t, r.Load(ctx))

	boom := errors.New("forbidden")
	f.EXPECT().Delete(gomock.Any(), int64(1)).Return(boom)
	require.ErrorIs(t, r.Delete(ctx, 1), boom)
	assert.Equal(t, paged.StatusSuccess, r.Snapshot().Status)
	assert.Equal(t, []row{{1}}, r.Snapshot().Items)
}

func TestSetSearchDebounces(t *testing.T) {
	done := make(chan struct{}, 4)
	var mu sync.Mutex
	var loads int

	r, f := newList(t, paged.WithDebounce(20*time.Millisecond), paged.WithOnChange(func() {}))
	ctx := context.Background()

	f.EXPECT().List(gomock.Any(), fleetapi.ListQuery{Page: 0, PageSize: 10, Search: "ana"}).
		DoAndReturn(func(context.Context, fleetapi.ListQuery) (model.Page[row], error) {
			mu.Lock()
			loads++
			mu.Unlock()
			done <- struct{}{}
			return page([]row{{3}}, 1, 1, 1), nil
		})

	r.SetSearch(ctx, "a")
	r.SetSearch(ctx, "an")
	r.SetSearch(ctx, "ana")

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("debounced fetch did not run")
	}
	require.Eventually(t, func() bool { return r.Snapshot().Status == paged.StatusSuccess }, time.Second, 5*time.Millisecond)

	mu.Lock()
	assert.Equal(t, 1, loads)
	mu.Unlock()
	assert.Equal(t, "ana", r.Snapshot().Search)
}

func TestSearchNowResetsPage(t *testing.T) {
	r, f := newList(t)
	ctx := context.Background()

	f.EXPECT().List(gomock.Any(), gomock.Any()).Return(page(nil, 3, 3, 30), nil)
	require.NoError(t, r.SetPage(ctx, 2))

	f.EXPECT().List(gomock.Any(), fleetapi.ListQuery{Page: 0, PageSize: 10, Search: "abc-1234"}).
		Return(page(nil, 1, 1, 0), nil)
	require.NoError(t, r.SearchNow(ctx, "abc-1234"))
}

func TestSetOrder(t *testing.T) {
	r, f := newList(t)
	ctx := context.Background()

	f.EXPECT().List(gomock.Any(), fleetapi.ListQuery{
		Page: 0, PageSize: 10, OrderField: "name", OrderType: fleetapi.SortDesc,
	}).Return(page(nil, 1, 1, 0), nil)
	require.NoError(t, r.SetOrder(ctx, "name", fleetapi.SortDesc))
	assert.Equal(t, "name", r.Snapshot().OrderField)
}

func TestLastResponseWinsWithoutGuard(t *testing.T) {
	r, f := newList(t)
	ctx := context.Background()

	release := make(chan struct{})
	started := make(chan struct{})
	f.EXPECT().List(gomock.Any(), fleetapi.ListQuery{Page: 0, PageSize: 10, Search: "old"}).
		DoAndReturn(func(context.Context, fleetapi.ListQuery) (model.Page[row], error) {
			close(started)
			<-release
			return page([]row{{1}}, 1, 1, 1), nil
		})
	f.EXPECT().List(gomock.Any(), fleetapi.ListQuery{Page: 0, PageSize: 10, Search: "new"}).
		Return(page([]row{{2}}, 1, 1, 1), nil)

	errCh := make(chan error, 1)
	go func() { errCh <- r.SearchNow(ctx, "old") }()
	<-started
	require.NoError(t, r.SearchNow(ctx, "new"))
	close(release)
	require.NoError(t, <-errCh)

	assert.Equal(t, []row{{1}}, r.Snapshot().Items, "slow response overwrites the newer one")
}

func TestStaleGuardDropsSupersededResponse(t *testing.T) {
	r, f := newList(t, paged.WithStaleResponseGuard())
	ctx := context.Background()

	release := make(chan struct{})
	started := make(chan struct{})
	f.EXPECT().List(gomock.Any(), fleetapi.ListQuery{Page: 0, PageSize: 10, Search: "old"}).
		DoAndReturn(func(context.Context, fleetapi.ListQuery) (model.Page[row], error) {
			close(started)
			<-release
			return page([]row{{1}}, 1, 1, 1), nil
		})
	f.EXPECT().List(gomock.Any(), fleetapi.ListQuery{Page: 0, PageSize: 10, Search: "new"}).
		Return(page([]row{{2}}, 1, 1, 1), nil)

	errCh := make(chan error, 1)
	go func() { errCh <- r.SearchNow(ctx, "old") }()
	<-started
	require.NoError(t, r.SearchNow(ctx, "new"))
	close(release)
	require.ErrorIs(t, <-errCh, paged.ErrStale)

	assert.Equal(t, []row{{2}}, r.Snapshot().Items)
}

func TestMetricsEmitted(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := mocks.NewMockSink(ctrl)
	r, f := newList(t, paged.WithMetrics(sink))

	f.EXPECT().List(gomock.Any(), gomock.Any()).Return(page(nil, 1, 1, 9), nil)
	sink.EXPECT().Count("list.fetch", int64(1), map[string]string{"resource": "rows", "result": "success"})
	sink.EXPECT().Timing("list.fetch.duration", gomock.Any(), gomock.Any()).AnyTimes()
	sink.EXPECT().Gauge("list.total_items", float64(9), map[string]string{"resource": "rows"})

	require.NoError(t, r.Load(context.Background()))
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "idle", paged.StatusIdle.String())
	assert.Equal(t, "loading", paged.StatusLoading.String())
	assert.Equal(t, "success", paged.StatusSuccess.String())
	assert.Equal(t, "failure", paged.StatusFailure.String())
}

func TestRestoreDoesNotFetch(t *testing.T) {
	r, f := newList(t)

	r.Restore(paged.Params[model.MapFilter]{
		Search:   "ana",
		Filter:   model.MapFilter{"Role": "3", "Status": ""},
		Page:     2,
		PageSize: 50,
	})
	assert.Equal(t, fleetapi.ListQuery{
		Page: 2, PageSize: 50, Search: "ana", Filters: map[string]string{"Role": "3"},
	}, r.Query())

	f.EXPECT().List(gomock.Any(), r.Query()).Return(page(nil, 3, 3, 120), nil)
	require.NoError(t, r.Load(context.Background()))
}
