// Package mocks provides gomock implementations of the console's seams.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	store := mocks.NewMockTokenStore(ctrl)
//	store.EXPECT().Load(gomock.Any()).Return(nil, session.ErrNoToken)
package mocks

// MockTokenStore: Load, Save, Delete.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=token_store_mock.go github.com/onebus/fleet-console/internal/session TokenStore

// MockSink: Count, Gauge, Timing.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=sink_mock.go github.com/onebus/fleet-console/internal/observability/statsd Sink

// MockFetcher: List, Delete. Generic over the record type.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=fetcher_mock.go github.com/onebus/fleet-console/internal/paged Fetcher
