package metrics

import (
	"time"

	obserrors "github.com/onebus/fleet-console/internal/observability/errors"
	"github.com/onebus/fleet-console/internal/observability/statsd"
)

// Result constants for metric tagging.
const (
	ResultSuccess = "success"
	ResultError   = "error"
	ResultStale   = "stale"
)

// ListFetch captures one list request for metric emission.
type ListFetch struct {
	Resource   string
	Result     string
	Duration   time.Duration
	TotalItems int
	Err        error
}

// EmitListFetch emits the list.fetch counter, its duration, and the total item
// gauge on success.
func EmitListFetch(sink statsd.Sink, in ListFetch) {
	if sink == nil {
		return
	}

	tags := map[string]string{
		"resource": in.Resource,
		"result":   in.Result,
	}
	if in.Err != nil && in.Result == ResultError {
		if class := obserrors.Classify(in.Err); class != "" {
			tags["error_class"] = class
		}
	}

	sink.Count("list.fetch", 1, tags)
	if in.Duration > 0 {
		sink.Timing("list.fetch.duration", in.Duration, CloneTags(tags))
	}
	if in.Result == ResultSuccess {
		sink.Gauge("list.total_items", float64(in.TotalItems), map[string]string{"resource": in.Resource})
	}
}

// EmitUnauthorized counts a 401 answered by the backend.
func EmitUnauthorized(sink statsd.Sink, path string) {
	if sink == nil {
		return
	}
	sink.Count("api.unauthorized", 1, map[string]string{"path": path})
}

// CloneTags creates a shallow copy of a tag map.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
