// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Hooks are handed to a client at
// construction; there is no process-wide registry, so independent clients can
// be instrumented differently.
//
// # Usage
//
//	client, err := ring.New(
//	    ring.WithHTTPHooks(observability.NewLogHooks(logger)),
//	    ring.WithJobHooks(observability.NewLogHooks(logger)),
//	)
//
// The transport emits [HTTPHooks] events for every outbound call; the client
// facade emits [JobHooks] events while a job moves through submit, polling
// and result retrieval.
package observability

import (
	"context"
	"time"
)

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path, requestID string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// Job Hooks
// =============================================================================

// JobHooks receives events about the lifecycle of a RING job.
type JobHooks interface {
	// OnSubmit records an accepted submission.
	OnSubmit(ctx context.Context, jobID, status string)

	// OnPoll records one status poll.
	OnPoll(ctx context.Context, jobID, status string, attempt int)

	// OnResult records a retrieved interaction network.
	OnResult(ctx context.Context, jobID string, nodes, edges int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string, string)              {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// NoopJobHooks is a no-op implementation of JobHooks.
type NoopJobHooks struct{}

func (NoopJobHooks) OnSubmit(context.Context, string, string)                  {}
func (NoopJobHooks) OnPoll(context.Context, string, string, int)               {}
func (NoopJobHooks) OnResult(context.Context, string, int, int, time.Duration) {}

// OrNoopHTTP returns h, or [NoopHTTPHooks] when h is nil.
func OrNoopHTTP(h HTTPHooks) HTTPHooks {
	if h == nil {
		return NoopHTTPHooks{}
	}
	return h
}

// OrNoopJob returns h, or [NoopJobHooks] when h is nil.
func OrNoopJob(h JobHooks) JobHooks {
	if h == nil {
		return NoopJobHooks{}
	}
	return h
}
