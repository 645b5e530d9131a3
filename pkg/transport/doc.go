// Package transport performs the single HTTP exchange behind every RING call.
//
// # Overview
//
// A [Client] sends one [Call] to the RING web service and returns the raw
// [Response]: status code, headers and body. It never retries and never
// caches; each Do is exactly one outbound request.
//
//	c, err := transport.New(transport.Options{Timeout: 10 * time.Second})
//	resp, err := c.Do(ctx, &transport.Call{Method: http.MethodGet, Path: "/status/" + id})
//
// # Failures
//
// Do returns a [errors.NetworkError] when no response was received
// (connection refused, TLS or DNS failure, timeout, cancelled context) and
// a [errors.HTTPStatusError] when the service answered outside 2xx. The
// status error keeps the leading fragment of the body for diagnosis.
//
// # Correlation
//
// Every call carries a fresh X-Request-Id header. The id is returned on the
// [Response], attached to errors, and reported to [observability.HTTPHooks].
//
// [errors.NetworkError]: github.com/matzehuels/ringapi/pkg/errors.NetworkError
// [errors.HTTPStatusError]: github.com/matzehuels/ringapi/pkg/errors.HTTPStatusError
// [observability.HTTPHooks]: github.com/matzehuels/ringapi/pkg/observability.HTTPHooks
package transport
