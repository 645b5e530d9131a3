package ring

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ringapi/pkg/errors"
	"github.com/matzehuels/ringapi/pkg/observability"
	"github.com/matzehuels/ringapi/pkg/transport"
)

// DefaultPollInterval is the delay between status polls in [Client.Wait].
const DefaultPollInterval = 5 * time.Second

// Client sends requests to the RING service.
//
// A Client holds only immutable configuration; it is safe for concurrent use
// and independent clients never share state.
type Client struct {
	doer         transport.Doer
	logger       *log.Logger
	jobHooks     observability.JobHooks
	pollInterval time.Duration
}

type options struct {
	baseURL      string
	timeout      time.Duration
	logger       *log.Logger
	doer         transport.Doer
	httpClient   *http.Client
	pollInterval time.Duration
	httpHooks    observability.HTTPHooks
	jobHooks     observability.JobHooks
}

// Option configures a [Client].
type Option func(*options)

// WithBaseURL points the client at a mirror of the service.
func WithBaseURL(u string) Option { return func(o *options) { o.baseURL = u } }

// WithTimeout bounds each individual call. Exceeding it yields a
// NETWORK_ERROR whose Timeout flag is set.
func WithTimeout(d time.Duration) Option { return func(o *options) { o.timeout = d } }

// WithLogger sets the logger used for per-call debug lines.
func WithLogger(l *log.Logger) Option { return func(o *options) { o.logger = l } }

// WithTransport replaces the HTTP transport, typically with a test double.
// Base URL, timeout, HTTP client and HTTP hooks are then ignored.
func WithTransport(d transport.Doer) Option { return func(o *options) { o.doer = d } }

// WithHTTPClient sets the underlying *http.Client of the default transport.
func WithHTTPClient(hc *http.Client) Option { return func(o *options) { o.httpClient = hc } }

// WithPollInterval sets the delay between status polls in [Client.Wait].
func WithPollInterval(d time.Duration) Option { return func(o *options) { o.pollInterval = d } }

// WithHTTPHooks instruments every outbound call.
func WithHTTPHooks(h observability.HTTPHooks) Option { return func(o *options) { o.httpHooks = h } }

// WithJobHooks instruments job submission, polling and result retrieval.
func WithJobHooks(h observability.JobHooks) Option { return func(o *options) { o.jobHooks = h } }

// New creates a Client. Without options it talks to the public service with
// a 30 second per-call timeout.
func New(opts ...Option) (*Client, error) {
	o := options{pollInterval: DefaultPollInterval}
	for _, opt := range opts {
		opt(&o)
	}
	if o.pollInterval <= 0 {
		return nil, errors.InvalidParameter("poll_interval", "must be positive, got %s", o.pollInterval)
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}

	doer := o.doer
	if doer == nil {
		tc, err := transport.New(transport.Options{
			BaseURL:    o.baseURL,
			Timeout:    o.timeout,
			Hooks:      o.httpHooks,
			HTTPClient: o.httpClient,
		})
		if err != nil {
			return nil, err
		}
		doer = tc
	}

	return &Client{
		doer:         doer,
		logger:       o.logger,
		jobHooks:     observability.OrNoopJob(o.jobHooks),
		pollInterval: o.pollInterval,
	}, nil
}

// Send validates, encodes and sends req, then decodes the response.
// The first failing stage ends the call and its error is returned unchanged.
func Send[T any](ctx context.Context, c *Client, req Request[T]) (T, error) {
	var zero T
	if err := req.Validate(); err != nil {
		return zero, err
	}
	call, err := req.Encode()
	if err != nil {
		return zero, err
	}
	resp, err := c.doer.Do(ctx, call)
	if err != nil {
		c.logger.Debug("ring call failed", "method", call.Method, "endpoint", call.Path, "err", err)
		return zero, err
	}
	c.logger.Debug("ring call",
		"method", call.Method,
		"endpoint", call.Path,
		"status", resp.StatusCode,
		"duration", resp.Duration,
		"request_id", resp.RequestID,
	)
	return req.Decode(resp.Body)
}

// SubmitID submits a job by PDB identifier with the given settings.
func (c *Client) SubmitID(ctx context.Context, pdbID string, settings Settings) (SubmitResponse, error) {
	req, err := NewSubmitID(pdbID, settings)
	if err != nil {
		return SubmitResponse{}, err
	}
	return c.submit(ctx, req)
}

// SubmitStructure uploads a structure file and submits a job for it.
func (c *Client) SubmitStructure(ctx context.Context, fileName string, contents []byte, settings Settings) (SubmitResponse, error) {
	req, err := NewSubmitStructure(fileName, contents, settings)
	if err != nil {
		return SubmitResponse{}, err
	}
	return c.submit(ctx, req)
}

func (c *Client) submit(ctx context.Context, req Request[SubmitResponse]) (SubmitResponse, error) {
	resp, err := Send(ctx, c, req)
	if err != nil {
		return SubmitResponse{}, err
	}
	c.jobHooks.OnSubmit(ctx, string(resp.JobID), resp.Status.String())
	return resp, nil
}

// Status fetches the current state of a job.
func (c *Client) Status(ctx context.Context, id JobID) (*StatusResponse, error) {
	return Send[*StatusResponse](ctx, c, StatusRequest{JobID: id})
}

// Result fetches the interaction network of a job. When the body does not
// echo the job id, the requested id is filled in.
func (c *Client) Result(ctx context.Context, id JobID) (*Network, error) {
	net, err := Send[*Network](ctx, c, ResultRequest{JobID: id})
	if err != nil {
		return nil, err
	}
	if net.JobID == "" {
		net.JobID = id
	}
	return net, nil
}

// Wait polls the job status until it is complete or failed.
//
// Returns:
//   - the final status when the job completed
//   - [errors.JobFailedError] when the service reports the job failed
//   - the error of the first poll that fails; polls are never retried
//   - [errors.NetworkError] wrapping the context error when ctx ends
func (c *Client) Wait(ctx context.Context, id JobID) (*StatusResponse, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	timer := time.NewTimer(0)
	defer timer.Stop()

	for attempt := 1; ; attempt++ {
		select {
		case <-ctx.Done():
			return nil, &errors.NetworkError{
				Method:  http.MethodGet,
				URL:     StatusRequest{JobID: id}.Endpoint(),
				Timeout: ctx.Err() == context.DeadlineExceeded,
				Err:     ctx.Err(),
			}
		case <-timer.C:
		}

		st, err := c.Status(ctx, id)
		if err != nil {
			return nil, err
		}
		c.jobHooks.OnPoll(ctx, string(id), st.Status.String(), attempt)

		switch st.Status {
		case StatusComplete:
			return st, nil
		case StatusFailed:
			return nil, &errors.JobFailedError{JobID: string(id)}
		}
		timer.Reset(c.pollInterval)
	}
}

// Run submits req, waits for the job and fetches its network.
func (c *Client) Run(ctx context.Context, req Request[SubmitResponse]) (*Network, error) {
	start := time.Now()
	sub, err := c.submit(ctx, req)
	if err != nil {
		return nil, err
	}
	switch sub.Status {
	case StatusFailed:
		return nil, &errors.JobFailedError{JobID: string(sub.JobID)}
	case StatusComplete:
	default:
		if _, err := c.Wait(ctx, sub.JobID); err != nil {
			return nil, err
		}
	}

	net, err := c.Result(ctx, sub.JobID)
	if err != nil {
		return nil, err
	}
	c.jobHooks.OnResult(ctx, string(sub.JobID), len(net.Nodes), len(net.Edges), time.Since(start))
	return net, nil
}
