package transport

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/matzehuels/ringapi/pkg/buildinfo"
	"github.com/matzehuels/ringapi/pkg/errors"
	"github.com/matzehuels/ringapi/pkg/observability"
)

const (
	// DefaultBaseURL is the public RING web service.
	DefaultBaseURL = "http://protein.bio.unipd.it/ringws"

	// DefaultTimeout bounds a single call when no timeout is configured.
	DefaultTimeout = 30 * time.Second

	// HeaderRequestID carries the per-call correlation id.
	HeaderRequestID = "X-Request-Id"
)

// Call is a serialized request ready to be sent.
type Call struct {
	Method      string     // HTTP method
	Path        string     // Endpoint relative to the base URL, e.g. "/status/abc"
	Query       url.Values // Optional query parameters
	Body        []byte     // Encoded body, nil for bodiless requests
	ContentType string     // Content type of Body
}

// Response is the raw outcome of a successful exchange.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	RequestID  string
	Duration   time.Duration
}

// Doer sends a single call. [Client] is the production implementation;
// tests substitute their own.
type Doer interface {
	Do(ctx context.Context, call *Call) (*Response, error)
}

// Options configures a [Client]. Zero values select the defaults.
type Options struct {
	BaseURL    string            // Service root (default [DefaultBaseURL])
	Timeout    time.Duration     // Per-call timeout (default [DefaultTimeout])
	Headers    map[string]string // Extra headers sent on every call
	Hooks      observability.HTTPHooks
	HTTPClient *http.Client // Underlying client, e.g. httptest's
}

// Client sends calls to the RING web service over go-resty.
// It holds only immutable configuration and is safe for concurrent use.
type Client struct {
	rc      *resty.Client
	baseURL *url.URL
	hooks   observability.HTTPHooks
}

// New creates a Client from opts. It fails with an INVALID_PARAMETER error
// when the base URL is not an http(s) URL or the timeout is negative.
func New(opts Options) (*Client, error) {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	if err := errors.ValidateURL(base); err != nil {
		return nil, err
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, errors.InvalidParameter("base_url", "%v", err)
	}
	if opts.Timeout < 0 {
		return nil, errors.InvalidParameter("timeout", "must not be negative, got %s", opts.Timeout)
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	rc := resty.New()
	if opts.HTTPClient != nil {
		// SetTimeout writes to the http.Client; keep the caller's untouched.
		hc := *opts.HTTPClient
		rc = resty.NewWithClient(&hc)
	}
	rc.SetBaseURL(base).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", buildinfo.UserAgent()).
		SetHeaders(opts.Headers)

	return &Client{
		rc:      rc,
		baseURL: u,
		hooks:   observability.OrNoopHTTP(opts.Hooks),
	}, nil
}

// BaseURL returns the service root this client sends to.
func (c *Client) BaseURL() string { return c.baseURL.String() }

// Timeout returns the per-call timeout.
func (c *Client) Timeout() time.Duration { return c.rc.GetClient().Timeout }

// Do performs exactly one HTTP exchange for call.
//
// Returns:
//   - the raw Response for any 2xx status
//   - [errors.NetworkError] when no response was received
//   - [errors.HTTPStatusError] for any other status
func (c *Client) Do(ctx context.Context, call *Call) (*Response, error) {
	rid := uuid.NewString()
	path := "/" + strings.TrimLeft(call.Path, "/")
	host := c.baseURL.Host
	fullPath := c.baseURL.Path + path

	req := c.rc.R().
		SetContext(ctx).
		SetHeader(HeaderRequestID, rid)
	if call.Body != nil {
		req.SetHeader("Content-Type", call.ContentType).SetBody(call.Body)
	}
	if len(call.Query) > 0 {
		req.SetQueryParamsFromValues(call.Query)
	}

	c.hooks.OnRequest(ctx, call.Method, host, fullPath, rid)
	start := time.Now()
	res, err := req.Execute(call.Method, path)
	took := time.Since(start)
	if err != nil {
		nerr := &errors.NetworkError{
			Method:    call.Method,
			URL:       c.BaseURL() + path,
			RequestID: rid,
			Timeout:   isTimeout(err),
			Err:       err,
		}
		c.hooks.OnError(ctx, call.Method, host, fullPath, nerr)
		return nil, nerr
	}
	c.hooks.OnResponse(ctx, call.Method, host, fullPath, res.StatusCode(), took)

	if err := checkStatus(res.StatusCode(), res.Body(), rid); err != nil {
		return nil, err
	}
	return &Response{
		StatusCode: res.StatusCode(),
		Header:     res.Header(),
		Body:       res.Body(),
		RequestID:  rid,
		Duration:   took,
	}, nil
}

func checkStatus(code int, body []byte, rid string) error {
	if code >= 200 && code < 300 {
		return nil
	}
	return &errors.HTTPStatusError{
		StatusCode: code,
		Body:       errors.Fragment(body),
		RequestID:  rid,
	}
}

func isTimeout(err error) bool {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return stderrors.As(err, &ne) && ne.Timeout()
}

var _ Doer = (*Client)(nil)
