package transport

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/ringapi/pkg/errors"
)

func TestNew_Defaults(t *testing.T) {
	c, err := New(Options{})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if c.BaseURL() != DefaultBaseURL {
		t.Errorf("BaseURL() = %q, want %q", c.BaseURL(), DefaultBaseURL)
	}
	if c.Timeout() != DefaultTimeout {
		t.Errorf("Timeout() = %v, want %v", c.Timeout(), DefaultTimeout)
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		opts  Options
		field string
	}{
		{"bad scheme", Options{BaseURL: "ftp://example.org"}, "base_url"},
		{"negative timeout", Options{Timeout: -time.Second}, "timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts)
			var pe *errors.InvalidParameterError
			if !stderrors.As(err, &pe) {
				t.Fatalf("New() error = %v, want InvalidParameterError", err)
			}
			if pe.Field != tt.field {
				t.Errorf("Field = %q, want %q", pe.Field, tt.field)
			}
		})
	}
}

func TestNew_TrimsTrailingSlash(t *testing.T) {
	c, err := New(Options{BaseURL: "https://mirror.example.org/ringws/"})
	if err != nil {
		t.Fatal(err)
	}
	if c.BaseURL() != "https://mirror.example.org/ringws" {
		t.Errorf("BaseURL() = %q", c.BaseURL())
	}
}

func TestClientDo_Get(t *testing.T) {
	var gotPath, gotQuery, gotRID, gotAccept, gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("engine")
		gotRID = r.Header.Get(HeaderRequestID)
		gotAccept = r.Header.Get("Accept")
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	c := testClient(t, server, nil)
	call := &Call{Method: http.MethodGet, Path: "/results/abc", Query: map[string][]string{"engine": {"d3"}}}
	resp, err := c.Do(context.Background(), call)
	if err != nil {
		t.Fatalf("Do() error: %v", err)
	}

	if gotPath != "/ringws/results/abc" {
		t.Errorf("path = %q, want /ringws/results/abc", gotPath)
	}
	if gotQuery != "d3" {
		t.Errorf("engine query = %q, want d3", gotQuery)
	}
	if gotRID == "" || gotRID != resp.RequestID {
		t.Errorf("request id header %q does not match response %q", gotRID, resp.RequestID)
	}
	if gotAccept != "application/json" {
		t.Errorf("Accept = %q", gotAccept)
	}
	if !strings.HasPrefix(gotUA, "ringapi/") {
		t.Errorf("User-Agent = %q", gotUA)
	}
	if resp.StatusCode != http.StatusOK || string(resp.Body) != `{"ok":true}` {
		t.Errorf("response = %d %q", resp.StatusCode, resp.Body)
	}
}

func TestClientDo_PostBody(t *testing.T) {
	var gotBody, gotType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		gotType = r.Header.Get("Content-Type")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := testClient(t, server, nil)
	_, err := c.Do(context.Background(), &Call{
		Method:      http.MethodPost,
		Path:        "submit",
		Body:        []byte(`{"pdbName":"1ABC"}`),
		ContentType: "application/json",
	})
	if err != nil {
		t.Fatalf("Do() error: %v", err)
	}
	if gotBody != `{"pdbName":"1ABC"}` {
		t.Errorf("body = %q", gotBody)
	}
	if gotType != "application/json" {
		t.Errorf("Content-Type = %q", gotType)
	}
}

func TestClientDo_StatusError(t *testing.T) {
	tests := []struct {
		name string
		code int
	}{
		{"400 Bad Request", http.StatusBadRequest},
		{"404 Not Found", http.StatusNotFound},
		{"500 Internal Server Error", http.StatusInternalServerError},
		{"503 Service Unavailable", http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.code)
				w.Write([]byte("service says no"))
			}))
			defer server.Close()

			c := testClient(t, server, nil)
			_, err := c.Do(context.Background(), &Call{Method: http.MethodGet, Path: "/status/x"})

			var se *errors.HTTPStatusError
			if !stderrors.As(err, &se) {
				t.Fatalf("Do() error = %v, want HTTPStatusError", err)
			}
			if se.StatusCode != tt.code {
				t.Errorf("StatusCode = %d, want %d", se.StatusCode, tt.code)
			}
			if se.Body != "service says no" {
				t.Errorf("Body = %q", se.Body)
			}
			if se.RequestID == "" {
				t.Error("RequestID should be set")
			}
		})
	}
}

func TestClientDo_SingleAttempt(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		mu.Unlock()
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	c := testClient(t, server, nil)
	_, _ = c.Do(context.Background(), &Call{Method: http.MethodGet, Path: "/status/x"})

	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Errorf("server saw %d calls, want exactly 1", calls)
	}
}

func TestClientDo_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	c, err := New(Options{BaseURL: url})
	if err != nil {
		t.Fatal(err)
	}
	_, err = c.Do(context.Background(), &Call{Method: http.MethodGet, Path: "/status/x"})

	var ne *errors.NetworkError
	if !stderrors.As(err, &ne) {
		t.Fatalf("Do() error = %v, want NetworkError", err)
	}
	if ne.Timeout {
		t.Error("connection refused should not be reported as timeout")
	}
	if !errors.Is(err, errors.ErrCodeNetwork) {
		t.Error("error code should be NETWORK_ERROR")
	}
}

func TestClientDo_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	c, err := New(Options{BaseURL: server.URL, Timeout: 50 * time.Millisecond})
	if err != nil {
		t.Fatal(err)
	}
	_, err = c.Do(context.Background(), &Call{Method: http.MethodGet, Path: "/status/x"})

	var ne *errors.NetworkError
	if !stderrors.As(err, &ne) {
		t.Fatalf("Do() error = %v, want NetworkError", err)
	}
	if !ne.Timeout {
		t.Errorf("Timeout = false, want true (err: %v)", ne.Err)
	}
}

func TestNew_SharedHTTPClientKeepsTimeouts(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	shared := server.Client()
	sharedTimeout := shared.Timeout

	fast, err := New(Options{BaseURL: server.URL, Timeout: 50 * time.Millisecond, HTTPClient: shared})
	if err != nil {
		t.Fatal(err)
	}
	slow, err := New(Options{BaseURL: server.URL, Timeout: time.Minute, HTTPClient: shared})
	if err != nil {
		t.Fatal(err)
	}

	if fast.Timeout() != 50*time.Millisecond || slow.Timeout() != time.Minute {
		t.Errorf("timeouts = %v, %v; want 50ms, 1m", fast.Timeout(), slow.Timeout())
	}
	if shared.Timeout != sharedTimeout {
		t.Errorf("shared http.Client timeout changed to %v", shared.Timeout)
	}

	start := time.Now()
	_, err = fast.Do(context.Background(), &Call{Method: http.MethodGet, Path: "/status/x"})
	var ne *errors.NetworkError
	if !stderrors.As(err, &ne) || !ne.Timeout {
		t.Fatalf("Do() error = %v, want timeout NetworkError", err)
	}
	if took := time.Since(start); took > 5*time.Second {
		t.Errorf("fast client waited %v", took)
	}
}

func TestClientDo_Hooks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	hooks := &recordingHooks{}
	c := testClient(t, server, hooks)
	if _, err := c.Do(context.Background(), &Call{Method: http.MethodGet, Path: "/status/x"}); err != nil {
		t.Fatal(err)
	}

	if hooks.requests != 1 || hooks.responses != 1 || hooks.errors != 0 {
		t.Errorf("hooks = %+v, want 1 request, 1 response, 0 errors", hooks)
	}
	if hooks.lastPath != "/ringws/status/x" {
		t.Errorf("hook path = %q", hooks.lastPath)
	}
	if hooks.lastStatus != http.StatusOK {
		t.Errorf("hook status = %d", hooks.lastStatus)
	}
}

func TestCheckStatus(t *testing.T) {
	tests := []struct {
		code    int
		wantErr bool
	}{
		{200, false},
		{201, false},
		{204, false},
		{301, true},
		{400, true},
		{404, true},
		{500, true},
	}

	for _, tt := range tests {
		err := checkStatus(tt.code, nil, "rid")
		if (err != nil) != tt.wantErr {
			t.Errorf("checkStatus(%d) error = %v, wantErr %v", tt.code, err, tt.wantErr)
		}
	}
}

func testClient(t *testing.T, server *httptest.Server, hooks *recordingHooks) *Client {
	t.Helper()
	opts := Options{BaseURL: server.URL + "/ringws", HTTPClient: server.Client()}
	if hooks != nil {
		opts.Hooks = hooks
	}
	c, err := New(opts)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

type recordingHooks struct {
	requests, responses, errors int
	lastPath                    string
	lastStatus                  int
}

func (h *recordingHooks) OnRequest(_ context.Context, _, _, path, _ string) {
	h.requests++
	h.lastPath = path
}

func (h *recordingHooks) OnResponse(_ context.Context, _, _, _ string, status int, _ time.Duration) {
	h.responses++
	h.lastStatus = status
}

func (h *recordingHooks) OnError(context.Context, string, string, string, error) {
	h.errors++
}
