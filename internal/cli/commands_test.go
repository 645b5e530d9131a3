package cli

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/matzehuels/ringapi/pkg/errors"
	ringio "github.com/matzehuels/ringapi/pkg/io"
	"github.com/matzehuels/ringapi/pkg/ring"
)

const cliResult = `{
	"_id": "j1",
	"status": "complete",
	"nodes": [
		{"NodeId": "A:1:_:MET", "Residue": "MET", "Position": 1, "Chain": "A"},
		{"NodeId": "A:5:_:LEU", "Residue": "LEU", "Position": 5, "Chain": "A"}
	],
	"edges": [
		{"NodeId1": "A:1:_:MET", "NodeId2": "A:5:_:LEU", "Interaction": "HBOND:SC_MC", "Distance": 3.1}
	]
}`

// fakeRing serves job "j1", which completes after one in-progress poll.
type fakeRing struct {
	*httptest.Server
	polls   atomic.Int32
	submits atomic.Int32
	lastPDB atomic.Value
}

func newFakeRing(t *testing.T) *fakeRing {
	t.Helper()
	f := &fakeRing{}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /ringws/submit", func(w http.ResponseWriter, r *http.Request) {
		f.submits.Add(1)
		if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
			var body map[string]any
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			f.lastPDB.Store(body["pdbName"])
		} else if _, _, err := r.FormFile("file"); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Write([]byte(`{"jobid":"j1","status":"db"}`))
	})
	mux.HandleFunc("GET /ringws/status/j1", func(w http.ResponseWriter, r *http.Request) {
		if f.polls.Add(1) == 1 {
			w.Write([]byte(`{"_id":"j1","status":"partial","pdbName":"1UBQ"}`))
			return
		}
		w.Write([]byte(`{"_id":"j1","status":"complete","pdbName":"1UBQ"}`))
	})
	mux.HandleFunc("GET /ringws/results/j1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(cliResult))
	})
	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Close)
	return f
}

// execute runs the CLI with args against the fake service and returns
// what the command wrote to its output stream.
func execute(t *testing.T, f *fakeRing, args ...string) (string, error) {
	t.Helper()
	for _, key := range []string{"RING_BASE_URL", "RING_TIMEOUT", "RING_POLL_INTERVAL", "RING_LOG_LEVEL"} {
		t.Setenv(key, "")
	}
	t.Chdir(t.TempDir())

	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	if f != nil {
		args = append(args, "--base-url", f.URL+"/ringws")
	}
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRunCommand_JSONToStdout(t *testing.T) {
	f := newFakeRing(t)

	out, err := execute(t, f, "run", "1ubq", "--poll-interval", "1ms")
	if err != nil {
		t.Fatalf("run error: %v", err)
	}

	net, err := ring.ParseNetwork([]byte(out))
	if err != nil {
		t.Fatalf("stdout is not a network: %v\n%s", err, out)
	}
	if len(net.Nodes) != 2 || len(net.Edges) != 1 {
		t.Errorf("got %d nodes, %d edges", len(net.Nodes), len(net.Edges))
	}
	if got := f.lastPDB.Load(); got != "1UBQ" {
		t.Errorf("pdbName = %v, want 1UBQ", got)
	}
	if f.polls.Load() != 2 {
		t.Errorf("polls = %d, want 2", f.polls.Load())
	}
}

func TestRunCommand_Formats(t *testing.T) {
	tests := []struct {
		file string
		args []string
		want string
	}{
		{"net.json", nil, `"NodeId1"`},
		{"net.dot", nil, "graph G {"},
		{"net.out", []string{"--format", "dot", "--detailed"}, "chain: A"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			f := newFakeRing(t)
			path := filepath.Join(t.TempDir(), tt.file)

			args := append([]string{"run", "1ubq", "--poll-interval", "1ms", "-o", path}, tt.args...)
			if _, err := execute(t, f, args...); err != nil {
				t.Fatalf("run error: %v", err)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(string(data), tt.want) {
				t.Errorf("%s missing %q:\n%s", tt.file, tt.want, data)
			}
		})
	}
}

func TestRunCommand_UploadFile(t *testing.T) {
	f := newFakeRing(t)
	structure := filepath.Join(t.TempDir(), "model.pdb")
	if err := os.WriteFile(structure, []byte("ATOM      1  N   MET A   1\nEND\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, f, "run", "--file", structure, "--poll-interval", "1ms"); err != nil {
		t.Fatalf("run error: %v", err)
	}
	if f.submits.Load() != 1 {
		t.Errorf("submits = %d, want 1", f.submits.Load())
	}
}

func TestRunCommand_InvalidInputSendsNothing(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no structure", []string{"run"}},
		{"bad pdb id", []string{"run", "1u"}},
		{"id and file", []string{"run", "1ubq", "--file", "x.pdb"}},
		{"bad format", []string{"run", "1ubq", "--format", "png"}},
		{"bad chain", []string{"run", "1ubq", "--chain", "??"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeRing(t)
			_, err := execute(t, f, tt.args...)
			if !errors.Is(err, errors.ErrCodeInvalidParameter) {
				t.Errorf("error = %v, want INVALID_PARAMETER", err)
			}
			if f.submits.Load() != 0 {
				t.Error("invalid input reached the service")
			}
		})
	}
}

func TestSubmitStatusResult(t *testing.T) {
	f := newFakeRing(t)

	if _, err := execute(t, f, "submit", "1ubq"); err != nil {
		t.Fatalf("submit error: %v", err)
	}
	if _, err := execute(t, f, "status", "j1", "--wait", "--poll-interval", "1ms"); err != nil {
		t.Fatalf("status error: %v", err)
	}
	if f.polls.Load() != 2 {
		t.Errorf("polls = %d, want 2", f.polls.Load())
	}

	path := filepath.Join(t.TempDir(), "j1.json")
	if _, err := execute(t, f, "result", "j1", "-o", path); err != nil {
		t.Fatalf("result error: %v", err)
	}
	net, err := ringio.ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON() error: %v", err)
	}
	if net.JobID != "j1" || net.Status != ring.StatusComplete {
		t.Errorf("job = %+v", net.Job)
	}
}

func TestResultCommand_ServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such job", http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	_, err := execute(t, &fakeRing{Server: server}, "result", "missing")
	var se *errors.HTTPStatusError
	if !stderrors.As(err, &se) || se.StatusCode != http.StatusNotFound {
		t.Errorf("error = %v, want HTTP 404", err)
	}
}

func TestShowCommand(t *testing.T) {
	net, err := ring.ParseNetwork([]byte(cliResult))
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	src := filepath.Join(dir, "net.json")
	if err := ringio.ExportJSON(net, src); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, nil, "show", src); err != nil {
		t.Fatalf("show error: %v", err)
	}

	out, err := execute(t, nil, "show", src, "--format", "dot")
	if err != nil {
		t.Fatalf("show --format dot error: %v", err)
	}
	if !strings.Contains(out, `"A:1:_:MET" -- "A:5:_:LEU"`) {
		t.Errorf("dot output missing edge:\n%s", out)
	}
}

func TestShowCommand_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"nodes": 3}`), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := execute(t, nil, "show", path)
	if !errors.Is(err, errors.ErrCodeMalformedResponse) {
		t.Errorf("error = %v, want MALFORMED_RESPONSE", err)
	}
}
