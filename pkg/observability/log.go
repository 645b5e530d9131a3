package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements [HTTPHooks] and [JobHooks] by writing debug-level
// entries to a charm logger.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log to l. A nil l uses log.Default().
func NewLogHooks(l *log.Logger) *LogHooks {
	if l == nil {
		l = log.Default()
	}
	return &LogHooks{logger: l}
}

func (h *LogHooks) OnRequest(_ context.Context, method, host, path, requestID string) {
	h.logger.Debug("request", "method", method, "host", host, "path", path, "request_id", requestID)
}

func (h *LogHooks) OnResponse(_ context.Context, method, host, path string, statusCode int, duration time.Duration) {
	h.logger.Debug("response", "method", method, "host", host, "path", path,
		"status", statusCode, "took", duration.Round(time.Millisecond))
}

func (h *LogHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Warn("request failed", "method", method, "host", host, "path", path, "err", err)
}

func (h *LogHooks) OnSubmit(_ context.Context, jobID, status string) {
	h.logger.Info("job submitted", "job", jobID, "status", status)
}

func (h *LogHooks) OnPoll(_ context.Context, jobID, status string, attempt int) {
	h.logger.Debug("job status", "job", jobID, "status", status, "poll", attempt)
}

func (h *LogHooks) OnResult(_ context.Context, jobID string, nodes, edges int, duration time.Duration) {
	h.logger.Info("network retrieved", "job", jobID, "nodes", nodes, "edges", edges,
		"took", duration.Round(time.Millisecond))
}

var (
	_ HTTPHooks = (*LogHooks)(nil)
	_ JobHooks  = (*LogHooks)(nil)
)
