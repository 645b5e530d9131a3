package ring

import (
	"github.com/matzehuels/ringapi/pkg/errors"
)

// JobID identifies a job on the service.
type JobID string

// Validate rejects the empty identifier.
func (id JobID) Validate() error {
	if id == "" {
		return errors.InvalidParameter("job_id", "is required")
	}
	return nil
}

func (id JobID) String() string { return string(id) }

// JobStatus is the phase a job is in, as reported by the service.
type JobStatus int

const (
	StatusUnknown    JobStatus = iota // not reported
	StatusInProgress                  // queued or running
	StatusPartial                     // results available, MSA still running
	StatusComplete                    // results ready
	StatusFailed                      // no results will be produced
)

var statusWire = map[JobStatus]string{
	StatusInProgress: "db",
	StatusPartial:    "partial",
	StatusComplete:   "complete",
	StatusFailed:     "error",
}

// ParseJobStatus converts a wire value into a JobStatus.
// Unknown values fail with a MALFORMED_RESPONSE error.
func ParseJobStatus(s string) (JobStatus, error) {
	for st, w := range statusWire {
		if w == s {
			return st, nil
		}
	}
	return StatusUnknown, errors.Malformed("status", "unknown job status %q", s)
}

// String returns a human readable form, e.g. "in progress".
func (s JobStatus) String() string {
	switch s {
	case StatusInProgress:
		return "in progress"
	case StatusPartial:
		return "partial"
	case StatusComplete:
		return "complete"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// Done reports whether the job has reached a final state.
func (s JobStatus) Done() bool {
	return s == StatusComplete || s == StatusFailed
}

// MarshalText returns the wire value.
func (s JobStatus) MarshalText() ([]byte, error) {
	w, ok := statusWire[s]
	if !ok {
		return nil, errors.New(errors.ErrCodeInternal, "cannot encode job status %d", int(s))
	}
	return []byte(w), nil
}

// UnmarshalText parses a wire value.
func (s *JobStatus) UnmarshalText(text []byte) error {
	st, err := ParseJobStatus(string(text))
	if err != nil {
		return err
	}
	*s = st
	return nil
}
