package errors

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// maxBodyFragment bounds the raw body kept on errors for diagnosis.
const maxBodyFragment = 512

// Fragment truncates body to a size suitable for error messages.
func Fragment(body []byte) string {
	s := strings.ToValidUTF8(string(body), "?")
	if len(s) <= maxBodyFragment {
		return s
	}
	cut := maxBodyFragment
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

// InvalidParameterError reports a request field that failed local validation.
type InvalidParameterError struct {
	Field  string // Wire-independent field name, e.g. "pdb_id"
	Reason string
}

// InvalidParameter creates an [InvalidParameterError] for field.
func InvalidParameter(field, format string, args ...any) *InvalidParameterError {
	return &InvalidParameterError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %s", e.Field, e.Reason)
}

// Code returns [ErrCodeInvalidParameter].
func (e *InvalidParameterError) Code() Code { return ErrCodeInvalidParameter }

// NetworkError reports a transport-level failure. No response was received.
type NetworkError struct {
	Method    string
	URL       string
	RequestID string
	Timeout   bool // The call exceeded its deadline
	Err       error
}

func (e *NetworkError) Error() string {
	kind := "network error"
	if e.Timeout {
		kind = "timeout"
	}
	return fmt.Sprintf("%s: %s %s: %v", kind, e.Method, e.URL, e.Err)
}

// Unwrap returns the underlying transport error.
func (e *NetworkError) Unwrap() error { return e.Err }

// Code returns [ErrCodeNetwork].
func (e *NetworkError) Code() Code { return ErrCodeNetwork }

// HTTPStatusError reports a response with a non-success status code.
type HTTPStatusError struct {
	StatusCode int
	Body       string // Leading fragment of the response body
	RequestID  string
}

func (e *HTTPStatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http status %d", e.StatusCode)
	}
	return fmt.Sprintf("http status %d: %s", e.StatusCode, e.Body)
}

// Code returns [ErrCodeHTTPStatus].
func (e *HTTPStatusError) Code() Code { return ErrCodeHTTPStatus }

// MalformedResponseError reports a successful response whose body does not
// match the typed model.
type MalformedResponseError struct {
	Location string // JSON path of the offending value, e.g. "edges[3].NodeId2"
	Reason   string
	Body     string // Leading fragment of the response body
}

// Malformed creates a [MalformedResponseError] at location.
func Malformed(location, format string, args ...any) *MalformedResponseError {
	return &MalformedResponseError{Location: location, Reason: fmt.Sprintf(format, args...)}
}

func (e *MalformedResponseError) Error() string {
	if e.Location == "" {
		return "malformed response: " + e.Reason
	}
	return fmt.Sprintf("malformed response at %s: %s", e.Location, e.Reason)
}

// Code returns [ErrCodeMalformedResponse].
func (e *MalformedResponseError) Code() Code { return ErrCodeMalformedResponse }

// JobFailedError is returned when the service reports a job as failed.
type JobFailedError struct {
	JobID string
}

func (e *JobFailedError) Error() string {
	return fmt.Sprintf("job %s failed", e.JobID)
}

// Code returns [ErrCodeJobFailed].
func (e *JobFailedError) Code() Code { return ErrCodeJobFailed }
