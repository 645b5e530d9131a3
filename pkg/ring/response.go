package ring

import (
	"bytes"
	"encoding/json"
	stderrors "errors"

	"github.com/matzehuels/ringapi/pkg/errors"
)

// SubmitResponse is the answer to a submission.
type SubmitResponse struct {
	JobID  JobID     // Identifier for later status and result calls
	Status JobStatus // Initial status, usually in progress
}

// Job describes a job as echoed back by the service.
type Job struct {
	JobID    JobID
	Status   JobStatus
	PDBID    string   // Set when the job was submitted by PDB identifier
	FileName string   // Set when the job was submitted by upload
	Settings Settings // Settings the job runs with
}

// StatusResponse is the answer to a [StatusRequest].
type StatusResponse struct {
	Job
}

func decodeSubmit(raw []byte) (SubmitResponse, error) {
	obj, err := decodeObject(raw)
	if err != nil {
		return SubmitResponse{}, err
	}
	var resp SubmitResponse
	if err := requireString(obj, raw, "jobid", (*string)(&resp.JobID)); err != nil {
		return SubmitResponse{}, err
	}
	if err := requireStatus(obj, raw, &resp.Status); err != nil {
		return SubmitResponse{}, err
	}
	return resp, nil
}

func decodeStatus(raw []byte) (*StatusResponse, error) {
	obj, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}
	job, err := decodeJob(obj, raw, true)
	if err != nil {
		return nil, err
	}
	return &StatusResponse{Job: job}, nil
}

// decodeJob reads the job description shared by status and result bodies.
// When required is false a missing id or status is accepted.
func decodeJob(obj map[string]json.RawMessage, raw []byte, required bool) (Job, error) {
	var job Job
	if _, ok := obj["_id"]; ok || required {
		if err := requireString(obj, raw, "_id", (*string)(&job.JobID)); err != nil {
			return Job{}, err
		}
	}
	if _, ok := obj["status"]; ok || required {
		if err := requireStatus(obj, raw, &job.Status); err != nil {
			return Job{}, err
		}
	}
	if err := optionalString(obj, raw, "pdbName", &job.PDBID); err != nil {
		return Job{}, err
	}
	if err := optionalString(obj, raw, "fileName", &job.FileName); err != nil {
		return Job{}, err
	}
	if err := job.Settings.UnmarshalJSON(raw); err != nil {
		return Job{}, malformed(raw, "settings", "%v", err)
	}
	return job, nil
}

// =============================================================================
// Decoding helpers
// =============================================================================

func malformed(raw []byte, location, format string, args ...any) error {
	err := errors.Malformed(location, format, args...)
	err.Body = errors.Fragment(raw)
	return err
}

func decodeObject(raw []byte) (map[string]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, malformed(raw, "$", "body is not a JSON object")
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return nil, malformed(raw, "$", "invalid JSON: %v", err)
	}
	return obj, nil
}

func isNull(v json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}

func requireString(obj map[string]json.RawMessage, raw []byte, key string, dst *string) error {
	v, ok := obj[key]
	if !ok || isNull(v) {
		return malformed(raw, key, "missing required field")
	}
	if err := json.Unmarshal(v, dst); err != nil {
		return malformed(raw, key, "expected a string")
	}
	if *dst == "" {
		return malformed(raw, key, "must not be empty")
	}
	return nil
}

func optionalString(obj map[string]json.RawMessage, raw []byte, key string, dst *string) error {
	v, ok := obj[key]
	if !ok || isNull(v) {
		return nil
	}
	if err := json.Unmarshal(v, dst); err != nil {
		return malformed(raw, key, "expected a string")
	}
	return nil
}

func requireStatus(obj map[string]json.RawMessage, raw []byte, dst *JobStatus) error {
	var s string
	if err := requireString(obj, raw, "status", &s); err != nil {
		return err
	}
	st, err := ParseJobStatus(s)
	if err != nil {
		var me *errors.MalformedResponseError
		if stderrors.As(err, &me) {
			me.Body = errors.Fragment(raw)
		}
		return err
	}
	*dst = st
	return nil
}
