package ring

import (
	"encoding/json"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/ringapi/pkg/errors"
	"github.com/matzehuels/ringapi/pkg/transport"
)

// Request describes one call to the service and how to decode its answer.
//
// Validate runs before anything is encoded or sent. Encode must be
// deterministic, and Decode must be total: the same body always yields the
// same value or the same error.
type Request[T any] interface {
	Method() string
	Endpoint() string
	Validate() error
	Encode() (*transport.Call, error)
	Decode(raw []byte) (T, error)
}

const (
	endpointSubmit  = "/submit"
	endpointStatus  = "/status/"
	endpointResults = "/results/"

	// resultEngine selects the node/edge JSON layout of result bodies.
	resultEngine = "d3"
)

// =============================================================================
// Submission by PDB identifier
// =============================================================================

// SubmitID submits a job for a structure known to the Protein Data Bank.
type SubmitID struct {
	PDBID    string   // Upper-case PDB identifier, e.g. "1ABC"
	Settings Settings // Job parameters
}

// NewSubmitID creates a validated submission. The identifier is normalized to
// upper case; an empty or malformed identifier fails with an
// INVALID_PARAMETER error for field "pdb_id".
func NewSubmitID(pdbID string, settings Settings) (*SubmitID, error) {
	req := &SubmitID{
		PDBID:    strings.ToUpper(strings.TrimSpace(pdbID)),
		Settings: settings,
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

func (r *SubmitID) Method() string   { return http.MethodPost }
func (r *SubmitID) Endpoint() string { return endpointSubmit }

func (r *SubmitID) Validate() error {
	if err := errors.ValidatePDBID(r.PDBID); err != nil {
		return err
	}
	return r.Settings.Validate()
}

type submitIDBody struct {
	PDBName string `json:"pdbName"`
	settingsWire
}

func (r *SubmitID) Encode() (*transport.Call, error) {
	body, err := json.Marshal(submitIDBody{PDBName: r.PDBID, settingsWire: r.Settings.wire()})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode submission")
	}
	return &transport.Call{
		Method:      r.Method(),
		Path:        r.Endpoint(),
		Body:        body,
		ContentType: "application/json",
	}, nil
}

func (r *SubmitID) Decode(raw []byte) (SubmitResponse, error) { return decodeSubmit(raw) }

// =============================================================================
// Submission by structure upload
// =============================================================================

// SubmitStructure submits a job for an uploaded structure file.
type SubmitStructure struct {
	FileName string   // Base name of the structure file, e.g. "model.pdb"
	Contents []byte   // Raw file contents
	Settings Settings // Job parameters
}

// NewSubmitStructure creates a validated upload. The file name must be a
// plain base name with a .pdb, .ent or .cif extension (field "file_name")
// and the contents must not be empty (field "contents").
func NewSubmitStructure(fileName string, contents []byte, settings Settings) (*SubmitStructure, error) {
	req := &SubmitStructure{FileName: fileName, Contents: contents, Settings: settings}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

// SubmitStructureFromFile reads path and creates an upload named after its
// base name.
func SubmitStructureFromFile(path string, settings Settings) (*SubmitStructure, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.InvalidParameter("file_name", "cannot read %s: %v", path, err)
	}
	return NewSubmitStructure(filepath.Base(path), contents, settings)
}

func (r *SubmitStructure) Method() string   { return http.MethodPost }
func (r *SubmitStructure) Endpoint() string { return endpointSubmit }

func (r *SubmitStructure) Validate() error {
	if err := errors.ValidateStructureFilename(r.FileName); err != nil {
		return err
	}
	if len(r.Contents) == 0 {
		return errors.InvalidParameter("contents", "is required")
	}
	return r.Settings.Validate()
}

func (r *SubmitStructure) Encode() (*transport.Call, error) {
	body, contentType, err := encodeForm(r.Settings.Fields(), r.FileName, r.Contents)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode upload")
	}
	return &transport.Call{
		Method:      r.Method(),
		Path:        r.Endpoint(),
		Body:        body,
		ContentType: contentType,
	}, nil
}

func (r *SubmitStructure) Decode(raw []byte) (SubmitResponse, error) { return decodeSubmit(raw) }

// =============================================================================
// Status and result
// =============================================================================

// StatusRequest asks for the current state of a job.
type StatusRequest struct {
	JobID JobID
}

func (r StatusRequest) Method() string   { return http.MethodGet }
func (r StatusRequest) Endpoint() string { return endpointStatus + url.PathEscape(string(r.JobID)) }
func (r StatusRequest) Validate() error  { return r.JobID.Validate() }

func (r StatusRequest) Encode() (*transport.Call, error) {
	return &transport.Call{Method: r.Method(), Path: r.Endpoint()}, nil
}

func (r StatusRequest) Decode(raw []byte) (*StatusResponse, error) { return decodeStatus(raw) }

// ResultRequest fetches the interaction network of a completed job.
type ResultRequest struct {
	JobID JobID
}

func (r ResultRequest) Method() string   { return http.MethodGet }
func (r ResultRequest) Endpoint() string { return endpointResults + url.PathEscape(string(r.JobID)) }
func (r ResultRequest) Validate() error  { return r.JobID.Validate() }

func (r ResultRequest) Encode() (*transport.Call, error) {
	return &transport.Call{
		Method: r.Method(),
		Path:   r.Endpoint(),
		Query:  url.Values{"engine": {resultEngine}},
	}, nil
}

func (r ResultRequest) Decode(raw []byte) (*Network, error) { return ParseNetwork(raw) }

var (
	_ Request[SubmitResponse]  = (*SubmitID)(nil)
	_ Request[SubmitResponse]  = (*SubmitStructure)(nil)
	_ Request[*StatusResponse] = StatusRequest{}
	_ Request[*Network]        = ResultRequest{}
)
