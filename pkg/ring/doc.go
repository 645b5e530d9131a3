// Package ring is a typed client for the RING (Residue Interaction Network
// Generator) web service.
//
// # Overview
//
// RING computes residue interaction networks for protein structures. A job is
// submitted either by PDB identifier or by uploading a structure file, polled
// until the service reports it complete, and its result is fetched as a graph
// of residues (nodes) and non-covalent interactions (edges).
//
// # Requests
//
// Every call is described by a value implementing [Request]. Requests are
// validated locally before anything is sent, so an invalid PDB identifier or a
// negative threshold fails with an INVALID_PARAMETER error naming the field:
//
//	req, err := ring.NewSubmitID("1abc", ring.DefaultSettings())
//	// req.PDBID == "1ABC"
//
// The four requests map to the service endpoints:
//
//   - [SubmitID]: POST /submit with a JSON body
//   - [SubmitStructure]: POST /submit with a multipart body
//   - [StatusRequest]: GET /status/{id}
//   - [ResultRequest]: GET /results/{id}?engine=d3
//
// Encoding is deterministic: encoding the same request twice yields
// byte-identical bodies, including the multipart boundary.
//
// # Client
//
// [Client] composes validation, encoding, transport and decoding. [Send] runs
// any request; the methods on Client are shorthands for the common ones:
//
//	c, err := ring.New(ring.WithTimeout(time.Minute))
//	net, err := c.Run(ctx, req)  // submit, wait, fetch result
//
// Each stage surfaces its failure unchanged: INVALID_PARAMETER before the
// network is touched, NETWORK_ERROR or HTTP_STATUS from the transport, and
// MALFORMED_RESPONSE when the body does not match the expected schema.
//
// # Results
//
// [ParseNetwork] decodes a result body into a [Network] and rejects bodies
// whose edges reference nodes that are not part of the same response. A parsed
// Network is therefore always edge-closed.
//
// A Client holds only immutable configuration and is safe for concurrent use.
package ring
