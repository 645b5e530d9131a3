// Package pkg provides the libraries behind ringapi, a typed client for the
// RING (Residue Interaction Network Generator) web service.
//
// # Overview
//
// RING computes residue interaction networks for protein structures. The pkg
// directory is organized by layer:
//
//  1. [ring] - Requests, responses and the client facade
//  2. [transport] - A single HTTP exchange with the service
//  3. [errors] - Error codes and typed errors shared by every layer
//  4. [observability] - Hooks for HTTP calls and job progress
//  5. [io] and [render] - Saving and drawing retrieved networks
//
// # Architecture
//
// The typical data flow:
//
//	PDB id or structure file + Settings
//	         ↓
//	    [ring] package (validate, encode)
//	         ↓
//	    [transport] package (one HTTP call, status mapping)
//	         ↓
//	    [ring] package (decode, validate Network)
//	         ↓
//	    JSON/DOT/SVG output via [io] and [render]
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/ringapi/pkg/io"
//	    "github.com/matzehuels/ringapi/pkg/ring"
//	)
//
//	client, _ := ring.New()
//	req, _ := ring.NewSubmitID("1ubq", ring.DefaultSettings())
//
//	net, err := client.Run(context.Background(), req)
//	if err != nil {
//	    return err
//	}
//	io.ExportJSON(net, "1ubq.json")
//
// # Errors
//
// Every failure carries one of the codes in [errors]: INVALID_PARAMETER is
// raised before anything is sent, NETWORK_ERROR and HTTP_STATUS come from the
// transport, MALFORMED_RESPONSE from decoding and JOB_FAILED from polling.
// Use [errors.Is] to branch on them.
//
// [ring]: https://pkg.go.dev/github.com/matzehuels/ringapi/pkg/ring
// [transport]: https://pkg.go.dev/github.com/matzehuels/ringapi/pkg/transport
// [errors]: https://pkg.go.dev/github.com/matzehuels/ringapi/pkg/errors
// [errors.Is]: https://pkg.go.dev/github.com/matzehuels/ringapi/pkg/errors#Is
// [observability]: https://pkg.go.dev/github.com/matzehuels/ringapi/pkg/observability
// [io]: https://pkg.go.dev/github.com/matzehuels/ringapi/pkg/io
// [render]: https://pkg.go.dev/github.com/matzehuels/ringapi/pkg/render
package pkg
