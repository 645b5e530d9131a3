// Package io provides JSON import and export for residue interaction networks.
//
// # Overview
//
// Networks fetched from the service can be saved and re-read later without
// another round trip. This is useful for:
//
//   - Test fixtures recorded from real service responses
//   - Re-rendering a network with different options
//   - Handing results to external tools that consume the service's JSON
//
// # JSON Format
//
// The format is the one the service returns for result requests: the job
// description and settings as top-level keys, plus two required arrays:
//
//	{
//	  "_id": "5f2a9c",
//	  "status": "complete",
//	  "pdbName": "1ABC",
//	  "chain": "all",
//	  "hbond": 3.5,
//	  ...
//	  "nodes": [
//	    {"NodeId": "A:10:_:LYS", "Residue": "LYS", "Position": 10, "Chain": "A", ...}
//	  ],
//	  "edges": [
//	    {"NodeId1": "A:10:_:LYS", "NodeId2": "A:14:_:GLU", "Interaction": "IONIC:SC_SC", "Distance": 3.8}
//	  ]
//	}
//
// # Import
//
// [ReadJSON] and [ImportJSON] decode through [ring.ParseNetwork], so a file
// is held to exactly the same rules as a live response: duplicate node ids,
// dangling edge endpoints and negative distances are rejected with a
// MALFORMED_RESPONSE error.
//
// # Export
//
// [WriteJSON] and [ExportJSON] write indented JSON. Exporting a parsed
// network and importing the file again yields an equal network.
//
// [ring.ParseNetwork]: github.com/matzehuels/ringapi/pkg/ring.ParseNetwork
package io
