package io

import (
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/ringapi/pkg/ring"
)

// ReadJSON decodes a network from r.
//
// The input is validated by [ring.ParseNetwork]; see that function for the
// rules. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*ring.Network, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return ring.ParseNetwork(data)
}

// ImportJSON reads the JSON file at path and returns the decoded network.
// Read failures are wrapped with the path; validation failures are returned
// as is so their error code survives.
func ImportJSON(path string) (*ring.Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
