package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/ringapi/pkg/ring"
)

// WriteJSON encodes a network as indented JSON and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(net *ring.Network, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(net); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a network to a JSON file at path.
func ExportJSON(net *ring.Network, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(net, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
