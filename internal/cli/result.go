package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ringapi/pkg/errors"
	ringio "github.com/matzehuels/ringapi/pkg/io"
	"github.com/matzehuels/ringapi/pkg/render/network"
	"github.com/matzehuels/ringapi/pkg/ring"
)

// Output formats.
const (
	formatJSON = "json"
	formatDOT  = "dot"
	formatSVG  = "svg"
)

// outputFlags select where and how a network is written.
type outputFlags struct {
	output   string
	format   string
	detailed bool
	color    bool
}

func (f *outputFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.output, "output", "o", "", "output file (default stdout)")
	fs.StringVar(&f.format, "format", "", "output format: json, dot, svg (default from extension, else json)")
	fs.BoolVar(&f.detailed, "detailed", false, "include residue and interaction details in diagrams")
	fs.BoolVar(&f.color, "color", true, "color diagram edges by interaction type")
}

// resolveFormat picks the explicit format, else the output extension, else JSON.
func (f *outputFlags) resolveFormat() (string, error) {
	format := strings.ToLower(f.format)
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(f.output)), ".")
	}
	switch format {
	case formatJSON, formatDOT, formatSVG:
		return format, nil
	case "":
		return formatJSON, nil
	}
	return "", errors.InvalidParameter("format", "unknown format %q (json, dot, svg)", format)
}

// encodeNetwork renders net in the given format.
func encodeNetwork(net *ring.Network, format string, opts network.Options) ([]byte, error) {
	switch format {
	case formatDOT:
		return []byte(network.ToDOT(net, opts)), nil
	case formatSVG:
		return network.RenderSVG(network.ToDOT(net, opts))
	default:
		var buf bytes.Buffer
		if err := ringio.WriteJSON(net, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
}

// writeNetwork writes net to the output file, or to stdout when none is set.
func (f *outputFlags) writeNetwork(stdout io.Writer, net *ring.Network) error {
	format, err := f.resolveFormat()
	if err != nil {
		return err
	}
	data, err := encodeNetwork(net, format, network.Options{Detailed: f.detailed, ColorByType: f.color})
	if err != nil {
		return err
	}
	if f.output == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(f.output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", f.output, err)
	}
	printFile(f.output)
	return nil
}

// resultCommand creates the result command.
func (c *CLI) resultCommand() *cobra.Command {
	var out outputFlags

	cmd := &cobra.Command{
		Use:   "result <job-id>",
		Short: "Fetch the interaction network of a finished job",
		Example: `  ring result 5f2a9c -o 1ubq.json
  ring result 5f2a9c -o 1ubq.svg --detailed`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := out.resolveFormat(); err != nil {
				return err
			}
			client, err := c.newClient()
			if err != nil {
				return err
			}
			net, err := client.Result(cmd.Context(), ring.JobID(args[0]))
			if err != nil {
				return err
			}
			if out.output != "" {
				printSuccess("Fetched network for job %s", StyleHighlight.Render(args[0]))
				printNetworkStats(net)
			}
			return out.writeNetwork(cmd.OutOrStdout(), net)
		},
	}

	out.register(cmd)
	return cmd
}
