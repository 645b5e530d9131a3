package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/ringapi/pkg/io"
)

// showCommand creates the show command for inspecting a saved network.
func (c *CLI) showCommand() *cobra.Command {
	var out outputFlags

	cmd := &cobra.Command{
		Use:   "show <network.json>",
		Short: "Summarize a saved network, optionally converting it to DOT or SVG",
		Example: `  ring show 1ubq.json
  ring show 1ubq.json -o 1ubq.svg --detailed`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			net, err := io.ImportJSON(args[0])
			if err != nil {
				return err
			}
			if out.output == "" && out.format == "" {
				if net.JobID != "" {
					printJob(net.Job)
				} else {
					printInfo("%s carries no job metadata", args[0])
				}
				printNetworkStats(net)
				return nil
			}
			return out.writeNetwork(cmd.OutOrStdout(), net)
		},
	}

	out.register(cmd)
	return cmd
}
