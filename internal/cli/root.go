package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/ringapi/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
//
// Logging:
//   - Default: the level from RING_LOG_LEVEL (info when unset), to stderr
//   - With --verbose (-v): debug level, including every HTTP exchange
//
// The logger is attached to the command context and reachable from every
// subcommand via loggerFromContext.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "ring computes residue interaction networks with the RING web service",
		Long: `ring submits protein structures to the RING (Residue Interaction Network Generator)
web service, waits for the job to finish and saves the resulting network of
residues and their non-covalent interactions as JSON, Graphviz DOT or SVG.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.flags.verbose {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVar(&c.flags.baseURL, "base-url", "", "service base URL (default $RING_BASE_URL or the public service)")
	pf.DurationVar(&c.flags.timeout, "timeout", 0, "per-call timeout (default $RING_TIMEOUT or 30s)")
	pf.StringVar(&c.flags.envFile, "env-file", "", "read configuration from this .env file")
	pf.BoolVarP(&c.flags.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.submitCommand())
	root.AddCommand(c.statusCommand())
	root.AddCommand(c.resultCommand())
	root.AddCommand(c.runCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.completionCommand())

	return root
}
