package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ringapi/pkg/errors"
	"github.com/matzehuels/ringapi/pkg/observability"
	"github.com/matzehuels/ringapi/pkg/ring"
)

// spinnerHooks mirrors job progress into the spinner message and forwards
// every event to the wrapped hooks.
type spinnerHooks struct {
	observability.JobHooks
	spinner *Spinner
}

func (h spinnerHooks) OnSubmit(ctx context.Context, jobID, status string) {
	h.spinner.SetMessage(fmt.Sprintf("Job %s %s...", jobID, status))
	h.JobHooks.OnSubmit(ctx, jobID, status)
}

func (h spinnerHooks) OnPoll(ctx context.Context, jobID, status string, attempt int) {
	h.spinner.SetMessage(fmt.Sprintf("Job %s %s (poll %d)...", jobID, status, attempt))
	h.JobHooks.OnPoll(ctx, jobID, status, attempt)
}

// runCommand creates the run command: submit, wait and fetch in one step.
func (c *CLI) runCommand() *cobra.Command {
	var (
		file string
		sf   settingsFlags
		out  outputFlags
	)

	cmd := &cobra.Command{
		Use:   "run [pdb-id]",
		Short: "Submit a structure, wait for the job and save its network",
		Long: `Run submits a structure to RING, polls the job until it completes and
fetches the interaction network. The network is written as JSON unless
--format or the output extension asks for DOT or SVG.`,
		Example: `  ring run 1ubq -o 1ubq.json
  ring run --file model.pdb --relaxed -o model.svg --detailed
  ring run 4hhb --chain A --policy lollipop --format dot | dot -Tpng > 4hhb.png`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			if _, err := out.resolveFormat(); err != nil {
				return err
			}
			req, err := submitRequest(cmd, args, file, &sf)
			if err != nil {
				return err
			}

			spinner := newSpinner(ctx, os.Stderr, "Submitting...")
			hooks := spinnerHooks{JobHooks: observability.NewLogHooks(logger), spinner: spinner}
			client, err := c.newClient(ring.WithJobHooks(hooks))
			if err != nil {
				return err
			}

			prog := newProgress(logger)
			spinner.Start()
			net, err := client.Run(ctx, req)
			if err != nil {
				if spinner.Cancelled() {
					spinner.Stop()
					return ctx.Err()
				}
				spinner.StopWithError(fmt.Sprintf("Job did not complete: %s", errors.UserMessage(err)))
				return err
			}
			if out.output == "" {
				// stdout carries the network itself
				spinner.Stop()
			} else {
				spinner.StopWithSuccess(fmt.Sprintf("Job %s complete", StyleHighlight.Render(net.JobID.String())))
				printNetworkStats(net)
			}
			prog.done("Job finished", "job", net.JobID, "nodes", len(net.Nodes), "edges", len(net.Edges))

			return out.writeNetwork(cmd.OutOrStdout(), net)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "upload a local structure file instead of a PDB id")
	cmd.Flags().DurationVar(&c.flags.pollInterval, "poll-interval", 0, "time between status polls (default $RING_POLL_INTERVAL or 5s)")
	sf.register(cmd)
	out.register(cmd)
	return cmd
}
