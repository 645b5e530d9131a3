package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/ringapi/pkg/errors"
	"github.com/matzehuels/ringapi/pkg/ring"
)

// submitRequest builds a submission from a PDB id argument or --file.
func submitRequest(cmd *cobra.Command, args []string, file string, sf *settingsFlags) (ring.Request[ring.SubmitResponse], error) {
	settings, err := sf.resolve(cmd)
	if err != nil {
		return nil, err
	}
	switch {
	case file != "" && len(args) > 0:
		return nil, errors.InvalidParameter("file_name", "give either a PDB id or --file, not both")
	case file != "":
		return ring.SubmitStructureFromFile(file, settings)
	case len(args) == 1:
		return ring.NewSubmitID(args[0], settings)
	default:
		return nil, errors.InvalidParameter("pdb_id", "is required (or use --file)")
	}
}

// submitCommand creates the submit command.
func (c *CLI) submitCommand() *cobra.Command {
	var (
		file string
		sf   settingsFlags
	)

	cmd := &cobra.Command{
		Use:   "submit [pdb-id]",
		Short: "Submit a RING job and print its id",
		Long: `Submit a RING job for a structure from the Protein Data Bank, or upload
a local .pdb/.cif file with --file. The job id is printed; use "ring status"
to follow it and "ring result" to fetch the network.`,
		Example: `  ring submit 1ubq
  ring submit --file model.pdb --chain A --relaxed`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := submitRequest(cmd, args, file, &sf)
			if err != nil {
				return err
			}
			client, err := c.newClient()
			if err != nil {
				return err
			}

			resp, err := ring.Send(cmd.Context(), client, req)
			if err != nil {
				return err
			}
			printSuccess("Submitted job %s", StyleHighlight.Render(resp.JobID.String()))
			printKeyValue("Status", renderStatus(resp.Status))
			printNextStep("Check progress", "ring status "+resp.JobID.String())
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "upload a local structure file instead of a PDB id")
	sf.register(cmd)
	return cmd
}

// statusCommand creates the status command.
func (c *CLI) statusCommand() *cobra.Command {
	var showSettings, wait bool

	cmd := &cobra.Command{
		Use:   "status <job-id>",
		Short: "Show the state of a RING job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.newClient()
			if err != nil {
				return err
			}
			var st *ring.StatusResponse
			if wait {
				st, err = client.Wait(cmd.Context(), ring.JobID(args[0]))
			} else {
				st, err = client.Status(cmd.Context(), ring.JobID(args[0]))
			}
			if err != nil {
				return err
			}
			printJob(st.Job)
			if st.Status == ring.StatusPartial {
				printWarning("Job %s has partial results; the network may still grow", args[0])
			}
			if showSettings {
				printSettings(st.Settings)
			}
			if st.Status.Done() && st.Status != ring.StatusFailed {
				printNextStep("Fetch the network", "ring result "+args[0]+" -o network.json")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showSettings, "settings", false, "also print the job settings")
	cmd.Flags().BoolVarP(&wait, "wait", "w", false, "poll until the job completes or fails")
	cmd.Flags().DurationVar(&c.flags.pollInterval, "poll-interval", 0, "time between status polls with --wait")
	return cmd
}
