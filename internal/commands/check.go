package commands

import (
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "check <input-file|->",
		Short:   "Validate a schema and show the strategy of every field",
		Example: `  boxgen check session.yaml`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, sync, err := newDriver(cmd)
			if err != nil {
				return err
			}
			defer sync()

			return d.Check(args[0], cmd.OutOrStdout())
		},
	}

	return cmd
}
