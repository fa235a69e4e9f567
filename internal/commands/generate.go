package commands

import (
	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <input-file|-> [output-directory]",
		Short: "Write the header and implementation of a boxed type",
		Long: `Read a schema file (or standard input when the name is "-") and write
<prefix>-<type>.h and <prefix>-<type>.cpp to the output directory, which
defaults to the current directory. Nothing is written if the schema is
invalid.`,
		Example: `  # Generate cog-session.h and cog-session.cpp into src/
  boxgen generate session.yaml src

  # Read the schema from standard input
  cat session.yaml | boxgen generate -`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputDir := "."
			if len(args) == 2 {
				outputDir = args[1]
			}

			d, sync, err := newDriver(cmd)
			if err != nil {
				return err
			}
			defer sync()

			_, err = d.Generate(args[0], outputDir)

			return err
		},
	}

	return cmd
}
