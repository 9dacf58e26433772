package commands

import (
	"github.com/spf13/cobra"

	"github.com/netspeedy/s3cure/cmd/s3cure/handlers"
)

// Init returns the command for interactively creating a configuration file.
//
// Flags:
//
//	--output, -o: Path to output file (default "s3cure.yaml")
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a configuration file",
		Long: `Interactively create an s3cure configuration file.

This command asks about:

  - The S3 endpoint of the target store
  - The mc alias registered for it and the mc binary path
  - Generated credential lengths and charset

The resulting file carries no secrets; it only describes the target store
and the credential profile used by 'create'.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "s3cure.yaml", "Output file path")

	return cmd
}
