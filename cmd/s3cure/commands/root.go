// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing, flag binding, and validation. Command execution is delegated to
// handler functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the s3cure CLI.
//
// The root command serves as the entry point and parent for all subcommands.
// Errors are printed (and mapped to exit codes) by main, so cobra's own
// error and usage echoing is silenced.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "s3cure",
		Short:         "Provision isolated buckets with scoped credentials on S3-compatible stores",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(Create())
	cmd.AddCommand(Check())
	cmd.AddCommand(Init())
	cmd.AddCommand(Version())

	return cmd
}
