package commands

import (
	"github.com/spf13/cobra"

	"github.com/netspeedy/s3cure/cmd/s3cure/handlers"
)

// Check returns the command for probing whether a bucket already exists.
//
// Unlike create, this talks to the S3 API directly (HeadBucket) using
// operator credentials from the environment, so it needs no mc binary.
//
// Environment variables:
//
//	S3CURE_ACCESS_KEY: Operator access key (required)
//	S3CURE_SECRET_KEY: Operator secret key (required)
func Check() *cobra.Command {
	var configPath string
	var endpoint string

	cmd := &cobra.Command{
		Use:   "check <bucket>",
		Short: "Report whether a bucket already exists on the store",
		Long: `Check whether a bucket exists on the configured store.

Exits 0 when the bucket is absent (the name is free to provision) and 2 when
it exists. Operator credentials are read from S3CURE_ACCESS_KEY and
S3CURE_SECRET_KEY (a .env file in the working directory is honored).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.Check(cmd.Context(), args[0], configPath, endpoint)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: s3cure.yaml)")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "Override the configured S3 endpoint")

	return cmd
}
