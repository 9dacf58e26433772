package commands

import (
	"github.com/spf13/cobra"

	"github.com/netspeedy/s3cure/cmd/s3cure/handlers"
)

// Create returns the command for provisioning a bucket with its credentials.
//
// This command runs the full provisioning sequence: bucket, admin identity,
// least-privilege policy, service account. Re-running it for an existing
// bucket creates nothing and exits with code 2.
//
// Optional flags:
//
//	--config, -c: Path to configuration file (default: auto-detect s3cure.yaml)
//	--endpoint:   Override the configured S3 endpoint
//	--json:       Emit the outcome as JSON instead of styled output
//	--verify:     Round-trip a probe object with the new service-account credentials
func Create() *cobra.Command {
	var opts handlers.CreateOptions

	cmd := &cobra.Command{
		Use:   "create <bucket>",
		Short: "Provision a bucket with admin identity, policy and service account",
		Long: `Provision an isolated storage namespace on the configured store.

The sequence is strictly ordered:
  1. Check whether the bucket exists (exit 2 if it does, nothing is touched)
  2. Create the bucket
  3. Create an admin user named after the bucket, with a fresh password
  4. Create and attach a policy scoped to exactly this bucket
  5. Create a service account for the admin user

On success the issued credentials are printed once; they are never persisted
or logged. On failure the run stops at the failing step and reports what was
already created — nothing is deleted automatically.

Examples:
  # Provision using s3cure.yaml in the current directory (or defaults)
  s3cure create team-uploads

  # Provision against a different endpoint, verify, machine-readable output
  s3cure create team-uploads --endpoint https://s3.example.com --verify --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.Create(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (default: s3cure.yaml)")
	cmd.Flags().StringVar(&opts.Endpoint, "endpoint", "", "Override the configured S3 endpoint")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Emit the outcome as JSON")
	cmd.Flags().BoolVar(&opts.Verify, "verify", false, "Verify the new credentials with an S3 read/write round-trip")

	return cmd
}
