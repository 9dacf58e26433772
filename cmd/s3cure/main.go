// Package main is the entry point for the s3cure CLI.
//
// s3cure provisions an isolated storage namespace on a MinIO/S3-compatible
// object store: one bucket, one dedicated admin identity, one least-privilege
// policy, and one scoped service account, all with freshly generated
// credentials.
//
// Commands: create, check, init, version.
//
// For detailed usage information, run:
//
//	s3cure --help
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/netspeedy/s3cure/cmd/s3cure/commands"
	"github.com/netspeedy/s3cure/cmd/s3cure/handlers"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Exit codes. An existing bucket is a distinct, scriptable outcome: nothing
// was created and nothing was re-issued.
const (
	exitOK            = 0
	exitFailure       = 1
	exitAlreadyExists = 2
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, handlers.ErrBucketExists) {
			os.Exit(exitAlreadyExists)
		}
		os.Exit(exitFailure)
	}
	os.Exit(exitOK)
}
