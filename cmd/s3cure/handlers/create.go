// Package handlers implements the execution logic behind the CLI commands.
//
// Handlers wire configuration, the external store client and the
// provisioning orchestrator together. Collaborators are created through
// package-level factory variables so tests can substitute fakes without
// touching a real store.
package handlers

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/netspeedy/s3cure/internal/config"
	"github.com/netspeedy/s3cure/internal/credentials"
	"github.com/netspeedy/s3cure/internal/mc"
	"github.com/netspeedy/s3cure/internal/platform/s3"
	"github.com/netspeedy/s3cure/internal/provisioning"
	"github.com/netspeedy/s3cure/internal/util/prerequisites"
)

// ErrBucketExists marks outcomes that map to exit code 2: the bucket is
// already present and nothing was created or re-issued.
var ErrBucketExists = provisioning.ErrBucketExists

// timeoutVerifier bounds each verification round-trip so a hung store cannot
// stall the run indefinitely.
type timeoutVerifier struct {
	inner   provisioning.Verifier
	timeout time.Duration
}

func (v *timeoutVerifier) VerifyReadWrite(ctx context.Context, bucket, accessKey, secretKey string) error {
	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()
	return v.inner.VerifyReadWrite(ctx, bucket, accessKey, secretKey)
}

// CreateOptions carries the create command's flags.
type CreateOptions struct {
	ConfigPath string
	Endpoint   string
	JSON       bool
	Verify     bool
}

// Factory function variables for create - can be replaced in tests.
var (
	// loadConfig loads and validates the tool configuration.
	loadConfig = config.Load

	// newLogger builds the structured logger handed to the store adapter.
	newLogger = func() (*zap.Logger, error) {
		return zap.NewProduction()
	}

	// newStoreClient builds the external management-client adapter.
	newStoreClient = func(cfg *config.Config, logger *zap.Logger) provisioning.StoreClient {
		return mc.NewClient(mc.Options{
			Path:        cfg.MCPath,
			Alias:       cfg.Alias,
			StepTimeout: cfg.Timeouts.Step,
			Logger:      logger,
		})
	}

	// newVerifier builds the S3 round-trip verifier. The client is bound to
	// the endpoint only; VerifyReadWrite supplies the freshly issued
	// credential pair per call. Every round-trip is bounded by the configured
	// verify timeout.
	newVerifier = func(ctx context.Context, endpoint string, timeout time.Duration) (provisioning.Verifier, error) {
		client, err := s3.NewClient(ctx, endpoint, "", "")
		if err != nil {
			return nil, err
		}
		return &timeoutVerifier{inner: client, timeout: timeout}, nil
	}

	// checkPrereqs verifies the external client binary before any remote call.
	checkPrereqs = prerequisites.CheckManagementClient
)

// Create handles the create command.
//
// It loads configuration, assembles the orchestrator around the store
// adapter and runs the provisioning sequence for the named bucket. The
// outcome is rendered exactly once (styled or JSON); an already-existing
// bucket surfaces as ErrBucketExists so main can exit 2.
func Create(ctx context.Context, bucket string, opts CreateOptions) error {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}
	if opts.Endpoint != "" {
		cfg.Endpoint = opts.Endpoint
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("configuration validation failed: %w", err)
		}
	}

	if err := checkPrereqs(cfg.MCPath).Error(); err != nil {
		return err
	}

	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	gen, err := credentials.NewGenerator(cfg.Profile())
	if err != nil {
		return fmt.Errorf("credential configuration invalid: %w", err)
	}

	orchOpts := []provisioning.Option{}
	if !opts.JSON {
		orchOpts = append(orchOpts, provisioning.WithObserver(provisioning.NewConsoleObserver()))
	}
	if opts.Verify {
		verifier, err := newVerifier(ctx, cfg.Endpoint, cfg.Timeouts.Verify)
		if err != nil {
			return fmt.Errorf("failed to build verification client: %w", err)
		}
		orchOpts = append(orchOpts, provisioning.WithVerifier(verifier))
	}

	store := newStoreClient(cfg, logger)
	orchestrator := provisioning.NewOrchestrator(store, gen, orchOpts...)

	outcome := orchestrator.Provision(ctx, provisioning.Request{
		Bucket:   bucket,
		Endpoint: cfg.Endpoint,
	})

	if err := report(outcome, opts.JSON); err != nil {
		return err
	}

	switch outcome.Status {
	case provisioning.StatusCreated:
		return nil
	case provisioning.StatusAlreadyExists:
		return fmt.Errorf("bucket %q: %w", bucket, ErrBucketExists)
	default:
		return fmt.Errorf("provisioning %q failed at stage %s: %w", bucket, outcome.Stage, outcome.Err)
	}
}
