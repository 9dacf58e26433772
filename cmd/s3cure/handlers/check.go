package handlers

import (
	"context"
	"fmt"

	"github.com/netspeedy/s3cure/internal/config"
	"github.com/netspeedy/s3cure/internal/platform/s3"
	"github.com/netspeedy/s3cure/internal/provisioning"
)

// bucketChecker is the slice of the S3 client the check command needs.
type bucketChecker interface {
	BucketExists(ctx context.Context, bucket string) (bool, error)
}

// Factory function variables for check - can be replaced in tests.
var (
	// operatorCredentials reads the operator key pair from the environment.
	operatorCredentials = config.OperatorCredentials

	// newCheckClient builds the direct S3 client used for the probe.
	newCheckClient = func(ctx context.Context, endpoint, accessKey, secretKey string) (bucketChecker, error) {
		return s3.NewClient(ctx, endpoint, accessKey, secretKey)
	}
)

// Check handles the check command.
//
// It probes the store over the S3 API with operator credentials. An existing
// bucket surfaces as ErrBucketExists (exit 2); an absent one returns nil
// (exit 0), meaning the name is free to provision.
func Check(ctx context.Context, bucket, configPath, endpoint string) error {
	if err := provisioning.ValidateBucketName(bucket); err != nil {
		return err
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if endpoint != "" {
		cfg.Endpoint = endpoint
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("configuration validation failed: %w", err)
		}
	}

	accessKey, secretKey, err := operatorCredentials()
	if err != nil {
		return err
	}

	client, err := newCheckClient(ctx, cfg.Endpoint, accessKey, secretKey)
	if err != nil {
		return fmt.Errorf("failed to build S3 client: %w", err)
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %q: %w", bucket, err)
	}

	if exists {
		fmt.Printf("Bucket %q exists on %s.\n", bucket, cfg.Endpoint)
		return fmt.Errorf("bucket %q: %w", bucket, ErrBucketExists)
	}

	fmt.Printf("Bucket %q does not exist on %s.\n", bucket, cfg.Endpoint)
	return nil
}
