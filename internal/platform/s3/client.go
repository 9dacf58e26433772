package s3

import (
	"bytes"
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/netspeedy/s3cure/internal/util/naming"
)

// defaultRegion satisfies the SDK; MinIO and most S3-compatible stores
// ignore it.
const defaultRegion = "us-east-1"

// Client wraps the S3 API client for the target store.
type Client struct {
	s3 *s3.Client
}

// NewClient creates an S3 client for an S3-compatible endpoint using static
// credentials. Path-style addressing is used; MinIO deployments rarely carry
// the wildcard DNS virtual-hosted style needs.
func NewClient(ctx context.Context, endpoint, accessKey, secretKey string) (*Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
		config.WithRegion(defaultRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	return &Client{s3: client}, nil
}

// BucketExists checks if a bucket exists and is accessible.
func (c *Client) BucketExists(ctx context.Context, bucket string) (bool, error) {
	_, err := c.s3.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		if isNotFoundError(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}
	return true, nil
}

// VerifyReadWrite proves a credential pair can operate on the bucket by
// writing, reading back and deleting a small probe object. It implements
// provisioning.Verifier.
func (c *Client) VerifyReadWrite(ctx context.Context, bucket, accessKey, secretKey string) error {
	probe, err := c.withCredentials(ctx, accessKey, secretKey)
	if err != nil {
		return err
	}

	key := naming.VerifyObjectKey(bucket)
	payload := make([]byte, 32)
	if _, err := rand.Read(payload); err != nil {
		return fmt.Errorf("failed to build probe payload: %w", err)
	}

	if _, err := probe.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(payload),
		ContentLength: aws.Int64(int64(len(payload))),
	}); err != nil {
		return fmt.Errorf("probe write to bucket %s failed: %w", bucket, err)
	}

	got, err := probe.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("probe read from bucket %s failed: %w", bucket, err)
	}
	defer got.Body.Close()

	readBack, err := io.ReadAll(got.Body)
	if err != nil {
		return fmt.Errorf("failed to read probe body: %w", err)
	}
	if !bytes.Equal(readBack, payload) {
		return fmt.Errorf("probe object in bucket %s came back corrupted", bucket)
	}

	if _, err := probe.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("probe delete from bucket %s failed: %w", bucket, err)
	}

	return nil
}

// withCredentials returns an s3.Client bound to the same endpoint but a
// different credential pair.
func (c *Client) withCredentials(ctx context.Context, accessKey, secretKey string) (*s3.Client, error) {
	base := c.s3.Options()

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
		config.WithRegion(base.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = base.BaseEndpoint
		o.UsePathStyle = true
	}), nil
}

// isNotFoundError checks if the error is a not found error.
func isNotFoundError(err error) bool {
	if err == nil {
		return false
	}

	// Check for typed S3 errors first
	var nsb *types.NoSuchBucket
	if errors.As(err, &nsb) {
		return true
	}

	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}

	// Fall back to API error code checking for S3-compatible services
	// that may not return the exact SDK error types
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "NotFound" || code == "NoSuchBucket" || code == "404"
	}

	return false
}
