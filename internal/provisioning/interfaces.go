package provisioning

import (
	"context"

	"github.com/netspeedy/s3cure/internal/policy"
)

// StoreClient is the capability the orchestrator needs from the external
// management client. Implementations must be stateless: existence is always
// re-queried from the store, never cached across calls.
//
// Implemented by internal/mc.Client; tests substitute an in-memory fake.
type StoreClient interface {
	// BucketExists reports whether the bucket currently exists on the store.
	BucketExists(ctx context.Context, bucket string) (bool, error)

	// CreateBucket creates the bucket. A conflict with an existing bucket is
	// reported as ErrBucketExists so the caller can treat a lost creation
	// race like an ordinary already-exists outcome.
	CreateBucket(ctx context.Context, bucket string) error

	// CreateUser creates an identity with the given password.
	CreateUser(ctx context.Context, username, password string) error

	// CreatePolicy registers a named policy document on the store.
	CreatePolicy(ctx context.Context, name string, doc policy.Document) error

	// AttachPolicy attaches a registered policy to a user.
	AttachPolicy(ctx context.Context, username, policyName string) error

	// CreateServiceAccount creates a service account under username with the
	// requested key pair and returns the keys the store actually issued.
	CreateServiceAccount(ctx context.Context, username, accessKey, secretKey string) (string, string, error)
}

// Verifier checks that freshly issued service-account credentials can
// actually reach the bucket. Implemented by internal/platform/s3.Client.
type Verifier interface {
	VerifyReadWrite(ctx context.Context, bucket, accessKey, secretKey string) error
}
