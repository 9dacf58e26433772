package mc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/netspeedy/s3cure/internal/policy"
	"github.com/netspeedy/s3cure/internal/provisioning"
)

// bucketExistsMarker is the message MinIO returns when mb hits an existing
// bucket owned by the caller. It is the store-side uniqueness constraint the
// orchestrator relies on to break same-name creation races.
const bucketExistsMarker = "Your previous request to create the named bucket succeeded"

// redacted replaces secret argv positions in log output.
const redacted = "****"

// OpError is a typed failure from one management-client operation. It names
// the operation so callers can report exactly which step the store rejected.
type OpError struct {
	Op     string
	Stderr string
	Err    error
}

func (e *OpError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("mc %s: %v: %s", e.Op, e.Err, e.Stderr)
	}
	return fmt.Sprintf("mc %s: %v", e.Op, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

// runner executes the external client and returns its stdout and stderr.
// Replaced in tests.
type runner func(ctx context.Context, name string, args ...string) (stdout, stderr string, err error)

func execRunner(ctx context.Context, name string, args ...string) (string, string, error) {
	var outBuf, errBuf bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf
	err := cmd.Run()
	return outBuf.String(), errBuf.String(), err
}

// Options configures a Client.
type Options struct {
	// Path is the mc binary to invoke.
	Path string
	// Alias is the mc alias naming the target store. Explicit configuration,
	// never read from ambient process state.
	Alias string
	// StepTimeout bounds each individual mc invocation. Zero disables the
	// bound.
	StepTimeout time.Duration
	// Logger receives structured command telemetry. Secret argv positions
	// are redacted; credential values are never logged.
	Logger *zap.Logger
}

// Client implements provisioning.StoreClient on top of the mc CLI.
type Client struct {
	path        string
	alias       string
	stepTimeout time.Duration
	logger      *zap.Logger
	run         runner
}

// NewClient creates an mc-backed store client.
func NewClient(opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		path:        opts.Path,
		alias:       opts.Alias,
		stepTimeout: opts.StepTimeout,
		logger:      logger,
		run:         execRunner,
	}
}

var _ provisioning.StoreClient = (*Client)(nil)

// target renders "<alias>/<bucket>" for bucket-level commands.
func (c *Client) target(bucket string) string {
	return fmt.Sprintf("%s/%s", c.alias, bucket)
}

// BucketExists checks bucket existence via `mc stat`.
func (c *Client) BucketExists(ctx context.Context, bucket string) (bool, error) {
	_, stderr, err := c.invoke(ctx, "stat", nil, "stat", c.target(bucket))
	if err == nil {
		return true, nil
	}
	if strings.Contains(stderr, "does not exist") {
		return false, nil
	}
	return false, &OpError{Op: "stat", Stderr: strings.TrimSpace(stderr), Err: err}
}

// CreateBucket creates the bucket via `mc mb`. A store-side uniqueness
// conflict surfaces as provisioning.ErrBucketExists.
func (c *Client) CreateBucket(ctx context.Context, bucket string) error {
	_, stderr, err := c.invoke(ctx, "mb", nil, "mb", c.target(bucket))
	if err == nil {
		return nil
	}
	if strings.Contains(stderr, bucketExistsMarker) {
		return provisioning.ErrBucketExists
	}
	return &OpError{Op: "mb", Stderr: strings.TrimSpace(stderr), Err: err}
}

// CreateUser creates an identity via `mc admin user add`.
func (c *Client) CreateUser(ctx context.Context, username, password string) error {
	args := []string{"admin", "user", "add", c.alias, username, password}
	_, stderr, err := c.invoke(ctx, "admin user add", map[int]bool{5: true}, args...)
	if err != nil {
		return &OpError{Op: "admin user add", Stderr: strings.TrimSpace(stderr), Err: err}
	}
	return nil
}

// CreatePolicy registers a policy document via `mc admin policy create`. The
// document is written to a temporary file for the duration of the call, the
// only medium mc accepts.
func (c *Client) CreatePolicy(ctx context.Context, name string, doc policy.Document) error {
	data, err := doc.JSON()
	if err != nil {
		return &OpError{Op: "admin policy create", Err: err}
	}

	f, err := os.CreateTemp("", "s3cure-policy-*.json")
	if err != nil {
		return &OpError{Op: "admin policy create", Err: fmt.Errorf("write policy file: %w", err)}
	}
	defer os.Remove(f.Name())

	if _, err := f.Write(data); err != nil {
		f.Close()
		return &OpError{Op: "admin policy create", Err: fmt.Errorf("write policy file: %w", err)}
	}
	if err := f.Close(); err != nil {
		return &OpError{Op: "admin policy create", Err: fmt.Errorf("write policy file: %w", err)}
	}

	args := []string{"admin", "policy", "create", c.alias, name, f.Name()}
	if _, stderr, err := c.invoke(ctx, "admin policy create", nil, args...); err != nil {
		return &OpError{Op: "admin policy create", Stderr: strings.TrimSpace(stderr), Err: err}
	}
	return nil
}

// AttachPolicy attaches a registered policy to a user.
func (c *Client) AttachPolicy(ctx context.Context, username, policyName string) error {
	args := []string{"admin", "policy", "attach", c.alias, policyName, "--user", username}
	if _, stderr, err := c.invoke(ctx, "admin policy attach", nil, args...); err != nil {
		return &OpError{Op: "admin policy attach", Stderr: strings.TrimSpace(stderr), Err: err}
	}
	return nil
}

// CreateServiceAccount creates a service account under username with the
// requested key pair via `mc admin user svcacct add` and returns the keys
// the store issued. The store's own echo of the keys wins; if its output is
// unparsable the requested pair is returned, since a zero exit means the
// store accepted exactly those keys.
func (c *Client) CreateServiceAccount(ctx context.Context, username, accessKey, secretKey string) (string, string, error) {
	if accessKey == "" || secretKey == "" {
		return "", "", &OpError{Op: "admin user svcacct add", Err: errors.New("empty service-account key pair requested")}
	}

	args := []string{
		"admin", "user", "svcacct", "add",
		"--access-key", accessKey,
		"--secret-key", secretKey,
		c.alias, username,
	}
	stdout, stderr, err := c.invoke(ctx, "admin user svcacct add", map[int]bool{5: true, 7: true}, args...)
	if err != nil {
		return "", "", &OpError{Op: "admin user svcacct add", Stderr: strings.TrimSpace(stderr), Err: err}
	}

	issuedAccess, issuedSecret := parseServiceAccountOutput(stdout)
	if issuedAccess == "" {
		issuedAccess = accessKey
	}
	if issuedSecret == "" {
		issuedSecret = secretKey
	}
	return issuedAccess, issuedSecret, nil
}

// parseServiceAccountOutput extracts the key pair from mc's human-readable
// svcacct output ("Access Key: ..." / "Secret Key: ..." lines).
func parseServiceAccountOutput(out string) (accessKey, secretKey string) {
	for _, line := range strings.Split(out, "\n") {
		switch {
		case strings.Contains(line, "Access Key:"):
			accessKey = valueAfterColon(line)
		case strings.Contains(line, "Secret Key:"):
			secretKey = valueAfterColon(line)
		}
	}
	return accessKey, secretKey
}

func valueAfterColon(line string) string {
	_, value, found := strings.Cut(line, ":")
	if !found {
		return ""
	}
	return strings.TrimSpace(value)
}

// invoke runs one mc command under the per-step timeout. secretArgs marks
// argv indexes that must never reach the log.
func (c *Client) invoke(ctx context.Context, op string, secretArgs map[int]bool, args ...string) (string, string, error) {
	if c.stepTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.stepTimeout)
		defer cancel()
	}

	c.logger.Debug("running management client",
		zap.String("op", op),
		zap.Strings("args", redactArgs(args, secretArgs)),
	)

	start := time.Now()
	stdout, stderr, err := c.run(ctx, c.path, args...)
	elapsed := time.Since(start)

	if ctxErr := ctx.Err(); errors.Is(ctxErr, context.DeadlineExceeded) {
		c.logger.Warn("management client timed out",
			zap.String("op", op),
			zap.Duration("elapsed", elapsed),
		)
		return stdout, stderr, fmt.Errorf("timed out after %v: %w", elapsed.Round(time.Millisecond), context.DeadlineExceeded)
	}

	if err != nil {
		c.logger.Warn("management client failed",
			zap.String("op", op),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
		return stdout, stderr, err
	}

	c.logger.Debug("management client succeeded",
		zap.String("op", op),
		zap.Duration("elapsed", elapsed),
	)
	return stdout, stderr, nil
}

func redactArgs(args []string, secretArgs map[int]bool) []string {
	out := make([]string, len(args))
	for i, a := range args {
		if secretArgs[i] {
			out[i] = redacted
			continue
		}
		out[i] = a
	}
	return out
}
