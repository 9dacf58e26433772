package mc

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/netspeedy/s3cure/internal/policy"
	"github.com/netspeedy/s3cure/internal/provisioning"
)

// call records one fake invocation.
type call struct {
	name string
	args []string
}

// fakeRunner scripts the subprocess boundary.
type fakeRunner struct {
	calls  []call
	stdout string
	stderr string
	err    error
}

func (f *fakeRunner) run(_ context.Context, name string, args ...string) (string, string, error) {
	f.calls = append(f.calls, call{name: name, args: args})
	return f.stdout, f.stderr, f.err
}

func newTestClient(r *fakeRunner) *Client {
	c := NewClient(Options{
		Path:        "mc",
		Alias:       "minio",
		StepTimeout: time.Minute,
	})
	c.run = r.run
	return c
}

func TestBucketExists(t *testing.T) {
	tests := []struct {
		name    string
		runner  *fakeRunner
		want    bool
		wantErr bool
	}{
		{
			name:   "bucket present",
			runner: &fakeRunner{stdout: "Name: testbucket\n"},
			want:   true,
		},
		{
			name: "bucket absent",
			runner: &fakeRunner{
				stderr: "mc: <ERROR> Unable to stat `minio/testbucket`. Bucket `testbucket` does not exist.",
				err:    errors.New("exit status 1"),
			},
			want: false,
		},
		{
			name: "store unreachable",
			runner: &fakeRunner{
				stderr: "mc: <ERROR> Unable to stat `minio/testbucket`. Connection refused.",
				err:    errors.New("exit status 1"),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(tt.runner)
			got, err := c.BucketExists(context.Background(), "testbucket")

			if tt.wantErr {
				require.Error(t, err)
				var opErr *OpError
				assert.ErrorAs(t, err, &opErr)
				assert.Equal(t, "stat", opErr.Op)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, []string{"stat", "minio/testbucket"}, tt.runner.calls[0].args)
		})
	}
}

func TestCreateBucket(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		r := &fakeRunner{stdout: "Bucket created successfully `minio/testbucket`."}
		c := newTestClient(r)

		require.NoError(t, c.CreateBucket(context.Background(), "testbucket"))
		assert.Equal(t, []string{"mb", "minio/testbucket"}, r.calls[0].args)
	})

	t.Run("uniqueness conflict maps to ErrBucketExists", func(t *testing.T) {
		r := &fakeRunner{
			stderr: "mc: <ERROR> Unable to make bucket `minio/testbucket`. Your previous request to create the named bucket succeeded and you already own it.",
			err:    errors.New("exit status 1"),
		}
		c := newTestClient(r)

		err := c.CreateBucket(context.Background(), "testbucket")
		assert.ErrorIs(t, err, provisioning.ErrBucketExists)
	})

	t.Run("other failure is typed", func(t *testing.T) {
		r := &fakeRunner{
			stderr: "mc: <ERROR> Unable to make bucket. Access denied.",
			err:    errors.New("exit status 1"),
		}
		c := newTestClient(r)

		err := c.CreateBucket(context.Background(), "testbucket")
		require.Error(t, err)
		assert.NotErrorIs(t, err, provisioning.ErrBucketExists)

		var opErr *OpError
		require.ErrorAs(t, err, &opErr)
		assert.Equal(t, "mb", opErr.Op)
		assert.Contains(t, opErr.Error(), "Access denied")
	})
}

func TestCreateUser(t *testing.T) {
	r := &fakeRunner{stdout: "Added user `testbucket` successfully."}
	c := newTestClient(r)

	require.NoError(t, c.CreateUser(context.Background(), "testbucket", "s3cret-password"))
	assert.Equal(t, []string{"admin", "user", "add", "minio", "testbucket", "s3cret-password"}, r.calls[0].args)
}

func TestCreatePolicy(t *testing.T) {
	r := &fakeRunner{stdout: "Created policy `testbucket-admin-policy` successfully."}
	c := newTestClient(r)

	doc := policy.BuildBucketPolicy("testbucket")
	require.NoError(t, c.CreatePolicy(context.Background(), "testbucket-admin-policy", doc))

	require.Len(t, r.calls, 1)
	args := r.calls[0].args
	require.Len(t, args, 6)
	assert.Equal(t, []string{"admin", "policy", "create", "minio", "testbucket-admin-policy"}, args[:5])
	assert.True(t, strings.HasSuffix(args[5], ".json"), "policy must be passed as a JSON file, got %q", args[5])
}

func TestAttachPolicy(t *testing.T) {
	r := &fakeRunner{stdout: "Attached Policies: [testbucket-admin-policy]"}
	c := newTestClient(r)

	require.NoError(t, c.AttachPolicy(context.Background(), "testbucket", "testbucket-admin-policy"))
	assert.Equal(t,
		[]string{"admin", "policy", "attach", "minio", "testbucket-admin-policy", "--user", "testbucket"},
		r.calls[0].args)
}

func TestCreateServiceAccount(t *testing.T) {
	t.Run("parses issued keys from output", func(t *testing.T) {
		r := &fakeRunner{stdout: strings.Join([]string{
			"Access Key: ISSUEDACCESSKEY12345",
			"Secret Key: issuedsecretkeyissuedsecretkeyissuedsec1",
			"Expiration: NONE",
		}, "\n")}
		c := newTestClient(r)

		ak, sk, err := c.CreateServiceAccount(context.Background(), "testbucket", "REQUESTEDACCESSKEY12", "requestedsecret")
		require.NoError(t, err)
		assert.Equal(t, "ISSUEDACCESSKEY12345", ak)
		assert.Equal(t, "issuedsecretkeyissuedsecretkeyissuedsec1", sk)

		args := r.calls[0].args
		assert.Equal(t, []string{
			"admin", "user", "svcacct", "add",
			"--access-key", "REQUESTEDACCESSKEY12",
			"--secret-key", "requestedsecret",
			"minio", "testbucket",
		}, args)
	})

	t.Run("falls back to requested keys on terse output", func(t *testing.T) {
		r := &fakeRunner{stdout: "Service account added successfully.\n"}
		c := newTestClient(r)

		ak, sk, err := c.CreateServiceAccount(context.Background(), "testbucket", "REQUESTEDACCESSKEY12", "requestedsecret")
		require.NoError(t, err)
		assert.Equal(t, "REQUESTEDACCESSKEY12", ak)
		assert.Equal(t, "requestedsecret", sk)
	})

	t.Run("empty requested keys are rejected before any call", func(t *testing.T) {
		r := &fakeRunner{}
		c := newTestClient(r)

		_, _, err := c.CreateServiceAccount(context.Background(), "testbucket", "", "")
		require.Error(t, err)
		var opErr *OpError
		require.ErrorAs(t, err, &opErr)
		assert.Empty(t, r.calls, "an invalid key pair must never reach the store")
	})

	t.Run("store failure is typed", func(t *testing.T) {
		r := &fakeRunner{
			stderr: "mc: <ERROR> Unable to add a new service account.",
			err:    errors.New("exit status 1"),
		}
		c := newTestClient(r)

		_, _, err := c.CreateServiceAccount(context.Background(), "testbucket", "AK", "SK")
		require.Error(t, err)
		var opErr *OpError
		require.ErrorAs(t, err, &opErr)
		assert.Equal(t, "admin user svcacct add", opErr.Op)
	})
}

func TestParseServiceAccountOutput(t *testing.T) {
	tests := []struct {
		name       string
		out        string
		wantAccess string
		wantSecret string
	}{
		{
			name:       "both keys",
			out:        "Access Key: AK123\nSecret Key: SK456\n",
			wantAccess: "AK123",
			wantSecret: "SK456",
		},
		{
			name:       "padded whitespace",
			out:        "  Access Key:   AK123  \n  Secret Key:\tSK456\n",
			wantAccess: "AK123",
			wantSecret: "SK456",
		},
		{
			name: "no keys",
			out:  "Service account added successfully.",
		},
		{
			name:       "only access key",
			out:        "Access Key: AK123",
			wantAccess: "AK123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ak, sk := parseServiceAccountOutput(tt.out)
			assert.Equal(t, tt.wantAccess, ak)
			assert.Equal(t, tt.wantSecret, sk)
		})
	}
}

// TestInvoke_SecretsNeverLogged runs the password-carrying operations with a
// capturing logger and asserts the secret values stay out of the log stream.
func TestInvoke_SecretsNeverLogged(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)

	r := &fakeRunner{stdout: "ok"}
	c := NewClient(Options{Path: "mc", Alias: "minio", Logger: logger})
	c.run = r.run

	const password = "super-secret-password-42"
	const secretKey = "secretkeysecretkeysecretkeysecretkey1234"

	require.NoError(t, c.CreateUser(context.Background(), "testbucket", password))
	_, _, err := c.CreateServiceAccount(context.Background(), "testbucket", "ACCESSKEYACCESSKEY12", secretKey)
	require.NoError(t, err)

	require.NotEmpty(t, logs.All())
	for _, entry := range logs.All() {
		line := entry.Message + " " + fmt.Sprintf("%v", entry.ContextMap())
		assert.NotContains(t, line, password)
		assert.NotContains(t, line, secretKey)
	}
}

func TestInvoke_Timeout(t *testing.T) {
	c := NewClient(Options{Path: "mc", Alias: "minio", StepTimeout: time.Millisecond})
	c.run = func(ctx context.Context, _ string, _ ...string) (string, string, error) {
		<-ctx.Done()
		return "", "", ctx.Err()
	}

	err := c.CreateBucket(context.Background(), "testbucket")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
