package provisioning

import (
	"errors"
	"fmt"
)

// Stage identifies a step of the provisioning sequence. Failure reports name
// the stage so callers know exactly how far the run got.
type Stage string

const (
	StageValidate       Stage = "validate"
	StageCheckExistence Stage = "check-existence"
	StageCreateBucket   Stage = "create-bucket"
	StageCreateAdmin    Stage = "create-admin"
	StagePolicy         Stage = "policy"
	StageServiceAccount Stage = "service-account"
	StageVerify         Stage = "verify"
)

// Status is the terminal state of a provisioning run.
type Status string

const (
	StatusCreated       Status = "created"
	StatusAlreadyExists Status = "already-exists"
	StatusFailed        Status = "failed"
)

// ErrBucketExists signals that the bucket is already present on the store.
// It is an expected idempotency outcome, not an error: re-invoking
// provisioning for an existing bucket must never create, mutate or re-issue
// anything.
var ErrBucketExists = errors.New("bucket already exists")

// ErrInvalidBucketName rejects a request before any remote call is made.
var ErrInvalidBucketName = errors.New("invalid bucket name")

// CreationError reports that the store rejected an operation. The stage names
// how far the run got; the cause stays reachable through errors.Is/As.
type CreationError struct {
	Stage Stage
	Cause error
}

func (e *CreationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Cause)
}

func (e *CreationError) Unwrap() error { return e.Cause }

// ResourceSet lists the resources created during a run. On a Created outcome
// every field is populated; on a Failed outcome only the fields for steps
// that completed are set, so the caller can clean up manually.
type ResourceSet struct {
	Bucket                  string `json:"bucket,omitempty"`
	AdminUser               string `json:"admin_user,omitempty"`
	AdminPassword           string `json:"admin_password,omitempty"`
	PolicyName              string `json:"policy_name,omitempty"`
	ServiceAccountAccessKey string `json:"service_account_access_key,omitempty"`
	ServiceAccountSecretKey string `json:"service_account_secret_key,omitempty"`
	Endpoint                string `json:"endpoint,omitempty"`
}

// Complete reports whether every created resource is populated. The endpoint
// is request metadata echoed back for the caller, not a created resource, so
// it does not participate: a run without a configured endpoint can still be
// complete.
func (r ResourceSet) Complete() bool {
	return r.Bucket != "" &&
		r.AdminUser != "" &&
		r.AdminPassword != "" &&
		r.PolicyName != "" &&
		r.ServiceAccountAccessKey != "" &&
		r.ServiceAccountSecretKey != ""
}

// Outcome is the immutable result of one provisioning run.
type Outcome struct {
	Status    Status      `json:"status"`
	Bucket    string      `json:"bucket"`
	Stage     Stage       `json:"stage,omitempty"`
	Err       error       `json:"-"`
	Error     string      `json:"error,omitempty"`
	Resources ResourceSet `json:"resources"`
}

func created(resources ResourceSet) Outcome {
	return Outcome{
		Status:    StatusCreated,
		Bucket:    resources.Bucket,
		Resources: resources,
	}
}

func alreadyExists(bucket string) Outcome {
	return Outcome{
		Status: StatusAlreadyExists,
		Bucket: bucket,
	}
}

func failed(bucket string, stage Stage, err error, partial ResourceSet) Outcome {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return Outcome{
		Status:    StatusFailed,
		Bucket:    bucket,
		Stage:     stage,
		Err:       err,
		Error:     msg,
		Resources: partial,
	}
}
