package provisioning

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/netspeedy/s3cure/internal/credentials"
	"github.com/netspeedy/s3cure/internal/policy"
	"github.com/netspeedy/s3cure/internal/util/naming"
	"github.com/netspeedy/s3cure/internal/util/retry"
)

// Request describes one provisioning run. It is validated before any side
// effect occurs and never mutated afterwards.
type Request struct {
	Bucket   string
	Endpoint string
}

// Orchestrator sequences the resource-creation steps for one bucket. A single
// Orchestrator runs one request at a time to completion; concurrent runs for
// different buckets must use separate instances (they share no mutable
// state).
type Orchestrator struct {
	store    StoreClient
	gen      *credentials.Generator
	verifier Verifier
	observer Observer
	retries  []retry.Option
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithObserver sets the event observer. Defaults to NopObserver.
func WithObserver(obs Observer) Option {
	return func(o *Orchestrator) { o.observer = obs }
}

// WithVerifier enables the post-provision credential round-trip stage.
func WithVerifier(v Verifier) Option {
	return func(o *Orchestrator) { o.verifier = v }
}

// WithRetry overrides the backoff applied to transient store failures.
func WithRetry(opts ...retry.Option) Option {
	return func(o *Orchestrator) { o.retries = opts }
}

// NewOrchestrator creates an Orchestrator around a store client and a
// credential generator.
func NewOrchestrator(store StoreClient, gen *credentials.Generator, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		store:    store,
		gen:      gen,
		observer: NopObserver{},
		retries: []retry.Option{
			retry.WithMaxRetries(2),
			retry.WithInitialDelay(500 * time.Millisecond),
		},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Provision runs the full sequence for req and returns the terminal outcome.
//
// The machine is strictly ordered: an existing bucket terminates the run
// before anything is created, and a failing step stops the machine — later
// steps are never attempted. Failed outcomes carry the resources created so
// far; nothing is rolled back automatically.
func (o *Orchestrator) Provision(ctx context.Context, req Request) Outcome {
	if err := ValidateBucketName(req.Bucket); err != nil {
		return failed(req.Bucket, StageValidate, err, ResourceSet{})
	}

	var resources ResourceSet
	resources.Endpoint = req.Endpoint

	// Idempotency guard: an existing bucket means a safe no-op, with zero
	// side effects on the store.
	exists, err := o.store.BucketExists(ctx, req.Bucket)
	if err != nil {
		return failed(req.Bucket, StageCheckExistence, err, ResourceSet{})
	}
	if exists {
		o.event(EventResourceExists, StageCheckExistence, req.Bucket, "")
		return alreadyExists(req.Bucket)
	}

	if err := o.step(ctx, StageCreateBucket, req.Bucket, "bucket", func() error {
		return o.store.CreateBucket(ctx, req.Bucket)
	}); err != nil {
		// The losing side of a same-name creation race sees the store's
		// uniqueness constraint here. That is an already-exists outcome,
		// not a failure.
		if errors.Is(err, ErrBucketExists) {
			o.event(EventResourceExists, StageCreateBucket, req.Bucket, "lost creation race")
			return alreadyExists(req.Bucket)
		}
		return failed(req.Bucket, StageCreateBucket, err, resources)
	}
	resources.Bucket = req.Bucket

	// The admin password is generated immediately before the step that uses
	// it, keeping the window between generation and use minimal.
	adminUser := naming.AdminUser(req.Bucket)
	adminPassword, err := o.gen.AdminPassword()
	if err != nil {
		return failed(req.Bucket, StageCreateAdmin, err, resources)
	}

	if err := o.step(ctx, StageCreateAdmin, adminUser, "admin user", func() error {
		return o.store.CreateUser(ctx, adminUser, adminPassword.Value)
	}); err != nil {
		return failed(req.Bucket, StageCreateAdmin, err, resources)
	}
	resources.AdminUser = adminUser
	resources.AdminPassword = adminPassword.Value

	policyName := naming.Policy(req.Bucket)
	doc := policy.BuildBucketPolicy(req.Bucket)

	if err := o.step(ctx, StagePolicy, policyName, "policy", func() error {
		return o.store.CreatePolicy(ctx, policyName, doc)
	}); err != nil {
		return failed(req.Bucket, StagePolicy, err, resources)
	}
	if err := o.step(ctx, StagePolicy, policyName, "policy attachment", func() error {
		return o.store.AttachPolicy(ctx, adminUser, policyName)
	}); err != nil {
		return failed(req.Bucket, StagePolicy, err, resources)
	}
	resources.PolicyName = policyName

	accessKey, err := o.gen.AccessKey()
	if err != nil {
		return failed(req.Bucket, StageServiceAccount, err, resources)
	}
	secretKey, err := o.gen.SecretKey()
	if err != nil {
		return failed(req.Bucket, StageServiceAccount, err, resources)
	}

	var issuedAccess, issuedSecret string
	if err := o.step(ctx, StageServiceAccount, adminUser, "service account", func() error {
		var err error
		issuedAccess, issuedSecret, err = o.store.CreateServiceAccount(ctx, adminUser, accessKey.Value, secretKey.Value)
		return err
	}); err != nil {
		return failed(req.Bucket, StageServiceAccount, err, resources)
	}
	resources.ServiceAccountAccessKey = issuedAccess
	resources.ServiceAccountSecretKey = issuedSecret

	if !resources.Complete() {
		// Guard against a store client returning success with empty keys; a
		// partial credential set must never be reported as created.
		return failed(req.Bucket, StageServiceAccount,
			fmt.Errorf("store returned an incomplete service-account key pair"), resources)
	}

	if o.verifier != nil {
		o.event(EventResourceCreating, StageVerify, req.Bucket, "verifying issued credentials")
		if err := o.verifier.VerifyReadWrite(ctx, req.Bucket, issuedAccess, issuedSecret); err != nil {
			return failed(req.Bucket, StageVerify, err, resources)
		}
		o.event(EventResourceCreated, StageVerify, req.Bucket, "credentials verified")
	}

	o.event(EventRunCompleted, "", req.Bucket, "")
	return created(resources)
}

// step runs one creation call under bounded retry, emitting observer events.
// Already-exists conflicts and entropy failures are fatal: retrying either
// would mask a conflict or hammer a broken environment.
func (o *Orchestrator) step(ctx context.Context, stage Stage, resource, kind string, op func() error) error {
	o.event(EventResourceCreating, stage, resource, fmt.Sprintf("creating %s", kind))

	err := retry.Do(ctx, func() error {
		err := op()
		if errors.Is(err, ErrBucketExists) || errors.Is(err, credentials.ErrEntropyUnavailable) {
			return retry.Fatal(err)
		}
		return err
	}, o.retries...)

	if err != nil {
		o.event(EventResourceFailed, stage, resource, err.Error())
		return &CreationError{Stage: stage, Cause: err}
	}

	o.event(EventResourceCreated, stage, resource, "")
	return nil
}

func (o *Orchestrator) event(t EventType, stage Stage, resource, msg string) {
	o.observer.Event(Event{
		Type:      t,
		Stage:     stage,
		Resource:  resource,
		Message:   msg,
		Timestamp: time.Now(),
	})
}
