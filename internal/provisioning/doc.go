// Package provisioning implements the orchestrator that turns a bucket name
// into a fully provisioned storage namespace: the bucket itself, a dedicated
// admin identity, a least-privilege access policy and a scoped service
// account.
//
// The orchestrator is a strictly ordered state machine. An existing bucket
// short-circuits the whole run before any resource is created; a failing
// step stops the machine and reports exactly which resources were created,
// so an operator can clean up or retry the missing tail. Nothing is ever
// deleted automatically — a user-named bucket may predate this tool, and
// destroying it on rollback could take pre-existing data with it.
//
// All store access goes through the StoreClient interface, so tests run
// against an in-memory fake without touching a real store or spawning the
// external management client.
package provisioning
