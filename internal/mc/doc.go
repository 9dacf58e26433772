// Package mc adapts the MinIO Client (mc) command-line tool into the typed
// StoreClient capability the orchestrator consumes.
//
// The adapter is stateless: every call shells out to mc and translates its
// exit status and output into a typed result. Existence is always re-queried
// from the store. Subprocess execution sits behind a runner function so
// tests exercise the full command construction and output parsing without
// ever spawning a process.
package mc
