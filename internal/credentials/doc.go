// Package credentials generates the secrets issued during provisioning.
//
// All values come from a cryptographically secure randomness source
// (crypto/rand, directly or through sethvargo/go-password). Each call is
// independent; nothing derived from time, PIDs, or earlier outputs ever
// enters a generated value.
package credentials
