// Package naming centralizes the naming conventions for resources created
// alongside a provisioned bucket (admin user, access policy, probe objects).
package naming
