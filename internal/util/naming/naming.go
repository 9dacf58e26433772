package naming

import "fmt"

// Naming functions for provisioned store resources.
// All resources tied to a bucket follow consistent naming patterns so that
// an operator can identify and clean them up by bucket name alone.

// AdminUser returns the name of the bucket's dedicated admin identity.
// The admin user is intentionally named after the bucket itself.
func AdminUser(bucket string) string {
	return bucket
}

// Policy returns the name of the bucket's least-privilege access policy.
func Policy(bucket string) string {
	return fmt.Sprintf("%s-admin-policy", bucket)
}

// VerifyObjectKey returns the key of the throwaway object written during
// post-provision verification.
func VerifyObjectKey(bucket string) string {
	return fmt.Sprintf(".s3cure-verify-%s", bucket)
}
