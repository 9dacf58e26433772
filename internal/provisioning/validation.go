package provisioning

import (
	"fmt"
	"regexp"
)

// bucketNameRegex enforces DNS-label-safe bucket names: 3-63 characters,
// lowercase alphanumeric plus hyphen, starting and ending alphanumeric.
var bucketNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{1,61}[a-z0-9]$`)

// ValidateBucketName rejects names the store would refuse, before any side
// effect occurs. The returned error wraps ErrInvalidBucketName.
func ValidateBucketName(name string) error {
	switch {
	case len(name) < 3:
		return fmt.Errorf("%w: %q is shorter than 3 characters", ErrInvalidBucketName, name)
	case len(name) > 63:
		return fmt.Errorf("%w: %q is longer than 63 characters", ErrInvalidBucketName, name)
	case !bucketNameRegex.MatchString(name):
		return fmt.Errorf("%w: %q must be lowercase alphanumeric and hyphens, starting and ending alphanumeric", ErrInvalidBucketName, name)
	}
	return nil
}
