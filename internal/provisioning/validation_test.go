package provisioning

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateBucketName(t *testing.T) {
	tests := []struct {
		name    string
		bucket  string
		wantErr bool
	}{
		{"minimum length", "abc", false},
		{"with hyphens", "my-tenant-bucket", false},
		{"digits only", "12345", false},
		{"maximum length", strings.Repeat("a", 63), false},
		{"empty", "", true},
		{"too short", "ab", true},
		{"too long", strings.Repeat("a", 64), true},
		{"uppercase", "MyBucket", true},
		{"underscore", "my_bucket", true},
		{"dot", "my.bucket", true},
		{"leading hyphen", "-bucket", true},
		{"trailing hyphen", "bucket-", true},
		{"space", "my bucket", true},
		{"slash", "my/bucket", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBucketName(tt.bucket)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidBucketName)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
