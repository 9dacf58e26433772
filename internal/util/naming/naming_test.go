package naming

import "testing"

func TestNamingFunctions(t *testing.T) {
	bucket := "testbucket"

	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{
			name:     "AdminUser",
			got:      AdminUser(bucket),
			expected: "testbucket",
		},
		{
			name:     "Policy",
			got:      Policy(bucket),
			expected: "testbucket-admin-policy",
		},
		{
			name:     "VerifyObjectKey",
			got:      VerifyObjectKey(bucket),
			expected: ".s3cure-verify-testbucket",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, tt.got)
			}
		})
	}
}
