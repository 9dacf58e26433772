package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "https://s3.netspeedy.io", cfg.Endpoint)
	assert.Equal(t, "minio", cfg.Alias)
	assert.Equal(t, "mc", cfg.MCPath)
	assert.Equal(t, 24, cfg.Credentials.AdminPasswordLength)
	assert.Equal(t, 20, cfg.Credentials.AccessKeyLength)
	assert.Equal(t, 40, cfg.Credentials.SecretKeyLength)
	assert.Equal(t, 30*time.Second, cfg.Timeouts.Step)

	require.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid default",
			mutate: func(*Config) {},
		},
		{
			name:    "missing endpoint",
			mutate:  func(c *Config) { c.Endpoint = "" },
			wantErr: "endpoint is required",
		},
		{
			name:    "endpoint without scheme",
			mutate:  func(c *Config) { c.Endpoint = "s3.example.com" },
			wantErr: "scheme must be http or https",
		},
		{
			name:    "endpoint with bad scheme",
			mutate:  func(c *Config) { c.Endpoint = "ftp://s3.example.com" },
			wantErr: "scheme must be http or https",
		},
		{
			name:    "missing alias",
			mutate:  func(c *Config) { c.Alias = "" },
			wantErr: "alias is required",
		},
		{
			name:    "missing mc path",
			mutate:  func(c *Config) { c.MCPath = "" },
			wantErr: "mc_path is required",
		},
		{
			name:    "admin password too short",
			mutate:  func(c *Config) { c.Credentials.AdminPasswordLength = 8 },
			wantErr: "credential configuration invalid",
		},
		{
			name:    "secret key too short",
			mutate:  func(c *Config) { c.Credentials.SecretKeyLength = 16 },
			wantErr: "credential configuration invalid",
		},
		{
			name:    "zero step timeout",
			mutate:  func(c *Config) { c.Timeouts.Step = 0 },
			wantErr: "timeouts.step must be positive",
		},
		{
			name:    "negative verify timeout",
			mutate:  func(c *Config) { c.Timeouts.Verify = -time.Second },
			wantErr: "timeouts.verify must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
