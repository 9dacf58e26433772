package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/netspeedy/s3cure/internal/credentials"
)

// Defaults applied when a field is absent from the config file and the
// environment.
const (
	DefaultEndpoint = "https://s3.netspeedy.io"
	DefaultAlias    = "minio"
	DefaultMCPath   = "mc"

	DefaultStepTimeout   = 30 * time.Second
	DefaultVerifyTimeout = 15 * time.Second

	// DefaultFileName is the config file auto-detected in the working
	// directory when no --config flag is given.
	DefaultFileName = "s3cure.yaml"
)

// Config holds the complete tool configuration.
type Config struct {
	// Endpoint is the public URL of the S3-compatible store, reported back
	// to the caller alongside issued credentials.
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`

	// Alias is the management-client alias naming the target store. It must
	// already be registered with the external client.
	Alias string `yaml:"alias" mapstructure:"alias"`

	// MCPath is the external management-client binary.
	MCPath string `yaml:"mc_path" mapstructure:"mc_path"`

	Credentials CredentialConfig `yaml:"credentials" mapstructure:"credentials"`
	Timeouts    TimeoutConfig    `yaml:"timeouts" mapstructure:"timeouts"`
}

// CredentialConfig configures generated credential lengths and charsets.
type CredentialConfig struct {
	AdminPasswordLength int    `yaml:"admin_password_length" mapstructure:"admin_password_length"`
	AccessKeyLength     int    `yaml:"access_key_length" mapstructure:"access_key_length"`
	SecretKeyLength     int    `yaml:"secret_key_length" mapstructure:"secret_key_length"`
	CharsetProfile      string `yaml:"charset_profile" mapstructure:"charset_profile"`
}

// TimeoutConfig bounds calls to the external store. A hung management-client
// call would otherwise block the whole provisioning sequence.
type TimeoutConfig struct {
	// Step bounds each individual management-client invocation.
	Step time.Duration `yaml:"step" mapstructure:"step"`
	// Verify bounds the optional post-provision read/write round-trip.
	Verify time.Duration `yaml:"verify" mapstructure:"verify"`
}

// MarshalYAML renders durations in their human form ("30s") instead of raw
// nanoseconds, so generated config files stay editable.
func (t TimeoutConfig) MarshalYAML() (interface{}, error) {
	return map[string]string{
		"step":   t.Step.String(),
		"verify": t.Verify.String(),
	}, nil
}

// Default returns a configuration with all defaults applied.
func Default() *Config {
	profile := credentials.DefaultProfile()
	return &Config{
		Endpoint: DefaultEndpoint,
		Alias:    DefaultAlias,
		MCPath:   DefaultMCPath,
		Credentials: CredentialConfig{
			AdminPasswordLength: profile.AdminPasswordLength,
			AccessKeyLength:     profile.AccessKeyLength,
			SecretKeyLength:     profile.SecretKeyLength,
			CharsetProfile:      profile.CharsetProfile,
		},
		Timeouts: TimeoutConfig{
			Step:   DefaultStepTimeout,
			Verify: DefaultVerifyTimeout,
		},
	}
}

// Profile converts the credential configuration into a generator profile.
func (c *Config) Profile() credentials.Profile {
	return credentials.Profile{
		AdminPasswordLength: c.Credentials.AdminPasswordLength,
		AccessKeyLength:     c.Credentials.AccessKeyLength,
		SecretKeyLength:     c.Credentials.SecretKeyLength,
		CharsetProfile:      c.Credentials.CharsetProfile,
	}
}

// Validate checks the configuration for common errors and returns a detailed
// error if validation fails.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("endpoint is required")
	}
	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint %q: %w", c.Endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid endpoint %q: scheme must be http or https", c.Endpoint)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid endpoint %q: missing host", c.Endpoint)
	}

	if c.Alias == "" {
		return fmt.Errorf("alias is required")
	}
	if c.MCPath == "" {
		return fmt.Errorf("mc_path is required")
	}

	// Credential lengths are validated fully by the generator; reject the
	// obviously broken values here so bad config fails before any remote call.
	if _, err := credentials.NewGenerator(c.Profile()); err != nil {
		return fmt.Errorf("credential configuration invalid: %w", err)
	}

	if c.Timeouts.Step <= 0 {
		return fmt.Errorf("timeouts.step must be positive, got %v", c.Timeouts.Step)
	}
	if c.Timeouts.Verify <= 0 {
		return fmt.Errorf("timeouts.verify must be positive, got %v", c.Timeouts.Verify)
	}

	return nil
}
