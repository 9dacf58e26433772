package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Environment variables overriding file values.
const (
	EnvEndpoint = "S3CURE_ENDPOINT"
	EnvAlias    = "S3CURE_ALIAS"
	EnvMCPath   = "S3CURE_MC_PATH"

	// Operator credentials for direct S3 API access (check, verify).
	// These are read at call sites that need them, never stored in Config.
	EnvAccessKey = "S3CURE_ACCESS_KEY"
	EnvSecretKey = "S3CURE_SECRET_KEY"
)

// Load reads the configuration from a YAML file, applies defaults and
// environment overrides, and validates the result.
//
// An empty path auto-detects s3cure.yaml in the working directory. A missing
// file is not an error — the tool runs on defaults with zero configuration.
func Load(path string) (*Config, error) {
	// Best effort: a .env file in the working directory feeds the S3CURE_*
	// variables below. Absence is fine.
	_ = godotenv.Load()

	explicit := path != ""
	if path == "" {
		path = DefaultFileName
	}

	cfg := Default()

	// #nosec G304
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decodeInto(cfg, data); err != nil {
			return nil, err
		}
	case os.IsNotExist(err) && !explicit:
		// No config file, defaults apply.
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// decodeInto merges YAML data over the already-defaulted config.
func decodeInto(cfg *Config, data []byte) error {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.StringToTimeDurationHookFunc(),
		Result:     cfg,
	})
	if err != nil {
		return fmt.Errorf("failed to build config decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}
	return nil
}

// applyEnvOverrides lets S3CURE_* variables take precedence over file values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvEndpoint); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv(EnvAlias); v != "" {
		cfg.Alias = v
	}
	if v := os.Getenv(EnvMCPath); v != "" {
		cfg.MCPath = v
	}
}

// OperatorCredentials returns the access/secret key pair used for direct S3
// API access, sourced from the environment. Both values must be set.
func OperatorCredentials() (accessKey, secretKey string, err error) {
	accessKey = os.Getenv(EnvAccessKey)
	secretKey = os.Getenv(EnvSecretKey)
	if accessKey == "" || secretKey == "" {
		return "", "", fmt.Errorf("%s and %s must be set for direct store access", EnvAccessKey, EnvSecretKey)
	}
	return accessKey, secretKey, nil
}
