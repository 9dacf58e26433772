package wizard

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"

	"github.com/charmbracelet/huh"

	"github.com/netspeedy/s3cure/internal/config"
	"github.com/netspeedy/s3cure/internal/credentials"
)

// aliasRegex validates mc alias names: alphanumeric with hyphens.
var aliasRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]*$`)

// Result holds all the answers from the interactive wizard.
type Result struct {
	Endpoint            string
	Alias               string
	MCPath              string
	AdminPasswordLength string
	CharsetProfile      string
}

// ToConfig converts wizard answers into a validated configuration.
func (r *Result) ToConfig() (*config.Config, error) {
	cfg := config.Default()
	cfg.Endpoint = r.Endpoint
	cfg.Alias = r.Alias
	cfg.MCPath = r.MCPath
	cfg.Credentials.CharsetProfile = r.CharsetProfile

	length, err := strconv.Atoi(r.AdminPasswordLength)
	if err != nil {
		return nil, fmt.Errorf("admin password length: %w", err)
	}
	cfg.Credentials.AdminPasswordLength = length

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Run executes the interactive wizard. The context is used for cancellation
// support (Ctrl+C).
func Run(ctx context.Context) (*Result, error) {
	result := &Result{
		Endpoint:            config.DefaultEndpoint,
		Alias:               config.DefaultAlias,
		MCPath:              config.DefaultMCPath,
		AdminPasswordLength: "24",
		CharsetProfile:      credentials.ProfileStandard,
	}

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("S3 Endpoint").
				Description("Public URL of the S3-compatible store").
				Placeholder(config.DefaultEndpoint).
				Value(&result.Endpoint).
				Validate(validateEndpoint),
			huh.NewInput().
				Title("Client Alias").
				Description("mc alias already registered for this store").
				Placeholder(config.DefaultAlias).
				Value(&result.Alias).
				Validate(validateAlias),
			huh.NewInput().
				Title("Client Binary").
				Description("Path to the mc binary").
				Placeholder(config.DefaultMCPath).
				Value(&result.MCPath).
				Validate(validateMCPath),
		).Title("Target Store"),

		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Admin Password Length").
				Options(
					huh.NewOption("24 characters (default)", "24"),
					huh.NewOption("32 characters", "32"),
					huh.NewOption("48 characters", "48"),
				).
				Value(&result.AdminPasswordLength),
			huh.NewSelect[string]().
				Title("Secret Key Charset").
				Description("Extended adds shell-safe symbols to secret keys").
				Options(
					huh.NewOption("Standard (base62)", credentials.ProfileStandard),
					huh.NewOption("Extended (base62 + symbols)", credentials.ProfileExtended),
				).
				Value(&result.CharsetProfile),
		).Title("Credentials"),
	).RunWithContext(ctx)
	if err != nil {
		return nil, err
	}

	return result, nil
}

func validateEndpoint(s string) error {
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("not a valid URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("must start with http:// or https://")
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}

func validateAlias(s string) error {
	if !aliasRegex.MatchString(s) {
		return fmt.Errorf("alphanumeric and hyphens only")
	}
	return nil
}

func validateMCPath(s string) error {
	if s == "" {
		return fmt.Errorf("required")
	}
	return nil
}
