package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/netspeedy/s3cure/internal/config"
	"github.com/netspeedy/s3cure/internal/config/wizard"
)

// Factory function variables for init - can be replaced in tests.
var (
	// fileExists checks if a file exists.
	fileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}

	// runWizard runs the interactive questionnaire.
	runWizard = wizard.Run

	// writeConfig writes the config to a file.
	writeConfig = wizard.WriteConfig
)

// Init runs the configuration wizard and writes the result to a file.
func Init(ctx context.Context, outputPath string) error {
	if fileExists(outputPath) {
		fmt.Printf("Warning: %s already exists and will be overwritten.\n\n", outputPath)
	}

	printWelcome()

	result, err := runWizard(ctx)
	if err != nil {
		return fmt.Errorf("wizard canceled: %w", err)
	}

	cfg, err := result.ToConfig()
	if err != nil {
		return fmt.Errorf("invalid answers: %w", err)
	}

	if err := writeConfig(cfg, outputPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(outputPath, cfg)

	return nil
}

// printWelcome prints the welcome message.
func printWelcome() {
	fmt.Println()
	fmt.Println("s3cure - bucket provisioning for S3-compatible stores")
	fmt.Println("======================================================")
	fmt.Println()
	fmt.Println("This wizard creates a configuration file with sensible defaults.")
	fmt.Println("The file describes the target store only; it never holds secrets.")
	fmt.Println()
}

// printInitSuccess prints the success message with summary and next steps.
func printInitSuccess(outputPath string, cfg *config.Config) {
	fmt.Println()
	fmt.Println("Configuration saved!")
	fmt.Println()
	fmt.Printf("  File: %s\n", outputPath)
	fmt.Println()

	fmt.Println("Store Summary")
	fmt.Println("-------------")
	fmt.Printf("  Endpoint:        %s\n", cfg.Endpoint)
	fmt.Printf("  Client Alias:    %s\n", cfg.Alias)
	fmt.Printf("  Client Binary:   %s\n", cfg.MCPath)
	fmt.Printf("  Password Length: %d\n", cfg.Credentials.AdminPasswordLength)
	fmt.Printf("  Secret Charset:  %s\n", cfg.Credentials.CharsetProfile)
	fmt.Println()

	fmt.Println("Next Steps")
	fmt.Println("----------")
	fmt.Printf("  1. Register the alias with mc if you have not already:\n")
	fmt.Printf("     mc alias set %s %s <access-key> <secret-key>\n", cfg.Alias, cfg.Endpoint)
	fmt.Println()
	fmt.Println("  2. Provision your first bucket:")
	fmt.Println("     s3cure create <bucket>")
	fmt.Println()
}
