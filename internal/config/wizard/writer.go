package wizard

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/netspeedy/s3cure/internal/config"
)

// WriteConfig writes the config to a YAML file with a descriptive header.
// The file is created with owner-only permissions; it points at a credential
// workflow even though it carries no secrets itself.
func WriteConfig(cfg *config.Config, outputPath string) error {
	yamlBytes, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(generateHeader(outputPath))
	sb.WriteString("\n")
	sb.Write(yamlBytes)

	if err := os.WriteFile(outputPath, []byte(sb.String()), 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

func generateHeader(outputPath string) string {
	return fmt.Sprintf(`# %s — s3cure configuration
# Generated by 's3cure init' on %s.
#
# Environment overrides: S3CURE_ENDPOINT, S3CURE_ALIAS, S3CURE_MC_PATH.
# Operator credentials for 'check' and '--verify' come from
# S3CURE_ACCESS_KEY / S3CURE_SECRET_KEY (or a .env file).
`, outputPath, time.Now().Format("2006-01-02"))
}
