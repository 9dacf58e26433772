// Package prerequisites verifies the external tools provisioning depends on
// before any remote call is attempted.
package prerequisites

import (
	"fmt"
	"os/exec"
	"strings"
)

// Tool describes an external binary the CLI needs.
type Tool struct {
	// Name is the binary name or path to resolve.
	Name string

	// Required indicates if this tool is mandatory.
	Required bool

	// Description explains what the tool is used for.
	Description string

	// InstallURL provides a URL for installation instructions.
	InstallURL string
}

// ManagementClient returns the tool descriptor for the MinIO client binary,
// resolved from the configured path.
func ManagementClient(mcPath string) Tool {
	return Tool{
		Name:        mcPath,
		Required:    true,
		Description: "Required for bucket, user, policy and service-account operations",
		InstallURL:  "https://min.io/docs/minio/linux/reference/minio-mc.html",
	}
}

// CheckResult contains the result of checking a single tool.
type CheckResult struct {
	Tool    Tool
	Found   bool
	Path    string
	Version string
}

// CheckResults contains the results of checking multiple tools.
type CheckResults struct {
	Results []CheckResult
	Missing []Tool
}

// HasErrors returns true if any required tools are missing.
func (r *CheckResults) HasErrors() bool {
	for _, tool := range r.Missing {
		if tool.Required {
			return true
		}
	}
	return false
}

// Error returns an error if any required tools are missing.
func (r *CheckResults) Error() error {
	var missing []string
	for _, tool := range r.Missing {
		if tool.Required {
			missing = append(missing, fmt.Sprintf("%s (%s)", tool.Name, tool.InstallURL))
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
}

// Check verifies that the specified tools are resolvable.
func Check(tools []Tool) *CheckResults {
	results := &CheckResults{}

	for _, tool := range tools {
		result := CheckResult{Tool: tool}

		path, err := exec.LookPath(tool.Name)
		if err == nil {
			result.Found = true
			result.Path = path
			result.Version = toolVersion(path)
		} else {
			results.Missing = append(results.Missing, tool)
		}

		results.Results = append(results.Results, result)
	}

	return results
}

// CheckManagementClient checks that the configured mc binary is available.
func CheckManagementClient(mcPath string) *CheckResults {
	return Check([]Tool{ManagementClient(mcPath)})
}

// toolVersion attempts to read the tool's version, best effort.
func toolVersion(path string) string {
	// #nosec G204 - path was resolved via exec.LookPath above
	output, err := exec.Command(path, "--version").Output()
	if err != nil {
		return ""
	}
	lines := strings.Split(string(output), "\n")
	return strings.TrimSpace(lines[0])
}
