package handlers

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/netspeedy/s3cure/internal/provisioning"
)

// credentialRow is one line of the styled outcome report.
type credentialRow struct {
	Category string
	Name     string
	Value    string
}

// report renders the terminal outcome of a provisioning run. This is the
// only place credential values are ever written; they go to stdout once and
// are never logged or persisted.
func report(outcome provisioning.Outcome, jsonOutput bool) error {
	if jsonOutput {
		b, err := json.MarshalIndent(outcome, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		fmt.Println(string(b))
		return nil
	}

	switch outcome.Status {
	case provisioning.StatusCreated:
		printCreated(outcome)
	case provisioning.StatusAlreadyExists:
		printAlreadyExists(outcome)
	default:
		printFailed(outcome)
	}
	return nil
}

// reportStyles groups the lipgloss styles used by the console reporter.
// When stdout is not a terminal every style degrades to plain text.
type reportStyles struct {
	title   lipgloss.Style
	section lipgloss.Style
	name    lipgloss.Style
	value   lipgloss.Style
	dim     lipgloss.Style
	bad     lipgloss.Style
}

func newReportStyles() reportStyles {
	if !isInteractiveTTY() {
		plain := lipgloss.NewStyle()
		return reportStyles{title: plain, section: plain, name: plain, value: plain, dim: plain, bad: plain}
	}
	return reportStyles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f9fafb")),
		section: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3b82f6")),
		name:    lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280")),
		value:   lipgloss.NewStyle().Foreground(lipgloss.Color("#22c55e")),
		dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280")),
		bad:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ef4444")),
	}
}

func isInteractiveTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

func printCreated(outcome provisioning.Outcome) {
	styles := newReportStyles()

	fmt.Println()
	fmt.Println(styles.title.Render(fmt.Sprintf("  s3cure: %s provisioned", outcome.Bucket)))
	fmt.Println(styles.dim.Render("  " + strings.Repeat("=", 30)))
	fmt.Println()

	printRows(styles, resourceRows(outcome.Resources))

	fmt.Println()
	fmt.Println(styles.dim.Render("  Credentials are shown once and not stored anywhere. Save them now."))
	fmt.Println()
}

func printAlreadyExists(outcome provisioning.Outcome) {
	styles := newReportStyles()

	fmt.Println()
	fmt.Println(styles.title.Render(fmt.Sprintf("  s3cure: %s", outcome.Bucket)))
	fmt.Println()
	fmt.Println("  Bucket already exists. Nothing was created and no credentials were issued.")
	fmt.Println()
}

func printFailed(outcome provisioning.Outcome) {
	styles := newReportStyles()

	fmt.Println()
	fmt.Println(styles.bad.Render(fmt.Sprintf("  s3cure: provisioning %s failed", outcome.Bucket)))
	fmt.Println(styles.dim.Render("  " + strings.Repeat("=", 30)))
	fmt.Println()
	fmt.Printf("  %s  %s\n", styles.name.Render(fmt.Sprintf("%-18s", "failed stage")), outcome.Stage)
	fmt.Printf("  %s  %s\n", styles.name.Render(fmt.Sprintf("%-18s", "error")), outcome.Error)

	rows := resourceRows(outcome.Resources)
	if len(rows) > 0 {
		fmt.Println()
		fmt.Println(styles.dim.Render("  The resources below were created before the failure and are left in"))
		fmt.Println(styles.dim.Render("  place. Remove them manually if the run should leave no trace."))
		fmt.Println()
		printRows(styles, rows)
	}
	fmt.Println()
}

func printRows(styles reportStyles, rows []credentialRow) {
	currentCategory := ""
	for _, row := range rows {
		if row.Category != currentCategory {
			if currentCategory != "" {
				fmt.Println()
			}
			fmt.Println(styles.section.Render("  " + row.Category))
			fmt.Println(styles.dim.Render("  " + strings.Repeat("-", 35)))
			currentCategory = row.Category
		}
		fmt.Printf("  %s  %s\n", styles.name.Render(fmt.Sprintf("%-18s", row.Name)), styles.value.Render(row.Value))
	}
}

// resourceRows flattens a ResourceSet into display rows, skipping fields the
// run never reached.
func resourceRows(res provisioning.ResourceSet) []credentialRow {
	var rows []credentialRow

	if res.Endpoint != "" {
		rows = append(rows, credentialRow{"Store", "endpoint", res.Endpoint})
	}
	if res.Bucket != "" {
		rows = append(rows, credentialRow{"Store", "bucket", res.Bucket})
	}
	if res.AdminUser != "" {
		rows = append(rows, credentialRow{"Admin Identity", "username", res.AdminUser})
	}
	if res.AdminPassword != "" {
		rows = append(rows, credentialRow{"Admin Identity", "password", res.AdminPassword})
	}
	if res.PolicyName != "" {
		rows = append(rows, credentialRow{"Policy", "name", res.PolicyName})
	}
	if res.ServiceAccountAccessKey != "" {
		rows = append(rows, credentialRow{"Service Account", "access key", res.ServiceAccountAccessKey})
	}
	if res.ServiceAccountSecretKey != "" {
		rows = append(rows, credentialRow{"Service Account", "secret key", res.ServiceAccountSecretKey})
	}

	return rows
}
