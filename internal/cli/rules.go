package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gotexlint/internal/ui/pretty"
	"github.com/yaklabco/gotexlint/pkg/config"
	"github.com/yaklabco/gotexlint/pkg/lint"
)

type rulesFlags struct {
	ruleFormat string
	format     string
}

const formatJSON = "json"

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Message     string   `json:"message"`
	Severity    string   `json:"severity"`
	Gate        bool     `json:"gate"`
	Tags        []string `json:"tags"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available table checks",
		Long: `List the table checks with their IDs, names, default severity and the
message each reports. The gate check runs first; when it fails no other
check runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			checks := lint.DefaultRegistry.Checks()
			out := cmd.OutOrStdout()

			switch flags.format {
			case formatJSON:
				return outputRulesJSON(out, checks)
			case "text", "":
				styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), out))
				return outputRulesText(out, styles, checks, config.RuleFormat(flags.ruleFormat))
			default:
				return fmt.Errorf("%w: unknown format %q; valid: text, json", ErrUsage, flags.format)
			}
		},
	}

	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "combined",
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().StringVar(&flags.format, "format", "text",
		"output format: text, json")

	return cmd
}

func outputRulesText(out io.Writer, styles *pretty.Styles, checks []lint.Check, ruleFormat config.RuleFormat) error {
	if len(checks) == 0 {
		_, err := fmt.Fprintln(out, styles.Dim.Render("no rules registered"))
		return err
	}

	width := 0
	idents := make([]string, len(checks))
	for i, check := range checks {
		idents[i] = config.FormatRuleID(ruleFormat, check.ID(), check.Name())
		width = max(width, len(idents[i]))
	}

	var b strings.Builder
	for i, check := range checks {
		ident := idents[i] + strings.Repeat(" ", width-len(idents[i]))
		b.WriteString(styles.RuleID.Render(ident))
		b.WriteString("  ")
		b.WriteString(styles.FormatSeverity(check.DefaultSeverity()))
		if check.Gate() {
			b.WriteString(styles.Dim.Render(" (gate)"))
		}
		b.WriteString("\n    ")
		b.WriteString(check.Description())
		b.WriteString("\n    ")
		b.WriteString(styles.Dim.Render(check.Message()))
		b.WriteString("\n")
	}

	_, err := io.WriteString(out, b.String())
	return err
}

// outputRulesJSON outputs rules as a JSON array.
func outputRulesJSON(out io.Writer, checks []lint.Check) error {
	infos := make([]ruleInfo, 0, len(checks))
	for _, check := range checks {
		infos = append(infos, ruleInfo{
			ID:          check.ID(),
			Name:        check.Name(),
			Description: check.Description(),
			Message:     check.Message(),
			Severity:    string(check.DefaultSeverity()),
			Gate:        check.Gate(),
			Tags:        check.Tags(),
		})
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}
