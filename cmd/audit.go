package cmd

import (
	"github.com/spf13/cobra"
)

var (
	auditKeywords []string
	auditJSON     bool
)

var auditCmd = &cobra.Command{
	Use:   "audit <url>",
	Short: "Fetch a page and run a full SEO audit",
	Long: `Fetch a page, collect PageSpeed scores and technical facts, and print the audit
with issues, recommendations and a SWOT analysis. Keywords enable content scoring.`,
	Args: cobra.ExactArgs(1),
	RunE: runAudit,
}

func init() {
	auditCmd.Flags().StringSliceVarP(&auditKeywords, "keyword", "k", nil, "target keyword (repeatable, first is primary)")
	auditCmd.Flags().BoolVar(&auditJSON, "json", false, "print the result as JSON")
	rootCmd.AddCommand(auditCmd)
}

func runAudit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	report, err := a.service.AuditURL(ctx, args[0], cleanKeywords(auditKeywords))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if auditJSON {
		return writeJSON(out, report)
	}
	renderReport(out, report)
	return nil
}
