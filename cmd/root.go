package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "seo-boostpro",
	Short: "Score web content and pages for search engine optimisation",
	Long: `SEO BoostPro scores plain text for keyword usage and readability, audits pages
for technical SEO problems, and produces recommendations and SWOT analyses.

Run "seo-boostpro serve" for the HTTP API, or use "analyze" and "audit" from the terminal.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.Version = "1.0.0"
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
