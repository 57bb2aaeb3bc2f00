package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/seo-boostpro/backend/analyzer"
)

var (
	analyzeKeywords []string
	analyzeJSON     bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Score a text file for keyword usage and readability",
	Long: `Score a plain text file against one or more target keywords.
The first keyword is treated as the primary keyword. Use "-" to read from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringSliceVarP(&analyzeKeywords, "keyword", "k", nil, "target keyword (repeatable, first is primary)")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the result as JSON")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	keywords := cleanKeywords(analyzeKeywords)
	if len(keywords) == 0 {
		return errors.New("at least one --keyword is required")
	}

	content, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("%s is empty", args[0])
	}

	result := analyzer.AnalyzeContent(content, keywords)

	out := cmd.OutOrStdout()
	if analyzeJSON {
		return writeJSON(out, result)
	}
	renderContentAnalysis(out, result)
	return nil
}

func readInput(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// cleanKeywords trims keywords and drops blanks
func cleanKeywords(raw []string) []string {
	keywords := make([]string, 0, len(raw))
	for _, k := range raw {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords
}
