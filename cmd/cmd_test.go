package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seo-boostpro/backend/analyzer"
	"github.com/seo-boostpro/backend/optimizer"
)

const sampleText = "Coffee brewing is an art. Good coffee needs fresh beans. " +
	"Grind the coffee just before brewing. Water temperature matters for coffee."

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	analyzeKeywords, analyzeJSON = nil, false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func writeSample(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "post.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestAnalyzeCommand_JSON(t *testing.T) {
	path := writeSample(t, sampleText)

	out, err := runRoot(t, "analyze", path, "-k", "coffee", "-k", "beans", "--json")
	require.NoError(t, err)

	var result analyzer.ContentAnalysis
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, analyzer.AnalyzeContent(sampleText, []string{"coffee", "beans"}), result)
	require.Len(t, result.KeywordDensity, 2)
	assert.Equal(t, "coffee", result.KeywordDensity[0].Keyword)
}

func TestAnalyzeCommand_Rendered(t *testing.T) {
	path := writeSample(t, sampleText)

	out, err := runRoot(t, "analyze", path, "--keyword", "coffee")
	require.NoError(t, err)
	assert.Contains(t, out, "Content Analysis")
	assert.Contains(t, out, "KEYWORDS")
	assert.Contains(t, out, "coffee")
}

func TestAnalyzeCommand_Errors(t *testing.T) {
	t.Run("missing keyword", func(t *testing.T) {
		path := writeSample(t, sampleText)
		_, err := runRoot(t, "analyze", path)
		assert.ErrorContains(t, err, "--keyword")
	})

	t.Run("blank keyword", func(t *testing.T) {
		path := writeSample(t, sampleText)
		_, err := runRoot(t, "analyze", path, "-k", "  ")
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := runRoot(t, "analyze", filepath.Join(t.TempDir(), "nope.txt"), "-k", "coffee")
		assert.ErrorContains(t, err, "failed to read")
	})

	t.Run("empty file", func(t *testing.T) {
		path := writeSample(t, "   \n")
		_, err := runRoot(t, "analyze", path, "-k", "coffee")
		assert.ErrorContains(t, err, "is empty")
	})
}

func TestAnalyzeCommand_Stdin(t *testing.T) {
	rootCmd.SetIn(strings.NewReader(sampleText))
	t.Cleanup(func() { rootCmd.SetIn(nil) })

	out, err := runRoot(t, "analyze", "-", "-k", "coffee", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"seoScore"`)
}

func TestRenderReport(t *testing.T) {
	report := &optimizer.Report{
		Audit: optimizer.BuildAudit(optimizer.AuditInput{
			URL: "https://example.com",
			PageSpeed: analyzer.PageSpeedData{
				Desktop: analyzer.PageSpeedResult{Score: 92},
				Mobile:  analyzer.PageSpeedResult{Score: 40},
			},
			Content:  sampleText,
			Keywords: []string{"coffee"},
		}),
	}
	report.Swot = analyzer.GenerateSwotWithRules(report.Audit)

	var out bytes.Buffer
	renderReport(&out, report)

	text := out.String()
	assert.Contains(t, text, "https://example.com")
	assert.Contains(t, text, "ISSUES")
	assert.Contains(t, text, "RECOMMENDATIONS")
	assert.Contains(t, text, "Strengths:")
	assert.Contains(t, text, "Threats:")
	assert.Contains(t, text, "(rules)")
	for _, issue := range report.SEOIssues {
		assert.Contains(t, text, issue.Title)
	}
}

func TestScoreStyle(t *testing.T) {
	assert.Equal(t, goodStyle.GetForeground(), scoreStyle(80).GetForeground())
	assert.Equal(t, fairStyle.GetForeground(), scoreStyle(50).GetForeground())
	assert.Equal(t, poorStyle.GetForeground(), scoreStyle(49).GetForeground())
}

func TestCleanKeywords(t *testing.T) {
	assert.Equal(t, []string{"seo", "go lang"}, cleanKeywords([]string{" seo ", "", "  ", "go lang"}))
	assert.Empty(t, cleanKeywords(nil))
}
