package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/seo-boostpro/backend/analyzer"
	"github.com/seo-boostpro/backend/optimizer"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
	goodStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1"))
	fairStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F9E2AF"))
	poorStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F38BA8"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	dividerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func divider() string {
	return dividerStyle.Render(strings.Repeat("━", 60))
}

// scoreStyle colours a 0-100 score
func scoreStyle(score int) lipgloss.Style {
	switch {
	case score >= 80:
		return goodStyle
	case score >= 50:
		return fairStyle
	default:
		return poorStyle
	}
}

func renderScore(label string, score int) string {
	return fmt.Sprintf("%s %s", labelStyle.Render(fmt.Sprintf("%-18s", label+":")), scoreStyle(score).Render(fmt.Sprintf("%d/100", score)))
}

func levelStyle(level analyzer.Level) lipgloss.Style {
	switch level {
	case analyzer.LevelHigh:
		return poorStyle
	case analyzer.LevelMedium:
		return fairStyle
	default:
		return labelStyle
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderContentAnalysis(w io.Writer, a analyzer.ContentAnalysis) {
	fmt.Fprintln(w, divider())
	fmt.Fprintln(w, titleStyle.Render("Content Analysis"))
	fmt.Fprintln(w, divider())

	fmt.Fprintln(w, renderScore("SEO score", a.SEOScore))
	fmt.Fprintln(w, renderScore("Readability", a.ReadabilityScore))
	fmt.Fprintf(w, "%s %d\n", labelStyle.Render(fmt.Sprintf("%-18s", "Words:")), a.WordCount)
	fmt.Fprintf(w, "%s %d\n", labelStyle.Render(fmt.Sprintf("%-18s", "Sentences:")), a.SentenceCount)
	fmt.Fprintf(w, "%s %.2f\n", labelStyle.Render(fmt.Sprintf("%-18s", "Words/sentence:")), a.AvgWordsPerSentence)

	if len(a.KeywordDensity) > 0 {
		fmt.Fprintf(w, "\n%s\n", sectionStyle.Render("KEYWORDS"))
		for i, k := range a.KeywordDensity {
			marker := " "
			if i == 0 {
				marker = "*"
			}
			fmt.Fprintf(w, "  %s %-30s %3d  %5.2f%%\n", marker, k.Keyword, k.Count, k.Density)
		}
	}
}

func renderReport(w io.Writer, r *optimizer.Report) {
	fmt.Fprintln(w, divider())
	title := "SEO Audit"
	if r.URL != "" {
		title += "  " + r.URL
	}
	fmt.Fprintln(w, titleStyle.Render(title))
	fmt.Fprintln(w, divider())

	fmt.Fprintln(w, renderScore("Overall", r.OverallScore))
	fmt.Fprintln(w, renderScore("Technical", r.TechnicalScore))
	fmt.Fprintln(w, renderScore("Desktop speed", r.PageSpeedData.Desktop.Score))
	fmt.Fprintln(w, renderScore("Mobile speed", r.PageSpeedData.Mobile.Score))
	if r.Content != nil {
		fmt.Fprintln(w, renderScore("Content", r.Content.SEOScore))
	}

	if len(r.SEOIssues) > 0 {
		fmt.Fprintf(w, "\n%s\n", sectionStyle.Render("ISSUES"))
		for _, issue := range r.SEOIssues {
			fmt.Fprintf(w, "  %s %s\n", levelStyle(issue.Impact).Render(fmt.Sprintf("[%s]", issue.Category)), issue.Title)
			fmt.Fprintf(w, "      %s\n", labelStyle.Render(issue.Suggestion))
		}
	}

	if len(r.Recommendations) > 0 {
		fmt.Fprintf(w, "\n%s\n", sectionStyle.Render("RECOMMENDATIONS"))
		for _, rec := range r.Recommendations {
			fmt.Fprintf(w, "  %s %s\n", levelStyle(rec.Priority).Render(fmt.Sprintf("[%s]", rec.Priority)), rec.Title)
			fmt.Fprintf(w, "      %s\n", labelStyle.Render(rec.Description))
		}
	}

	fmt.Fprintf(w, "\n%s %s\n", sectionStyle.Render("SWOT"), labelStyle.Render("("+string(r.Swot.GeneratedBy)+")"))
	renderList(w, "Strengths", r.Swot.Strengths)
	renderList(w, "Weaknesses", r.Swot.Weaknesses)
	renderList(w, "Opportunities", r.Swot.Opportunities)
	renderList(w, "Threats", r.Swot.Threats)
}

func renderList(w io.Writer, label string, items []string) {
	fmt.Fprintf(w, "  %s\n", labelStyle.Render(label+":"))
	for _, item := range items {
		fmt.Fprintf(w, "    • %s\n", item)
	}
}
