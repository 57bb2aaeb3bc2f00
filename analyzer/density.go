package analyzer

import (
	"math"
	"regexp"
	"strings"
)

var sentenceSplitter = regexp.MustCompile(`[.!?]+`)

func splitWords(text string) []string {
	return strings.Fields(text)
}

func splitSentences(text string) []string {
	parts := sentenceSplitter.Split(text, -1)
	sentences := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			sentences = append(sentences, p)
		}
	}
	return sentences
}

// keywordPattern builds a case-insensitive whole-word matcher for a keyword.
// Multi-word keywords match as one unit.
func keywordPattern(keyword string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(keyword) + `\b`)
}

// countKeyword counts whole-word occurrences of keyword in text. Blank keywords never match.
func countKeyword(text, keyword string) int {
	if strings.TrimSpace(keyword) == "" {
		return 0
	}
	return len(keywordPattern(keyword).FindAllStringIndex(text, -1))
}

func roundTo2Decimals(x float64) float64 {
	return math.Round(x*100) / 100
}

// ComputeDensity returns one metric per keyword, in input order, including duplicates and
// keywords that never occur. Density is the share of whitespace-separated words, in percent.
func ComputeDensity(text string, keywords []string) []KeywordMetric {
	total := len(splitWords(text))
	metrics := make([]KeywordMetric, 0, len(keywords))
	for _, kw := range keywords {
		count := countKeyword(text, kw)
		density := 0.0
		if total > 0 {
			density = roundTo2Decimals(float64(count) / float64(total) * 100)
		}
		metrics = append(metrics, KeywordMetric{
			Keyword: kw,
			Count:   count,
			Density: density,
		})
	}
	return metrics
}
