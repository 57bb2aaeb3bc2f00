package analyzer

// AnalyzeContent scores plain text against ordered target keywords. The first keyword is
// treated as primary. The SEO score is the sum of independent point buckets, capped at 100:
//
//	primary density   0.5-2.5% = 40, under 0.5% = 20, 2.5-4% = 15
//	each secondary    0.3-1.5% = 5
//	readability       >=60 = 30, >=30 = 20, >=10 = 10
//	word count        >=1500 = 30, >=800 = 20, >=300 = 10, >=100 = 5
func AnalyzeContent(content string, targetKeywords []string) ContentAnalysis {
	density := ComputeDensity(content, targetKeywords)
	readability := ComputeReadability(content)

	analysis := ContentAnalysis{
		WordCount:           len(splitWords(content)),
		SentenceCount:       len(splitSentences(content)),
		KeywordDensity:      density,
		ReadabilityScore:    clampScore(readability.ReadabilityScore),
		AvgWordsPerSentence: readability.AvgWordsPerSentence,
	}

	score := 0
	for i, m := range density {
		if i == 0 {
			score += primaryKeywordPoints(m.Density)
			continue
		}
		if m.Density >= SecondaryDensityMin && m.Density <= SecondaryDensityMax {
			score += SecondaryOptimalPoints
		}
	}
	score += bucketPoints(analysis.ReadabilityScore, readabilityBuckets)
	score += bucketPoints(analysis.WordCount, lengthBuckets)

	analysis.SEOScore = clampScore(score)
	return analysis
}

func primaryKeywordPoints(density float64) int {
	switch {
	case density >= PrimaryDensityMin && density <= PrimaryDensityMax:
		return PrimaryOptimalPoints
	case density > 0 && density < PrimaryDensityMin:
		return PrimaryLowPoints
	case density > PrimaryDensityMax && density < PrimaryDensityLimit:
		return PrimaryHighPoints
	default:
		return 0
	}
}
