package analyzer

import "fmt"

// Filler statements used when a SWOT category would otherwise be empty
const (
	FillerStrength    = "Website is functional and accessible"
	FillerWeakness    = "Minor optimization opportunities remain"
	FillerOpportunity = "Continue creating high-quality content targeting relevant keywords"
	FillerThreat      = "Competitors may outpace the site without ongoing SEO work"
)

// GenerateSwotWithRules derives a SWOT analysis from an audit using independent threshold
// rules. Every category is guaranteed at least one entry.
func GenerateSwotWithRules(audit Audit) SwotAnalysis {
	var (
		strengths     []string
		weaknesses    []string
		opportunities []string
		threats       []string
	)

	desktop := audit.PageSpeedData.Desktop.Score
	mobile := audit.PageSpeedData.Mobile.Score
	tech := audit.TechnicalSEO
	issueCount := len(audit.SEOIssues)

	// Strengths
	if audit.OverallScore >= StrongOverallScore {
		strengths = append(strengths, fmt.Sprintf("Strong overall SEO score of %d/100", audit.OverallScore))
	}
	if desktop >= PageSpeedGood {
		strengths = append(strengths, fmt.Sprintf("Excellent desktop performance (%d/100)", desktop))
	}
	if mobile >= PageSpeedGood {
		strengths = append(strengths, fmt.Sprintf("Excellent mobile performance (%d/100)", mobile))
	}
	if tech.MetaTitle.Exists && tech.MetaTitle.Length <= TitleMaxLength {
		strengths = append(strengths, "Well-optimized meta title")
	}
	if tech.MetaDescription.Exists && tech.MetaDescription.Length <= DescriptionMaxLength {
		strengths = append(strengths, "Well-optimized meta description")
	}
	if tech.Headings.H1Count == 1 {
		strengths = append(strengths, "Proper H1 heading structure")
	}
	if tech.Images.WithoutAlt == 0 {
		strengths = append(strengths, "All images have alt text")
	}

	// Weaknesses
	if audit.OverallScore < WeakOverallScore {
		weaknesses = append(weaknesses, fmt.Sprintf("Low overall SEO score of %d/100", audit.OverallScore))
	}
	if desktop < PageSpeedFair {
		weaknesses = append(weaknesses, fmt.Sprintf("Slow desktop performance (%d/100)", desktop))
	}
	if mobile < PageSpeedFair {
		weaknesses = append(weaknesses, fmt.Sprintf("Slow mobile performance (%d/100)", mobile))
	}
	if !tech.MetaTitle.Exists {
		weaknesses = append(weaknesses, "Missing meta title")
	}
	if !tech.MetaDescription.Exists {
		weaknesses = append(weaknesses, "Missing meta description")
	}
	switch h1 := tech.Headings.H1Count; {
	case h1 == 0:
		weaknesses = append(weaknesses, "Missing H1 heading")
	case h1 > 1:
		weaknesses = append(weaknesses, fmt.Sprintf("Multiple H1 headings (%d) dilute page focus", h1))
	}
	if n := tech.Images.WithoutAlt; n > 0 {
		weaknesses = append(weaknesses, fmt.Sprintf("%d images missing alt text", n))
	}

	// Opportunities
	if desktop >= PageSpeedFair && desktop < PageSpeedGood {
		opportunities = append(opportunities, "Desktop performance can be pushed above 90 with targeted optimization")
	}
	if mobile >= PageSpeedFair && mobile < PageSpeedGood {
		opportunities = append(opportunities, "Mobile performance can be pushed above 90 with targeted optimization")
	}
	if !tech.Schema.Exists {
		opportunities = append(opportunities, "Add structured data (schema markup) to earn rich results")
	}
	if tech.Headings.H2Count < MinH2Count {
		opportunities = append(opportunities, "Expand content structure with more H2 subheadings")
	}
	if issueCount >= 1 && issueCount <= FewIssuesMax {
		opportunities = append(opportunities, fmt.Sprintf("Fix %d outstanding SEO issues for quick wins", issueCount))
	}

	// Threats
	if mobile < PageSpeedPoor {
		threats = append(threats, "Poor mobile performance may hurt rankings under mobile-first indexing")
	}
	if issueCount > ManyIssuesAbove {
		threats = append(threats, fmt.Sprintf("%d SEO issues put search visibility at risk", issueCount))
	}
	if !tech.MetaTitle.Exists || !tech.MetaDescription.Exists {
		threats = append(threats, "Missing meta tags reduce click-through rate from search results")
	}
	if n := tech.Links.Broken; n > 0 {
		threats = append(threats, fmt.Sprintf("%d broken links harm user experience and crawlability", n))
	}

	return SwotAnalysis{
		Strengths:     orFiller(strengths, FillerStrength),
		Weaknesses:    orFiller(weaknesses, FillerWeakness),
		Opportunities: orFiller(opportunities, FillerOpportunity),
		Threats:       orFiller(threats, FillerThreat),
		GeneratedBy:   GeneratedByRules,
	}
}

func orFiller(items []string, filler string) []string {
	if len(items) == 0 {
		return []string{filler}
	}
	return items
}
