package analyzer

import (
	"fmt"
	"math"
)

// CalculateTechnicalScore starts at 100 and subtracts a flat penalty for each missing
// element: title, meta description, H1 and alt text. The result never drops below 0.
func CalculateTechnicalScore(facts TechnicalFacts) int {
	score := 100
	if !facts.MetaTitle.Exists {
		score -= MissingTitlePenalty
	}
	if !facts.MetaDescription.Exists {
		score -= MissingDescriptionPenalty
	}
	if facts.Headings.H1Count == 0 {
		score -= MissingH1Penalty
	}
	if facts.Images.WithoutAlt > 0 {
		score -= MissingAltPenalty
	}
	return clampScore(score)
}

// GenerateSEOIssues itemises on-page problems. It is independent of CalculateTechnicalScore
// and flags length problems the score ignores.
func GenerateSEOIssues(facts TechnicalFacts) []SEOIssue {
	issues := make([]SEOIssue, 0)

	// Title
	title := facts.MetaTitle
	switch {
	case !title.Exists:
		issues = append(issues, SEOIssue{
			Category:    IssueCritical,
			Title:       "Missing Meta Title",
			Description: "The page does not have a meta title tag",
			Impact:      LevelHigh,
			Suggestion:  fmt.Sprintf("Add a unique, descriptive title tag between %d and %d characters", TitleMinLength, TitleMaxLength),
		})
	case title.Length > TitleMaxLength:
		issues = append(issues, SEOIssue{
			Category:    IssueWarning,
			Title:       "Meta Title Too Long",
			Description: fmt.Sprintf("The meta title is %d characters long and may be truncated in search results", title.Length),
			Impact:      LevelMedium,
			Suggestion:  fmt.Sprintf("Shorten the title to %d characters or fewer", TitleMaxLength),
		})
	case title.Length < TitleMinLength:
		issues = append(issues, SEOIssue{
			Category:    IssueWarning,
			Title:       "Meta Title Too Short",
			Description: fmt.Sprintf("The meta title is only %d characters long", title.Length),
			Impact:      LevelMedium,
			Suggestion:  fmt.Sprintf("Expand the title to at least %d characters with relevant keywords", TitleMinLength),
		})
	}

	// Description
	desc := facts.MetaDescription
	switch {
	case !desc.Exists:
		issues = append(issues, SEOIssue{
			Category:    IssueWarning,
			Title:       "Missing Meta Description",
			Description: "The page does not have a meta description",
			Impact:      LevelMedium,
			Suggestion:  fmt.Sprintf("Add a compelling meta description between %d and %d characters", DescriptionMinLength, DescriptionMaxLength),
		})
	case desc.Length > DescriptionMaxLength:
		issues = append(issues, SEOIssue{
			Category:    IssueWarning,
			Title:       "Meta Description Too Long",
			Description: fmt.Sprintf("The meta description is %d characters long and may be truncated", desc.Length),
			Impact:      LevelMedium,
			Suggestion:  fmt.Sprintf("Shorten the description to %d characters or fewer", DescriptionMaxLength),
		})
	case desc.Length < DescriptionMinLength:
		issues = append(issues, SEOIssue{
			Category:    IssueInfo,
			Title:       "Meta Description Too Short",
			Description: fmt.Sprintf("The meta description is only %d characters long", desc.Length),
			Impact:      LevelLow,
			Suggestion:  fmt.Sprintf("Expand the description to at least %d characters", DescriptionMinLength),
		})
	}

	// Headings
	switch h1 := facts.Headings.H1Count; {
	case h1 == 0:
		issues = append(issues, SEOIssue{
			Category:    IssueCritical,
			Title:       "Missing H1 Tag",
			Description: "The page does not have an H1 heading",
			Impact:      LevelHigh,
			Suggestion:  "Add a single H1 heading that describes the page topic",
		})
	case h1 > 1:
		issues = append(issues, SEOIssue{
			Category:    IssueWarning,
			Title:       "Multiple H1 Tags",
			Description: fmt.Sprintf("The page has %d H1 headings", h1),
			Impact:      LevelMedium,
			Suggestion:  "Use exactly one H1 heading and demote the others to H2 or lower",
		})
	}

	// Images
	if n := facts.Images.WithoutAlt; n > 0 {
		issues = append(issues, SEOIssue{
			Category:    IssueWarning,
			Title:       "Images Missing Alt Text",
			Description: fmt.Sprintf("%d images are missing alt text", n),
			Impact:      LevelMedium,
			Suggestion:  "Add descriptive alt text to every image",
		})
	}
	if n := facts.Images.EmptyAlt; n > 0 {
		issues = append(issues, SEOIssue{
			Category:    IssueInfo,
			Title:       "Images With Empty Alt Text",
			Description: fmt.Sprintf("%d images have an empty alt attribute", n),
			Impact:      LevelLow,
			Suggestion:  "Describe meaningful images; keep empty alt only for decorative ones",
		})
	}

	if !facts.Schema.Exists {
		issues = append(issues, SEOIssue{
			Category:    IssueInfo,
			Title:       "Missing Structured Data",
			Description: "No schema.org markup was found on the page",
			Impact:      LevelLow,
			Suggestion:  "Add JSON-LD structured data to qualify for rich results",
		})
	}
	if !facts.OpenGraph.Exists {
		issues = append(issues, SEOIssue{
			Category:    IssueInfo,
			Title:       "Missing Open Graph Tags",
			Description: "No Open Graph meta tags were found",
			Impact:      LevelLow,
			Suggestion:  "Add og:title, og:description and og:image for better social sharing",
		})
	}
	if !facts.Canonical.Exists {
		issues = append(issues, SEOIssue{
			Category:    IssueInfo,
			Title:       "Missing Canonical URL",
			Description: "The page does not declare a canonical URL",
			Impact:      LevelLow,
			Suggestion:  "Add a rel=canonical link to avoid duplicate content",
		})
	}

	return issues
}

// ScoreTechnicalSEO returns the technical score together with the itemised issues
func ScoreTechnicalSEO(facts TechnicalFacts) TechnicalResult {
	return TechnicalResult{
		Score:  CalculateTechnicalScore(facts),
		Issues: GenerateSEOIssues(facts),
	}
}

// OverallScore is the unweighted mean of the desktop and mobile PageSpeed scores and the
// technical score, rounded to the nearest integer.
func OverallScore(desktop, mobile, technical int) int {
	return int(math.Round(float64(desktop+mobile+technical) / 3))
}

// GenerateRecommendations derives prioritised actions from PageSpeed results and technical facts
func GenerateRecommendations(pageSpeed PageSpeedData, facts TechnicalFacts) []Recommendation {
	recs := make([]Recommendation, 0)

	if pageSpeed.Desktop.Score < PageSpeedGood {
		recs = append(recs, Recommendation{
			Priority:        LevelHigh,
			Category:        "Performance",
			Title:           "Improve Desktop Performance",
			Description:     fmt.Sprintf("Desktop PageSpeed score is %d. Optimize images, minify CSS/JS and enable caching.", pageSpeed.Desktop.Score),
			EstimatedImpact: "Faster load times improve rankings and reduce bounce rate",
		})
	}
	if pageSpeed.Mobile.Score < PageSpeedGood {
		recs = append(recs, Recommendation{
			Priority:        LevelHigh,
			Category:        "Performance",
			Title:           "Improve Mobile Performance",
			Description:     fmt.Sprintf("Mobile PageSpeed score is %d. Reduce render-blocking resources and lazy load offscreen images.", pageSpeed.Mobile.Score),
			EstimatedImpact: "Mobile-first indexing makes mobile speed a direct ranking factor",
		})
	}
	if !facts.MetaTitle.Exists {
		recs = append(recs, Recommendation{
			Priority:        LevelHigh,
			Category:        "On-Page SEO",
			Title:           "Add Meta Title",
			Description:     fmt.Sprintf("Create a unique title between %d and %d characters that includes your primary keyword.", TitleMinLength, TitleMaxLength),
			EstimatedImpact: "Titles are one of the strongest on-page ranking signals",
		})
	}
	if !facts.MetaDescription.Exists {
		recs = append(recs, Recommendation{
			Priority:        LevelMedium,
			Category:        "On-Page SEO",
			Title:           "Add Meta Description",
			Description:     fmt.Sprintf("Write a description between %d and %d characters that summarises the page.", DescriptionMinLength, DescriptionMaxLength),
			EstimatedImpact: "A good description improves click-through rate from search results",
		})
	}
	if facts.Headings.H1Count == 0 {
		recs = append(recs, Recommendation{
			Priority:        LevelMedium,
			Category:        "Content Structure",
			Title:           "Add an H1 Heading",
			Description:     "Add one H1 heading that states the page topic.",
			EstimatedImpact: "Clear heading structure helps search engines understand the page",
		})
	}
	if n := facts.Images.WithoutAlt; n > 0 {
		recs = append(recs, Recommendation{
			Priority:        LevelMedium,
			Category:        "Accessibility",
			Title:           "Add Image Alt Text",
			Description:     fmt.Sprintf("Add descriptive alt text to %d images.", n),
			EstimatedImpact: "Alt text improves accessibility and image search visibility",
		})
	}
	if !facts.Schema.Exists {
		recs = append(recs, Recommendation{
			Priority:        LevelLow,
			Category:        "Structured Data",
			Title:           "Add Schema Markup",
			Description:     "Add JSON-LD structured data describing the page content.",
			EstimatedImpact: "Structured data can earn rich results in search",
		})
	}

	return recs
}
