package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSwotWithRules_HealthySite(t *testing.T) {
	audit := Audit{
		OverallScore: 95,
		PageSpeedData: PageSpeedData{
			Desktop: PageSpeedResult{Score: 95},
			Mobile:  PageSpeedResult{Score: 92},
		},
		TechnicalSEO: TechnicalFacts{
			MetaTitle:       TextTag{Exists: true, Length: 50},
			MetaDescription: TextTag{Exists: true, Length: 150},
			Headings:        Headings{H1Count: 1},
		},
		SEOIssues: []SEOIssue{},
	}

	swot := GenerateSwotWithRules(audit)

	assert.GreaterOrEqual(t, len(swot.Strengths), 6)
	assert.Equal(t, []string{FillerWeakness}, swot.Weaknesses)
	assert.Equal(t, []string{FillerThreat}, swot.Threats)
	assert.Contains(t, swot.Opportunities, "Add structured data (schema markup) to earn rich results")
	assert.Equal(t, GeneratedByRules, swot.GeneratedBy)
}

func TestGenerateSwotWithRules_StrugglingSite(t *testing.T) {
	issues := make([]SEOIssue, 12)
	audit := Audit{
		OverallScore: 40,
		PageSpeedData: PageSpeedData{
			Desktop: PageSpeedResult{Score: 45},
			Mobile:  PageSpeedResult{Score: 30},
		},
		TechnicalSEO: TechnicalFacts{
			Images: Images{Total: 4, WithoutAlt: 4},
			Links:  Links{Broken: 2},
		},
		SEOIssues: issues,
	}

	swot := GenerateSwotWithRules(audit)

	assert.Equal(t, []string{FillerStrength}, swot.Strengths)
	assert.Contains(t, swot.Weaknesses, "Low overall SEO score of 40/100")
	assert.Contains(t, swot.Weaknesses, "Missing meta title")
	assert.Contains(t, swot.Weaknesses, "Missing meta description")
	assert.Contains(t, swot.Weaknesses, "Missing H1 heading")
	assert.Contains(t, swot.Weaknesses, "4 images missing alt text")
	assert.Len(t, swot.Threats, 4)
	assert.Contains(t, swot.Threats, "12 SEO issues put search visibility at risk")
	assert.Contains(t, swot.Threats, "2 broken links harm user experience and crawlability")
}

func TestGenerateSwotWithRules_Opportunities(t *testing.T) {
	audit := Audit{
		OverallScore: 70,
		PageSpeedData: PageSpeedData{
			Desktop: PageSpeedResult{Score: 80},
			Mobile:  PageSpeedResult{Score: 75},
		},
		TechnicalSEO: TechnicalFacts{
			MetaTitle:       TextTag{Exists: true, Length: 40},
			MetaDescription: TextTag{Exists: true, Length: 130},
			Headings:        Headings{H1Count: 1, H2Count: 1},
		},
		SEOIssues: make([]SEOIssue, 3),
	}

	swot := GenerateSwotWithRules(audit)

	assert.Len(t, swot.Opportunities, 5)
	assert.Contains(t, swot.Opportunities, "Fix 3 outstanding SEO issues for quick wins")
}

func TestGenerateSwotWithRules_MultipleH1(t *testing.T) {
	audit := Audit{TechnicalSEO: TechnicalFacts{Headings: Headings{H1Count: 3}}}
	swot := GenerateSwotWithRules(audit)
	assert.Contains(t, swot.Weaknesses, "Multiple H1 headings (3) dilute page focus")
}

func TestGenerateSwotWithRules_NeverEmpty(t *testing.T) {
	scores := []int{0, 30, 49, 50, 69, 70, 89, 90, 100}
	issueCounts := []int{0, 1, 5, 6, 11}
	for _, score := range scores {
		for _, n := range issueCounts {
			for _, h1 := range []int{0, 1, 2} {
				audit := Audit{
					OverallScore: score,
					PageSpeedData: PageSpeedData{
						Desktop: PageSpeedResult{Score: score},
						Mobile:  PageSpeedResult{Score: 100 - score},
					},
					TechnicalSEO: TechnicalFacts{
						MetaTitle: TextTag{Exists: h1 == 1, Length: score},
						Headings:  Headings{H1Count: h1, H2Count: n},
					},
					SEOIssues: make([]SEOIssue, n),
				}
				swot := GenerateSwotWithRules(audit)
				assert.NotEmpty(t, swot.Strengths)
				assert.NotEmpty(t, swot.Weaknesses)
				assert.NotEmpty(t, swot.Opportunities)
				assert.NotEmpty(t, swot.Threats)
				assert.Equal(t, swot, GenerateSwotWithRules(audit))
			}
		}
	}
}
