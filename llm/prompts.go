package llm

import (
	"fmt"
	"strings"

	"github.com/seo-boostpro/backend/analyzer"
)

func BuildSwotPrompt(audit analyzer.Audit) string {
	tech := audit.TechnicalSEO
	return fmt.Sprintf(`Produce a SWOT analysis for the website %s based on this SEO audit.

Overall score: %d/100
Desktop performance: %d/100
Mobile performance: %d/100
Meta title: present=%t, length=%d
Meta description: present=%t, length=%d
H1 headings: %d, H2 headings: %d
Images without alt text: %d of %d
Broken links: %d
Structured data present: %t
Outstanding issues: %d

Return a JSON object with the keys "strengths", "weaknesses", "opportunities" and "threats",
each an array of 2-5 short statements.

Return ONLY valid JSON, no other text.`,
		audit.URL,
		audit.OverallScore,
		audit.PageSpeedData.Desktop.Score,
		audit.PageSpeedData.Mobile.Score,
		tech.MetaTitle.Exists, tech.MetaTitle.Length,
		tech.MetaDescription.Exists, tech.MetaDescription.Length,
		tech.Headings.H1Count, tech.Headings.H2Count,
		tech.Images.WithoutAlt, tech.Images.Total,
		tech.Links.Broken,
		tech.Schema.Exists,
		len(audit.SEOIssues),
	)
}

func BuildRegenerationPrompt(content string, keywords []string, tone string) string {
	if tone == "" {
		tone = "professional"
	}
	primary := ""
	var secondary []string
	if len(keywords) > 0 {
		primary = keywords[0]
		secondary = keywords[1:]
	}
	return fmt.Sprintf(`Rewrite the following content to improve its search ranking.

Primary keyword: %s
Secondary keywords: %s
Tone: %s

Guidelines:
- Keep primary keyword density between 0.5%% and 2.5%%
- Use short sentences and plain words
- Preserve the original meaning and facts

Content:
%s

Return only the rewritten content as plain text.`, primary, strings.Join(secondary, ", "), tone, content)
}
