package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegenerateContentWithRules(t *testing.T) {
	content := "Our shop sells shoes.   We ship worldwide."
	keywords := []string{"running shoes", "trail", "shoes"}

	r := RegenerateContentWithRules(content, keywords)

	expected := "This article explores running shoes and what it means for you.\n\n" +
		"Our shop sells shoes. We ship worldwide.\n\n" +
		"Related topics include trail."
	assert.Equal(t, expected, r.Content)
	assert.Equal(t, GeneratedByRules, r.GeneratedBy)

	require.Len(t, r.Before.KeywordDensity, 3)
	require.Len(t, r.After.KeywordDensity, 3)
	assert.Equal(t, 0, r.Before.KeywordDensity[0].Count)
	assert.Equal(t, 1, r.After.KeywordDensity[0].Count)
	assert.Equal(t, 1, r.After.KeywordDensity[1].Count)
}

func TestRegenerateContentWithRules_KeywordAlreadyPresent(t *testing.T) {
	content := "Running shoes wear out.\n\n\n   Replace running shoes often."
	r := RegenerateContentWithRules(content, []string{"running shoes"})

	assert.Equal(t, "Running shoes wear out.\n\nReplace running shoes often.", r.Content)
}

func TestRegenerateContentWithRules_NoKeywords(t *testing.T) {
	r := RegenerateContentWithRules("  one   two  ", nil)
	assert.Equal(t, "one two", r.Content)
	assert.Empty(t, r.After.KeywordDensity)
}

func TestGenerateMetadata(t *testing.T) {
	content := "Running shoes matter for every runner. Choose a pair that fits well. Replace them every 500 miles."
	pick := func(n int) int { return 1 }

	m := GenerateMetadata(content, []string{"running shoes", "fit"}, pick)

	assert.Equal(t, "The Ultimate Guide to Running Shoes", m.Title)
	assert.Equal(t, content, m.Description)
	assert.Equal(t, "running-shoes", m.Slug)
	assert.Equal(t, []string{"running shoes", "fit"}, m.Keywords)
}

func TestGenerateMetadata_PrefixesMissingKeyword(t *testing.T) {
	m := GenerateMetadata("We sell footwear.", []string{"trail shoes"}, func(int) int { return 99 })

	assert.Equal(t, "Trail Shoes: The Complete Guide", m.Title)
	assert.Equal(t, "Trail Shoes: We sell footwear.", m.Description)
}

func TestGenerateMetadata_Limits(t *testing.T) {
	long := ""
	for i := 0; i < 40; i++ {
		long += "This sentence keeps the description growing. "
	}
	m := GenerateMetadata(long, []string{"an extraordinarily long primary keyword phrase for testing"}, func(int) int { return 2 })

	assert.LessOrEqual(t, len([]rune(m.Title)), TitleMaxLength)
	assert.LessOrEqual(t, len([]rune(m.Description)), DescriptionMaxLength)
}

func TestGenerateMetadata_NoKeywords(t *testing.T) {
	m := GenerateMetadata("Fresh bread every morning! Visit us.", nil, nil)

	assert.Equal(t, "Fresh bread every morning", m.Title)
	assert.Equal(t, "fresh-bread-every-morning", m.Slug)
}
