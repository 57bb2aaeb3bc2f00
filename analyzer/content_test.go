package analyzer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildText returns n words in sentences of ten, using filler except at the given positions
func buildText(n int, filler string, at map[int]string) string {
	words := make([]string, n)
	for i := range words {
		w := filler
		if kw, ok := at[i]; ok {
			w = kw
		}
		if i%10 == 9 {
			w += "."
		}
		words[i] = w
	}
	return strings.Join(words, " ")
}

func TestAnalyzeContent_PrimaryKeywordInRange(t *testing.T) {
	text := buildText(300, "cat", map[int]string{0: "widgets", 150: "widgets"})

	a := AnalyzeContent(text, []string{"widgets"})

	assert.Equal(t, 300, a.WordCount)
	assert.Equal(t, 30, a.SentenceCount)
	require.Len(t, a.KeywordDensity, 1)
	assert.Equal(t, 0.67, a.KeywordDensity[0].Density)
	assert.Equal(t, 100, a.ReadabilityScore)
	assert.Equal(t, 10.0, a.AvgWordsPerSentence)
	// 40 keyword + 30 readability + 10 length
	assert.Equal(t, 80, a.SEOScore)
}

func TestAnalyzeContent_SecondaryKeywords(t *testing.T) {
	text := buildText(100, "cat", map[int]string{3: "seo", 40: "seo", 77: "tips"})

	a := AnalyzeContent(text, []string{"seo", "tips", "dogs"})

	require.Len(t, a.KeywordDensity, 3)
	assert.Equal(t, 2.0, a.KeywordDensity[0].Density)
	assert.Equal(t, 1.0, a.KeywordDensity[1].Density)
	assert.Equal(t, 0.0, a.KeywordDensity[2].Density)
	// 40 primary + 5 secondary + 30 readability + 5 length
	assert.Equal(t, 80, a.SEOScore)
}

func TestAnalyzeContent_CapsAt100(t *testing.T) {
	keywords := []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot"}
	at := make(map[int]string)
	for i := 0; i < 2000; i += 100 {
		for j, kw := range keywords {
			at[i+j*7] = kw
		}
	}
	text := buildText(2000, "cat", at)

	a := AnalyzeContent(text, keywords)

	for _, m := range a.KeywordDensity {
		assert.Equal(t, 1.0, m.Density, m.Keyword)
	}
	assert.Equal(t, 100, a.SEOScore)
}

func TestAnalyzeContent_Empty(t *testing.T) {
	a := AnalyzeContent("", nil)

	assert.Equal(t, 0, a.WordCount)
	assert.Equal(t, 0, a.SentenceCount)
	assert.Empty(t, a.KeywordDensity)
	assert.Equal(t, 0, a.ReadabilityScore)
	assert.Equal(t, 0, a.SEOScore)
}

func TestPrimaryKeywordPoints(t *testing.T) {
	tests := []struct {
		density float64
		want    int
	}{
		{0, 0},
		{0.3, 20},
		{0.5, 40},
		{1.2, 40},
		{2.5, 40},
		{3, 15},
		{4, 0},
		{7.5, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, primaryKeywordPoints(tt.density), "density %v", tt.density)
	}
}

func TestBucketPoints(t *testing.T) {
	assert.Equal(t, 30, bucketPoints(1500, lengthBuckets))
	assert.Equal(t, 20, bucketPoints(1499, lengthBuckets))
	assert.Equal(t, 10, bucketPoints(300, lengthBuckets))
	assert.Equal(t, 5, bucketPoints(100, lengthBuckets))
	assert.Equal(t, 0, bucketPoints(99, lengthBuckets))

	assert.Equal(t, 30, bucketPoints(60, readabilityBuckets))
	assert.Equal(t, 20, bucketPoints(59, readabilityBuckets))
	assert.Equal(t, 10, bucketPoints(10, readabilityBuckets))
	assert.Equal(t, 0, bucketPoints(9, readabilityBuckets))
}

func TestAnalyzeContent_ClampedAndIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"a",
		"!!!!!!!!",
		".?!.?!",
		strings.Repeat("word ", 50000),
		strings.Repeat("incomprehensibilities ", 500),
		buildText(1000, "keyword", nil),
	}
	for _, text := range inputs {
		first := AnalyzeContent(text, []string{"keyword", "word"})
		second := AnalyzeContent(text, []string{"keyword", "word"})

		assert.Equal(t, first, second)
		assert.GreaterOrEqual(t, first.SEOScore, 0)
		assert.LessOrEqual(t, first.SEOScore, 100)
		assert.GreaterOrEqual(t, first.ReadabilityScore, 0)
		assert.LessOrEqual(t, first.ReadabilityScore, 100)
	}
}
