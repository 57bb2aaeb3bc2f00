package analyzer

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAltTagsWithRules(t *testing.T) {
	images := []ImageInput{
		{Src: "https://cdn.example.com/images/red-running-shoes.jpg?w=300"},
		{Src: "/img/dog.png", Alt: "dog"},
		{Src: "/img/retriever.jpg", Alt: "A golden retriever puppy"},
		{Src: ""},
	}
	ctx := AltContext{PageTitle: "Pet Care Guide", PrimaryKeyword: "pet care"}

	got := GenerateAltTagsWithRules(images, ctx)
	require.Len(t, got, 4)

	assert.Equal(t, "Red running shoes", got[0].SuggestedAlt)
	assert.True(t, got[0].Generated)

	assert.Equal(t, "Dog - Pet Care Guide", got[1].SuggestedAlt)
	assert.Equal(t, "dog", got[1].OriginalAlt)
	assert.True(t, got[1].Generated)

	assert.Equal(t, "A golden retriever puppy", got[2].SuggestedAlt)
	assert.False(t, got[2].Generated)

	assert.Equal(t, "Image - Pet Care Guide", got[3].SuggestedAlt)
}

func TestGenerateAltTagsWithRules_KeywordFallback(t *testing.T) {
	got := GenerateAltTagsWithRules([]ImageInput{{Src: "a_b.webp"}}, AltContext{PrimaryKeyword: "trail running"})
	require.Len(t, got, 1)
	assert.Equal(t, "A b - trail running", got[0].SuggestedAlt)
}

func TestGenerateAltTagsWithRules_Truncates(t *testing.T) {
	long := strings.Repeat("mountain-", 40) + "view.jpg"
	got := GenerateAltTagsWithRules([]ImageInput{{Src: long}}, AltContext{})

	require.Len(t, got, 1)
	assert.LessOrEqual(t, utf8.RuneCountInString(got[0].SuggestedAlt), MaxAltLength)
	assert.True(t, strings.HasPrefix(got[0].SuggestedAlt, "Mountain mountain"))
	assert.False(t, strings.HasSuffix(got[0].SuggestedAlt, " "))
}

func TestGenerateAltTagsWithRules_Empty(t *testing.T) {
	assert.Empty(t, GenerateAltTagsWithRules(nil, AltContext{}))
}
