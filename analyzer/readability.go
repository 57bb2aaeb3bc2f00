package analyzer

import (
	"math"
	"strings"
	"unicode"
)

// Flesch reading-ease coefficients
const (
	fleschBase           = 206.835
	fleschSentenceWeight = 1.015
	fleschSyllableWeight = 84.6
)

// ComputeReadability scores text on the Flesch reading-ease scale, clamped to 0-100.
// Text without words or sentences scores 0.
func ComputeReadability(text string) Readability {
	sentences := splitSentences(text)
	words := splitWords(text)
	if len(sentences) == 0 || len(words) == 0 {
		return Readability{}
	}

	avgWords := float64(len(words)) / float64(len(sentences))

	syllables := 0
	for _, w := range words {
		syllables += countSyllables(w)
	}
	avgSyllables := float64(syllables) / float64(len(words))

	score := fleschBase - fleschSentenceWeight*avgWords - fleschSyllableWeight*avgSyllables
	score = math.Max(0, math.Min(100, score))

	return Readability{
		ReadabilityScore:    int(math.Round(score)),
		AvgWordsPerSentence: avgWords,
	}
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}

// countSyllables estimates syllables by counting vowel groups, discounting a trailing silent e.
// Short words count as one syllable and every word has at least one.
func countSyllables(word string) int {
	word = strings.Map(func(r rune) rune {
		r = unicode.ToLower(r)
		if r >= 'a' && r <= 'z' {
			return r
		}
		return -1
	}, word)

	if len(word) <= 3 {
		return 1
	}

	count := 0
	prevVowel := false
	for _, r := range word {
		v := isVowel(r)
		if v && !prevVowel {
			count++
		}
		prevVowel = v
	}

	if strings.HasSuffix(word, "e") && count > 1 {
		count--
	}
	if count < 1 {
		count = 1
	}
	return count
}
