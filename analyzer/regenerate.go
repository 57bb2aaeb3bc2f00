package analyzer

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
	"unicode"
)

// Regeneration is rewritten content together with its score before and after
type Regeneration struct {
	Content     string          `json:"content"`
	Before      ContentAnalysis `json:"before"`
	After       ContentAnalysis `json:"after"`
	GeneratedBy GeneratedBy     `json:"generatedBy"`
}

// Metadata holds generated page metadata
type Metadata struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Slug        string   `json:"slug"`
	Keywords    []string `json:"keywords"`
}

// TitleTemplates are the title patterns GenerateMetadata picks from; %s is the primary keyword
var TitleTemplates = []string{
	"%s: The Complete Guide",
	"The Ultimate Guide to %s",
	"%s - Everything You Need to Know",
	"Top %s Tips and Strategies",
	"How to Master %s",
}

// Picker returns an index in [0, n)
type Picker func(n int) int

func RandomPicker(n int) int {
	return rand.IntN(n)
}

const introWindow = 100

var (
	paragraphBreak = regexp.MustCompile(`\n\s*\n`)
	sentenceEnd    = regexp.MustCompile(`[^.!?]+[.!?]*`)
	nonSlug        = regexp.MustCompile(`[^a-z0-9]+`)
)

// RegenerateContentWithRules is the deterministic rewrite used when AI regeneration is
// unavailable. It normalises whitespace, introduces the primary keyword early when it is
// missing from the opening words, and closes with any secondary keywords the text lacks.
func RegenerateContentWithRules(content string, keywords []string) Regeneration {
	paragraphs := normaliseParagraphs(content)

	if len(keywords) > 0 {
		primary := strings.TrimSpace(keywords[0])
		words := splitWords(strings.Join(paragraphs, " "))
		if len(words) > introWindow {
			words = words[:introWindow]
		}
		if primary != "" && countKeyword(strings.Join(words, " "), primary) == 0 {
			intro := fmt.Sprintf("This article explores %s and what it means for you.", primary)
			paragraphs = append([]string{intro}, paragraphs...)
		}

		body := strings.Join(paragraphs, " ")
		var missing []string
		seen := make(map[string]bool)
		for _, kw := range keywords[1:] {
			kw = strings.TrimSpace(kw)
			key := strings.ToLower(kw)
			if kw == "" || seen[key] {
				continue
			}
			seen[key] = true
			if countKeyword(body, kw) == 0 {
				missing = append(missing, kw)
			}
		}
		if len(missing) > 0 {
			paragraphs = append(paragraphs, fmt.Sprintf("Related topics include %s.", joinList(missing)))
		}
	}

	rewritten := strings.Join(paragraphs, "\n\n")
	return Regeneration{
		Content:     rewritten,
		Before:      AnalyzeContent(content, keywords),
		After:       AnalyzeContent(rewritten, keywords),
		GeneratedBy: GeneratedByRules,
	}
}

// GenerateMetadata builds a title, description and slug for content. pick selects the title
// template; nil uses RandomPicker.
func GenerateMetadata(content string, keywords []string, pick Picker) Metadata {
	if pick == nil {
		pick = RandomPicker
	}

	primary := ""
	if len(keywords) > 0 {
		primary = strings.TrimSpace(keywords[0])
	}

	sentences := sentenceEnd.FindAllString(strings.Join(strings.Fields(content), " "), -1)

	var title string
	if primary != "" {
		i := pick(len(TitleTemplates))
		if i < 0 || i >= len(TitleTemplates) {
			i = 0
		}
		title = fmt.Sprintf(TitleTemplates[i], titleCase(primary))
	} else if len(sentences) > 0 {
		title = strings.TrimRight(strings.TrimSpace(sentences[0]), ".!?")
	}

	var desc strings.Builder
	for _, s := range sentences {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if desc.Len() > 0 && desc.Len()+1+len(s) > DescriptionMaxLength {
			break
		}
		if desc.Len() > 0 {
			desc.WriteByte(' ')
		}
		desc.WriteString(s)
	}
	description := desc.String()
	if primary != "" && countKeyword(description, primary) == 0 {
		description = titleCase(primary) + ": " + description
	}

	slugSource := primary
	if slugSource == "" {
		slugSource = title
	}

	return Metadata{
		Title:       truncateAtWord(title, TitleMaxLength),
		Description: truncateAtWord(strings.TrimSpace(description), DescriptionMaxLength),
		Slug:        strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(slugSource), "-"), "-"),
		Keywords:    keywords,
	}
}

func normaliseParagraphs(content string) []string {
	var out []string
	for _, p := range paragraphBreak.Split(content, -1) {
		if p = strings.Join(strings.Fields(p), " "); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

func joinList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
}
