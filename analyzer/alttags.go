package analyzer

import (
	"path"
	"strings"
	"unicode"
)

type ImageInput struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// AltContext supplies page-level text used to pad alt text derived from short file names
type AltContext struct {
	PageTitle      string `json:"pageTitle"`
	PrimaryKeyword string `json:"primaryKeyword"`
}

type AltSuggestion struct {
	Src          string `json:"src"`
	OriginalAlt  string `json:"originalAlt"`
	SuggestedAlt string `json:"suggestedAlt"`
	Generated    bool   `json:"generated"`
}

var fileNameReplacer = strings.NewReplacer("-", " ", "_", " ", "+", " ", "%20", " ", ".", " ")

// GenerateAltTagsWithRules suggests alt text for images whose alt is missing or shorter than
// MinAltLength. Text comes from the file name, padded with page context when still short,
// and is capped at MaxAltLength.
func GenerateAltTagsWithRules(images []ImageInput, ctx AltContext) []AltSuggestion {
	out := make([]AltSuggestion, 0, len(images))
	for _, img := range images {
		alt := strings.TrimSpace(img.Alt)
		if len([]rune(alt)) >= MinAltLength {
			out = append(out, AltSuggestion{
				Src:          img.Src,
				OriginalAlt:  img.Alt,
				SuggestedAlt: alt,
			})
			continue
		}
		out = append(out, AltSuggestion{
			Src:          img.Src,
			OriginalAlt:  img.Alt,
			SuggestedAlt: altFromSource(img.Src, ctx),
			Generated:    true,
		})
	}
	return out
}

func altFromSource(src string, ctx AltContext) string {
	name := src
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	name = path.Base(name)
	if name == "." || name == "/" {
		name = ""
	}
	name = strings.TrimSuffix(name, path.Ext(name))
	text := capitalize(strings.Join(strings.Fields(fileNameReplacer.Replace(name)), " "))
	if text == "" {
		text = "Image"
	}

	if len([]rune(text)) < MinAltLength {
		extra := strings.TrimSpace(ctx.PageTitle)
		if extra == "" {
			extra = strings.TrimSpace(ctx.PrimaryKeyword)
		}
		if extra != "" {
			text += " - " + extra
		}
	}
	return truncateAtWord(text, MaxAltLength)
}

func capitalize(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// truncateAtWord cuts s to at most max runes, backing up to the last space when there is one
func truncateAtWord(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	cut := r[:max]
	if i := strings.LastIndex(string(cut), " "); i > 0 {
		return strings.TrimSpace(string(cut)[:i])
	}
	return string(cut)
}
