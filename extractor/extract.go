// Package extractor turns an HTML page into the technical facts and plain text the
// scoring core consumes.
package extractor

import (
	"encoding/json"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/seo-boostpro/backend/analyzer"
)

// Page is everything extracted from one HTML document
type Page struct {
	URL      string                  `json:"url"`
	Title    string                  `json:"title"`
	Text     string                  `json:"text"`
	Facts    analyzer.TechnicalFacts `json:"facts"`
	Images   []analyzer.ImageInput   `json:"images"`
	PageSize int                     `json:"pageSize"`
	LoadTime int64                   `json:"loadTimeMs"`

	// absolute http(s) link targets, internal and external, deduplicated
	links []string
}

var skippedTextTags = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
	"svg":      true,
}

// Extract reads facts from a parsed document. Broken links are not checked here.
func Extract(doc *goquery.Document, pageURL string) *Page {
	page := &Page{URL: pageURL}
	facts := &page.Facts

	title := strings.TrimSpace(doc.Find("title").First().Text())
	page.Title = title
	facts.MetaTitle = textTag(title)

	desc, _ := doc.Find("meta[name='description']").First().Attr("content")
	facts.MetaDescription = textTag(strings.TrimSpace(desc))

	extractHeadings(doc, &facts.Headings)
	page.Images = extractImages(doc, &facts.Images)
	page.links = extractLinks(doc, pageURL, &facts.Links)
	facts.Schema = extractSchema(doc)

	if href, ok := doc.Find("link[rel='canonical']").First().Attr("href"); ok && strings.TrimSpace(href) != "" {
		facts.Canonical = analyzer.Canonical{Exists: true, URL: strings.TrimSpace(href)}
	}
	if content, ok := doc.Find("meta[name='robots']").First().Attr("content"); ok {
		facts.Robots = analyzer.Robots{Exists: true, Content: strings.TrimSpace(content)}
	}
	facts.OpenGraph = socialTags(doc, "meta[property^='og:']", "property")
	facts.TwitterCard = socialTags(doc, "meta[name^='twitter:']", "name")

	page.Text = visibleText(doc.Find("body"))
	return page
}

func textTag(s string) analyzer.TextTag {
	return analyzer.TextTag{
		Exists:  s != "",
		Content: s,
		Length:  utf8.RuneCountInString(s),
	}
}

func extractHeadings(doc *goquery.Document, h *analyzer.Headings) {
	h.H1Count = doc.Find("h1").Length()
	h.H2Count = doc.Find("h2").Length()
	h.H3Count = doc.Find("h3").Length()
	h.H4Count = doc.Find("h4").Length()
	h.H5Count = doc.Find("h5").Length()
	h.H6Count = doc.Find("h6").Length()

	h.H1Text = make([]string, 0, h.H1Count)
	doc.Find("h1").Each(func(_ int, s *goquery.Selection) {
		h.H1Text = append(h.H1Text, strings.TrimSpace(s.Text()))
	})
	h.H2Text = make([]string, 0, h.H2Count)
	doc.Find("h2").Each(func(_ int, s *goquery.Selection) {
		h.H2Text = append(h.H2Text, strings.TrimSpace(s.Text()))
	})
}

func extractImages(doc *goquery.Document, img *analyzer.Images) []analyzer.ImageInput {
	images := doc.Find("img")
	img.Total = images.Length()
	inputs := make([]analyzer.ImageInput, 0, img.Total)

	images.Each(func(_ int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		alt, exists := s.Attr("alt")
		switch {
		case !exists:
			img.WithoutAlt++
		case strings.TrimSpace(alt) == "":
			img.EmptyAlt++
		default:
			img.WithAlt++
		}
		inputs = append(inputs, analyzer.ImageInput{Src: src, Alt: alt})
	})
	return inputs
}

// extractLinks classifies anchors as internal or external by host and returns the unique
// absolute targets
func extractLinks(doc *goquery.Document, pageURL string, links *analyzer.Links) []string {
	base, err := url.Parse(pageURL)
	if err != nil {
		base = &url.URL{}
	}

	seen := make(map[string]bool)
	var targets []string

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		abs := base.ResolveReference(ref)
		if abs.Scheme != "http" && abs.Scheme != "https" {
			return
		}
		abs.Fragment = ""

		target := abs.String()
		if seen[target] {
			return
		}
		seen[target] = true

		if base.Host != "" && strings.EqualFold(abs.Host, base.Host) {
			links.Internal++
		} else {
			links.External++
		}
		targets = append(targets, target)
	})
	return targets
}

func extractSchema(doc *goquery.Document) analyzer.Schema {
	schema := analyzer.Schema{Types: []string{}}
	seen := make(map[string]bool)
	add := func(t string) {
		if t != "" && !seen[t] {
			seen[t] = true
			schema.Types = append(schema.Types, t)
		}
	}

	doc.Find("script[type='application/ld+json']").Each(func(_ int, s *goquery.Selection) {
		schema.Exists = true
		var data any
		if err := json.Unmarshal([]byte(s.Text()), &data); err != nil {
			return
		}
		collectSchemaTypes(data, add)
	})

	doc.Find("[itemtype]").Each(func(_ int, s *goquery.Selection) {
		schema.Exists = true
		itemType, _ := s.Attr("itemtype")
		itemType = strings.TrimRight(strings.TrimSpace(itemType), "/")
		if i := strings.LastIndex(itemType, "/"); i >= 0 {
			itemType = itemType[i+1:]
		}
		add(itemType)
	})

	return schema
}

func collectSchemaTypes(data any, add func(string)) {
	switch v := data.(type) {
	case []any:
		for _, item := range v {
			collectSchemaTypes(item, add)
		}
	case map[string]any:
		switch t := v["@type"].(type) {
		case string:
			add(t)
		case []any:
			for _, item := range t {
				if s, ok := item.(string); ok {
					add(s)
				}
			}
		}
		if graph, ok := v["@graph"]; ok {
			collectSchemaTypes(graph, add)
		}
	}
}

func socialTags(doc *goquery.Document, selector, keyAttr string) analyzer.SocialTags {
	tags := analyzer.SocialTags{Tags: map[string]string{}}
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		key, _ := s.Attr(keyAttr)
		content, _ := s.Attr("content")
		tags.Tags[key] = strings.TrimSpace(content)
	})
	tags.Exists = len(tags.Tags) > 0
	return tags
}

// visibleText joins the text nodes under sel with single spaces, skipping scripts and styles
func visibleText(sel *goquery.Selection) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && skippedTextTags[n.Data] {
			return
		}
		if n.Type == html.TextNode {
			for _, w := range strings.Fields(n.Data) {
				if b.Len() > 0 {
					b.WriteByte(' ')
				}
				b.WriteString(w)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return b.String()
}
