package analyzer

// KeywordMetric holds the occurrence count and density of one target keyword
type KeywordMetric struct {
	Keyword string  `json:"keyword"`
	Count   int     `json:"count"`
	Density float64 `json:"density"`
}

// ContentAnalysis is the result of scoring a block of plain text against target keywords.
// KeywordDensity keeps the caller's keyword order; index 0 is the primary keyword.
type ContentAnalysis struct {
	WordCount           int             `json:"wordCount"`
	SentenceCount       int             `json:"sentenceCount"`
	KeywordDensity      []KeywordMetric `json:"keywordDensity"`
	ReadabilityScore    int             `json:"readabilityScore"`
	SEOScore            int             `json:"seoScore"`
	AvgWordsPerSentence float64         `json:"avgWordsPerSentence"`
}

// Readability is the Flesch reading-ease result for a text
type Readability struct {
	ReadabilityScore    int     `json:"readabilityScore"`
	AvgWordsPerSentence float64 `json:"avgWordsPerSentence"`
}

// TextTag describes a text-bearing tag such as <title> or the meta description.
// A tag that was not detected has Exists=false and Length=0.
type TextTag struct {
	Exists  bool   `json:"exists"`
	Content string `json:"content"`
	Length  int    `json:"length"`
}

type Headings struct {
	H1Count int      `json:"h1Count"`
	H2Count int      `json:"h2Count"`
	H3Count int      `json:"h3Count"`
	H4Count int      `json:"h4Count"`
	H5Count int      `json:"h5Count"`
	H6Count int      `json:"h6Count"`
	H1Text  []string `json:"h1Text"`
	H2Text  []string `json:"h2Text"`
}

type Images struct {
	Total      int `json:"total"`
	WithAlt    int `json:"withAlt"`
	WithoutAlt int `json:"withoutAlt"`
	EmptyAlt   int `json:"emptyAlt"`
}

type Links struct {
	Internal int `json:"internal"`
	External int `json:"external"`
	Broken   int `json:"broken"`
}

type Schema struct {
	Exists bool     `json:"exists"`
	Types  []string `json:"types"`
}

type Canonical struct {
	Exists bool   `json:"exists"`
	URL    string `json:"url"`
}

type Robots struct {
	Exists  bool   `json:"exists"`
	Content string `json:"content"`
}

// SocialTags covers Open Graph and Twitter Card meta tags
type SocialTags struct {
	Exists bool              `json:"exists"`
	Tags   map[string]string `json:"tags"`
}

// TechnicalFacts is the descriptive record of a page's on-page SEO elements, as supplied by
// the page extraction step. Every field is always present; absence is expressed by zero values.
type TechnicalFacts struct {
	MetaTitle       TextTag    `json:"metaTitle"`
	MetaDescription TextTag    `json:"metaDescription"`
	Headings        Headings   `json:"headings"`
	Images          Images     `json:"images"`
	Links           Links      `json:"links"`
	Schema          Schema     `json:"schema"`
	Canonical       Canonical  `json:"canonical"`
	Robots          Robots     `json:"robots"`
	OpenGraph       SocialTags `json:"openGraph"`
	TwitterCard     SocialTags `json:"twitterCard"`
}

type IssueCategory string

const (
	IssueCritical IssueCategory = "critical"
	IssueWarning  IssueCategory = "warning"
	IssueInfo     IssueCategory = "info"
)

// Level is shared by issue impact and recommendation priority
type Level string

const (
	LevelHigh   Level = "high"
	LevelMedium Level = "medium"
	LevelLow    Level = "low"
)

type SEOIssue struct {
	Category    IssueCategory `json:"category"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Impact      Level         `json:"impact"`
	Suggestion  string        `json:"suggestion"`
}

type Recommendation struct {
	Priority        Level  `json:"priority"`
	Category        string `json:"category"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	EstimatedImpact string `json:"estimatedImpact"`
}

// TechnicalResult pairs the penalty-based technical score with the itemised issue list
type TechnicalResult struct {
	Score  int        `json:"score"`
	Issues []SEOIssue `json:"issues"`
}

type PageSpeedResult struct {
	Score int `json:"score"`
}

type PageSpeedData struct {
	Desktop PageSpeedResult `json:"desktop"`
	Mobile  PageSpeedResult `json:"mobile"`
}

// Audit is the aggregate record the SWOT rules run over
type Audit struct {
	URL             string           `json:"url,omitempty"`
	OverallScore    int              `json:"overallScore"`
	PageSpeedData   PageSpeedData    `json:"pageSpeedData"`
	TechnicalSEO    TechnicalFacts   `json:"technicalSeo"`
	TechnicalScore  int              `json:"technicalScore"`
	SEOIssues       []SEOIssue       `json:"seoIssues"`
	Recommendations []Recommendation `json:"recommendations"`
	Content         *ContentAnalysis `json:"content,omitempty"`
}

type GeneratedBy string

const (
	GeneratedByAI    GeneratedBy = "ai"
	GeneratedByRules GeneratedBy = "rules"
)

// SwotAnalysis holds the four SWOT categories. The rule engine guarantees each has at least one entry.
type SwotAnalysis struct {
	Strengths     []string    `json:"strengths"`
	Weaknesses    []string    `json:"weaknesses"`
	Opportunities []string    `json:"opportunities"`
	Threats       []string    `json:"threats"`
	GeneratedBy   GeneratedBy `json:"generatedBy"`
}
