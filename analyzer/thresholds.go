package analyzer

// Thresholds shared by the technical score, the issue list, the recommendations and the SWOT rules.
const (
	TitleMinLength       = 30
	TitleMaxLength       = 60
	DescriptionMinLength = 120
	DescriptionMaxLength = 160

	MissingTitlePenalty       = 15
	MissingDescriptionPenalty = 10
	MissingH1Penalty          = 10
	MissingAltPenalty         = 5

	PageSpeedGood = 90
	PageSpeedFair = 70
	PageSpeedPoor = 50

	StrongOverallScore = 80
	WeakOverallScore   = 60

	MinH2Count      = 3
	FewIssuesMax    = 5
	ManyIssuesAbove = 10
)

// Content scoring buckets
const (
	PrimaryDensityMin   = 0.5
	PrimaryDensityMax   = 2.5
	PrimaryDensityLimit = 4.0

	SecondaryDensityMin = 0.3
	SecondaryDensityMax = 1.5

	PrimaryOptimalPoints   = 40
	PrimaryLowPoints       = 20
	PrimaryHighPoints      = 15
	SecondaryOptimalPoints = 5
)

// Alt text rules
const (
	MinAltLength = 10
	MaxAltLength = 125
)

type bucket struct {
	min    int
	points int
}

// Buckets are checked in order; the first whose min is reached wins.
var (
	readabilityBuckets = []bucket{{60, 30}, {30, 20}, {10, 10}}
	lengthBuckets      = []bucket{{1500, 30}, {800, 20}, {300, 10}, {100, 5}}
)

func bucketPoints(value int, buckets []bucket) int {
	for _, b := range buckets {
		if value >= b.min {
			return b.points
		}
	}
	return 0
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
