// Package score holds the single tier classification used by every chart,
// badge and export cell that displays a survey score.
package score

import "fmt"

// Thresholds on the 1-5 scale. Boundary values belong to the upper tier.
const (
	MediumThreshold = 2.4
	HighThreshold   = 3.8
	MaxScore        = 5.0
)

type Tier string

const (
	TierLow    Tier = "low"
	TierMedium Tier = "medium"
	TierHigh   Tier = "high"
)

// Classification is everything a view needs to paint a score.
type Classification struct {
	Tier       Tier   `json:"tier"`
	Color      string `json:"color"`
	BadgeClass string `json:"badgeClass"`
	Label      string `json:"label"`
}

var classifications = map[Tier]Classification{
	TierLow:    {Tier: TierLow, Color: "#FF5252", BadgeClass: "badge-low", Label: "Rendah"},
	TierMedium: {Tier: TierMedium, Color: "#FFC107", BadgeClass: "badge-medium", Label: "Sedang"},
	TierHigh:   {Tier: TierHigh, Color: "#4CAF50", BadgeClass: "badge-high", Label: "Tinggi"},
}

// TierOf maps a score to its tier. Values outside [0,5] are not rejected.
func TierOf(s float64) Tier {
	switch {
	case s >= HighThreshold:
		return TierHigh
	case s >= MediumThreshold:
		return TierMedium
	default:
		return TierLow
	}
}

func Classify(s float64) Classification {
	return classifications[TierOf(s)]
}

func Color(s float64) string {
	return Classify(s).Color
}

// Colors classifies a whole series, e.g. the category bar backgrounds.
func Colors(scores []float64) []string {
	out := make([]string, len(scores))
	for i, s := range scores {
		out[i] = Color(s)
	}
	return out
}

// FormatBadge renders the search-table badge text.
func FormatBadge(s float64) string {
	return fmt.Sprintf("%.2f / 5.0", s)
}

func FormatGauge(s float64) string {
	return fmt.Sprintf("%.1f", s)
}
