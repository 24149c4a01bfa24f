package chart

import (
	"fmt"
	"math"
	"strconv"

	"survey-dashboard/app/models"
	"survey-dashboard/app/score"
)

const semesterBins = 8

// DefaultCategories are shown when the server sends no category list.
var DefaultCategories = []string{"Information", "Communication", "Content", "Security", "Problem Solving"}

var programPalette = []string{
	"#4361ee", "#3a0ca3", "#7209b7", "#f72585",
	"#4cc9f0", "#560bad", "#b5179e", "#4895ef",
	"#3f37c9", "#3a0ca3", "#4361ee",
}

const (
	semesterFill   = "rgba(67, 97, 238, 0.7)"
	semesterBorder = "rgba(67, 97, 238, 1)"
	gaugeTrack     = "#f0f0f0"
	trendColor     = "#4361ee"
)

// TooltipLabel is the category bar hover text.
func TooltipLabel(v float64) string {
	return fmt.Sprintf("Skor: %.2f/5.0", v)
}

func CategoryBar(stats *models.AggregateStats) Config {
	labels := stats.Categories
	if len(labels) == 0 {
		labels = DefaultCategories
	}
	values := make([]float64, len(labels))
	copy(values, stats.Averages)
	colors := score.Colors(values)
	tips := make([]string, len(values))
	for i, v := range values {
		tips[i] = TooltipLabel(v)
	}

	return Config{
		Type: "bar",
		Data: Data{
			Labels: labels,
			Datasets: []Dataset{{
				Label:           "Rata-rata Skor",
				Data:            values,
				BackgroundColor: colors,
				BorderColor:     colors,
				BorderWidth:     1,
				BorderRadius:    5,
			}},
		},
		Options: Options{
			Responsive: true,
			Plugins:    Plugins{Tooltip: Tooltip{Enabled: true, Labels: tips}},
			Scales: map[string]Axis{
				"y": {BeginAtZero: true, Max: float(score.MaxScore), Title: &AxisTitle{Display: true, Text: "Skor (1-5)"}},
			},
		},
	}
}

// LegendEntry is one line of the program legend rendered next to the doughnut.
type LegendEntry struct {
	Label   string `json:"label"`
	Count   int    `json:"count"`
	Percent int    `json:"percent"`
	Color   string `json:"color"`
}

func ProgramDoughnut(stats *models.AggregateStats) (Config, []LegendEntry) {
	n := len(stats.ProgramStudies)
	counts := make([]int, n)
	copy(counts, stats.ProgramCounts)

	values := make([]float64, n)
	colors := make([]string, n)
	for i, c := range counts {
		values[i] = float64(c)
		colors[i] = programPalette[i%len(programPalette)]
	}

	pcts := Percentages(counts)
	legend := make([]LegendEntry, n)
	for i, label := range stats.ProgramStudies {
		legend[i] = LegendEntry{Label: label, Count: counts[i], Percent: pcts[i], Color: colors[i]}
	}

	cfg := Config{
		Type: "doughnut",
		Data: Data{
			Labels: stats.ProgramStudies,
			Datasets: []Dataset{{
				Data:            values,
				BackgroundColor: colors,
				BorderColor:     []string{"#fff"},
				BorderWidth:     1,
			}},
		},
		Options: Options{
			Responsive: true,
			Cutout:     "60%",
			Plugins:    Plugins{Legend: Legend{Display: true, Position: "right"}, Tooltip: Tooltip{Enabled: true}},
		},
	}
	return cfg, legend
}

// Percentages returns round(100*count/sum) per entry; all zero when sum is 0.
func Percentages(counts []int) []int {
	out := make([]int, len(counts))
	sum := 0
	for _, c := range counts {
		sum += c
	}
	if sum == 0 {
		return out
	}
	for i, c := range counts {
		out[i] = int(math.Round(100 * float64(c) / float64(sum)))
	}
	return out
}

func SemesterHistogram(stats *models.AggregateStats) Config {
	labels := make([]string, semesterBins)
	values := make([]float64, semesterBins)
	fill := make([]string, semesterBins)
	border := make([]string, semesterBins)
	for i := 0; i < semesterBins; i++ {
		labels[i] = "Sem " + strconv.Itoa(i+1)
		if i < len(stats.SemesterDistribution) {
			values[i] = float64(stats.SemesterDistribution[i])
		}
		fill[i] = semesterFill
		border[i] = semesterBorder
	}

	return Config{
		Type: "bar",
		Data: Data{
			Labels: labels,
			Datasets: []Dataset{{
				Label:           "Jumlah Mahasiswa",
				Data:            values,
				BackgroundColor: fill,
				BorderColor:     border,
				BorderWidth:     1,
				BorderRadius:    5,
			}},
		},
		Options: Options{
			Responsive: true,
			Plugins:    Plugins{Tooltip: Tooltip{Enabled: true}},
			Scales: map[string]Axis{
				"y": {BeginAtZero: true, Title: &AxisTitle{Display: true, Text: "Jumlah Mahasiswa"}},
			},
		},
	}
}

// GaugeView is the text drawn in the middle of the half circle.
type GaugeView struct {
	Value string               `json:"value"`
	Class score.Classification `json:"class"`
}

func Gauge(overall float64) (Config, GaugeView) {
	filled := math.Max(0, math.Min(overall, score.MaxScore))
	class := score.Classify(overall)

	cfg := Config{
		Type: "doughnut",
		Data: Data{
			Datasets: []Dataset{{
				Data:            []float64{filled, score.MaxScore - filled},
				BackgroundColor: []string{class.Color, gaugeTrack},
				BorderWidth:     0,
				Circumference:   180,
				Rotation:        270,
			}},
		},
		Options: Options{
			Responsive: true,
			Cutout:     "75%",
		},
	}
	return cfg, GaugeView{Value: score.FormatGauge(overall), Class: class}
}

func TrendLine(stats *models.AggregateStats) Config {
	n := len(stats.TrendLabels)
	if len(stats.TrendData) < n {
		n = len(stats.TrendData)
	}
	labels := make([]string, n)
	values := make([]float64, n)
	copy(labels, stats.TrendLabels[:n])
	copy(values, stats.TrendData[:n])

	return Config{
		Type: "line",
		Data: Data{
			Labels: labels,
			Datasets: []Dataset{{
				Label:           "Rata-rata Skor",
				Data:            values,
				BackgroundColor: []string{trendColor},
				BorderColor:     []string{trendColor},
				BorderWidth:     2,
				Tension:         0.3,
			}},
		},
		Options: Options{
			Responsive: true,
			Plugins:    Plugins{Tooltip: Tooltip{Enabled: true}},
			Scales: map[string]Axis{
				"y": {Min: float(1), Max: float(score.MaxScore)},
			},
		},
	}
}
