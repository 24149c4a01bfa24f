package chart

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"survey-dashboard/app/models"
	"survey-dashboard/app/score"
)

func sampleStats() *models.AggregateStats {
	return &models.AggregateStats{
		Categories:           []string{"Information", "Communication", "Content"},
		Averages:             []float64{2.3, 2.4, 3.8},
		OverallAverage:       3.14,
		ProgramStudies:       []string{"TI", "SI", "MI"},
		ProgramCounts:        []int{1, 1, 1},
		SemesterDistribution: []int{4, 0, 2},
		TrendLabels:          []string{"Jan", "Feb", "Mar"},
		TrendData:            []float64{3.1, 3.3},
		TotalRespondents:     3,
		TotalSurveys:         3,
		ImprovementAreas:     []models.ImprovementArea{{Topic: "Security", Score: 2.1}},
	}
}

func TestCategoryBarColors(t *testing.T) {
	cfg := CategoryBar(sampleStats())
	ds := cfg.Data.Datasets[0]
	assert.Equal(t, []string{"#FF5252", "#FFC107", "#4CAF50"}, ds.BackgroundColor)
	assert.Equal(t, 5.0, *cfg.Options.Scales["y"].Max)
}

func TestCategoryBarTooltipLabels(t *testing.T) {
	cfg := CategoryBar(sampleStats())
	labels := cfg.Options.Plugins.Tooltip.Labels
	require.Len(t, labels, len(cfg.Data.Labels))
	for i, v := range cfg.Data.Datasets[0].Data {
		assert.Equal(t, TooltipLabel(v), labels[i])
	}
	assert.Equal(t, "Skor: 3.80/5.0", TooltipLabel(3.8))
}

func TestCategoryBarEmptyInput(t *testing.T) {
	cfg := CategoryBar(&models.AggregateStats{})
	assert.Equal(t, DefaultCategories, cfg.Data.Labels)
	assert.Equal(t, make([]float64, len(DefaultCategories)), cfg.Data.Datasets[0].Data)
}

func TestPercentagesSumToHundred(t *testing.T) {
	for _, counts := range [][]int{
		{1, 1, 1},
		{10, 20, 30, 40},
		{7},
		{3, 0, 5, 9, 1},
	} {
		sum := 0
		for _, p := range Percentages(counts) {
			sum += p
		}
		assert.InDelta(t, 100, sum, float64(len(counts)), "counts %v", counts)
	}
	assert.Equal(t, []int{0, 0}, Percentages([]int{0, 0}))
	assert.Empty(t, Percentages(nil))
}

func TestProgramDoughnutLegend(t *testing.T) {
	stats := &models.AggregateStats{ProgramStudies: []string{"TI", "SI"}, ProgramCounts: []int{3}}
	cfg, legend := ProgramDoughnut(stats)
	require.Len(t, legend, 2)
	assert.Equal(t, 100, legend[0].Percent)
	assert.Equal(t, 0, legend[1].Count)
	assert.Equal(t, []float64{3, 0}, cfg.Data.Datasets[0].Data)
}

func TestSemesterHistogramAlwaysEightBins(t *testing.T) {
	cfg := SemesterHistogram(sampleStats())
	assert.Len(t, cfg.Data.Labels, 8)
	assert.Equal(t, "Sem 8", cfg.Data.Labels[7])
	assert.Equal(t, []float64{4, 0, 2, 0, 0, 0, 0, 0}, cfg.Data.Datasets[0].Data)

	over := SemesterHistogram(&models.AggregateStats{SemesterDistribution: []int{1, 1, 1, 1, 1, 1, 1, 1, 9}})
	assert.Len(t, over.Data.Datasets[0].Data, 8)
}

func TestGauge(t *testing.T) {
	cfg, view := Gauge(3.9)
	ds := cfg.Data.Datasets[0]
	assert.Equal(t, 180, ds.Circumference)
	assert.InDeltaSlice(t, []float64{3.9, 1.1}, ds.Data, 1e-9)
	assert.Equal(t, score.TierHigh, view.Class.Tier)
	assert.Equal(t, "3.9", view.Value)

	cfg, view = Gauge(6)
	assert.Equal(t, []float64{5, 0}, cfg.Data.Datasets[0].Data)
	assert.Equal(t, "6.0", view.Value)
}

func TestTrendLineFixedScale(t *testing.T) {
	cfg := TrendLine(sampleStats())
	assert.Equal(t, []string{"Jan", "Feb"}, cfg.Data.Labels)
	assert.Equal(t, 1.0, *cfg.Options.Scales["y"].Min)
	assert.Equal(t, 5.0, *cfg.Options.Scales["y"].Max)

	empty := TrendLine(&models.AggregateStats{})
	assert.Empty(t, empty.Data.Labels)
	assert.NotNil(t, empty.Data.Datasets[0].Data)
}

func TestRegistryReplaceDestroysPrevious(t *testing.T) {
	var destroyed []*Handle
	reg := NewRegistry(func(h *Handle) { destroyed = append(destroyed, h) })

	gen := reg.Begin()
	first, ok := reg.Replace(SlotGauge, gen, Config{Type: "doughnut"})
	require.True(t, ok)

	gen = reg.Begin()
	second, ok := reg.Replace(SlotGauge, gen, Config{Type: "doughnut"})
	require.True(t, ok)

	assert.True(t, first.Destroyed())
	assert.False(t, second.Destroyed())
	assert.Equal(t, []*Handle{first}, destroyed)
	assert.Same(t, second, reg.Get(SlotGauge))
	assert.Equal(t, 1, reg.Live())

	reg.Release(SlotGauge)
	assert.True(t, second.Destroyed())
	assert.Equal(t, 0, reg.Live())
}

func TestRegistryDropsStaleGeneration(t *testing.T) {
	reg := NewRegistry(nil)
	older := reg.Begin()
	newer := reg.Begin()

	_, ok := reg.Replace(SlotTrend, newer, Config{Type: "line"})
	require.True(t, ok)
	_, ok = reg.Replace(SlotTrend, older, Config{Type: "bar"})
	assert.False(t, ok)
	assert.Equal(t, "line", reg.Get(SlotTrend).Config.Type)
}

func TestPresenterOneHandlePerSlot(t *testing.T) {
	reg := NewRegistry(nil)
	p := NewPresenter(reg, AllSlots, nil)

	v1, ok := p.Present(p.Begin(), sampleStats())
	require.True(t, ok)
	v2, ok := p.Present(p.Begin(), sampleStats())
	require.True(t, ok)

	assert.Equal(t, len(AllSlots), reg.Live())
	for _, slot := range AllSlots {
		assert.True(t, v1.Charts[slot].Destroyed(), "slot %s", slot)
		assert.False(t, v2.Charts[slot].Destroyed(), "slot %s", slot)
	}
	assert.Equal(t, "3.1", v2.Summary.OverallScore)
	require.Len(t, v2.Improvements, 1)
	assert.Equal(t, score.TierLow, v2.Improvements[0].Class.Tier)
	require.NotNil(t, v2.Gauge)
	assert.Len(t, v2.Legend, 3)
}

func TestPresenterStaleLoad(t *testing.T) {
	p := NewPresenter(NewRegistry(nil), AllSlots, nil)
	slow := p.Begin()
	fast := p.Begin()

	_, ok := p.Present(fast, sampleStats())
	require.True(t, ok)
	view, ok := p.Present(slow, &models.AggregateStats{})
	assert.False(t, ok)
	assert.Nil(t, view)
}

func TestPresenterCapabilities(t *testing.T) {
	reg := NewRegistry(nil)
	p := NewPresenter(reg, []Slot{SlotGauge}, nil)
	view, ok := p.PresentEmpty(p.Begin())
	require.True(t, ok)
	assert.Len(t, view.Charts, 1)
	assert.Equal(t, "0.0", view.Gauge.Value)
	assert.Nil(t, reg.Get(SlotCategory))
}

func TestConfigJSON(t *testing.T) {
	cfg, _ := Gauge(2)
	raw, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"circumference":180`)
	assert.Contains(t, string(raw), `"cutout":"75%"`)
}
