package chart

import (
	"go.uber.org/zap"

	"survey-dashboard/app/models"
	"survey-dashboard/app/score"
)

// Summary feeds the stat cards above the charts.
type Summary struct {
	TotalRespondents int    `json:"totalRespondents"`
	TotalSurveys     int    `json:"totalSurveys"`
	OverallScore     string `json:"overallScore"`
}

type Improvement struct {
	Topic string               `json:"topic"`
	Score string               `json:"score"`
	Class score.Classification `json:"class"`
}

// View is one presented AggregateStats payload.
type View struct {
	Gen          uint64           `json:"gen"`
	Summary      Summary          `json:"summary"`
	Charts       map[Slot]*Handle `json:"charts"`
	Legend       []LegendEntry    `json:"legend,omitempty"`
	Gauge        *GaugeView       `json:"gauge,omitempty"`
	Improvements []Improvement    `json:"improvements,omitempty"`
}

type Presenter struct {
	reg   *Registry
	slots []Slot
	log   *zap.Logger
}

// NewPresenter renders only the given slots; the set comes from the view
// configuration of the hosting section.
func NewPresenter(reg *Registry, slots []Slot, log *zap.Logger) *Presenter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Presenter{reg: reg, slots: slots, log: log}
}

func (p *Presenter) Begin() uint64 { return p.reg.Begin() }

func (p *Presenter) Registry() *Registry { return p.reg }

// Present builds every configured chart and swaps it into its slot. It
// returns false when a newer load started meanwhile.
func (p *Presenter) Present(gen uint64, stats *models.AggregateStats) (*View, bool) {
	if stats == nil {
		stats = &models.AggregateStats{}
	}
	if p.reg.Stale(gen) {
		p.log.Debug("dropping stale chart load", zap.Uint64("gen", gen))
		return nil, false
	}

	view := &View{
		Gen: gen,
		Summary: Summary{
			TotalRespondents: stats.TotalRespondents,
			TotalSurveys:     stats.TotalSurveys,
			OverallScore:     score.FormatGauge(stats.OverallAverage),
		},
		Charts: make(map[Slot]*Handle, len(p.slots)),
	}
	for _, area := range stats.ImprovementAreas {
		view.Improvements = append(view.Improvements, Improvement{
			Topic: area.Topic,
			Score: score.FormatGauge(area.Score),
			Class: score.Classify(area.Score),
		})
	}

	for _, slot := range p.slots {
		var cfg Config
		switch slot {
		case SlotCategory:
			cfg = CategoryBar(stats)
		case SlotProgram:
			cfg, view.Legend = ProgramDoughnut(stats)
		case SlotSemester:
			cfg = SemesterHistogram(stats)
		case SlotGauge:
			var g GaugeView
			cfg, g = Gauge(stats.OverallAverage)
			view.Gauge = &g
		case SlotTrend:
			cfg = TrendLine(stats)
		default:
			continue
		}
		h, ok := p.reg.Replace(slot, gen, cfg)
		if !ok {
			return nil, false
		}
		view.Charts[slot] = h
	}
	return view, true
}

// PresentEmpty is the fallback after a failed load: zero-filled charts.
func (p *Presenter) PresentEmpty(gen uint64) (*View, bool) {
	return p.Present(gen, &models.AggregateStats{
		Categories:           DefaultCategories,
		Averages:             make([]float64, len(DefaultCategories)),
		SemesterDistribution: make([]int, semesterBins),
	})
}
