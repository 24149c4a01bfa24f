// Package workspace holds the admin page state of one browser view: the
// active section, its charts, the search panel and the question list.
package workspace

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"survey-dashboard/app/chart"
	"survey-dashboard/app/client"
	"survey-dashboard/app/models"
	"survey-dashboard/app/question"
	"survey-dashboard/app/router"
	"survey-dashboard/app/score"
	"survey-dashboard/app/search"
	"survey-dashboard/config"
)

const MsgStatsFailed = "Gagal memuat data statistik"

type TopRow struct {
	models.TopPerformer
	Badge string
	Class score.Classification
}

// Page is a consistent snapshot for rendering.
type Page struct {
	ID              uuid.UUID
	Sections        []router.SectionView
	Active          router.Section
	Capability      config.SectionView
	Charts          *chart.View
	ChartError      string
	TopPerformers   []TopRow
	Search          search.Panel
	ProgramOptions  []string
	SemesterOptions []string
	Questions       []question.Row
	QuestionError   string
	Modal           question.Modal
}

type Workspace struct {
	ID        uuid.UUID
	Router    *router.Router
	Search    *search.Controller
	Questions *question.Admin

	api   client.SurveyAPI
	views *config.Views
	log   *zap.Logger

	mu         sync.Mutex
	presenters map[router.Section]*chart.Presenter
	charts     map[router.Section]*chart.View
	chartErr   map[router.Section]string
	top        []TopRow
	loaded     map[router.Section]bool
	lastUsed   time.Time
}

func New(id uuid.UUID, api client.SurveyAPI, views *config.Views, validate *validator.Validate, log *zap.Logger) (*Workspace, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("view", id.String()))

	order := make([]router.Section, len(views.Sections))
	titles := make(map[router.Section]string, len(views.Sections))
	for i, s := range views.Sections {
		order[i] = router.Section(s.Name)
		titles[order[i]] = s.Title
	}
	r, err := router.New(order, titles, router.Section(views.Initial), log)
	if err != nil {
		return nil, fmt.Errorf("workspace router: %w", err)
	}

	w := &Workspace{
		ID:         id,
		Router:     r,
		Search:     search.NewController(api, log),
		Questions:  question.NewAdmin(api, validate, log),
		api:        api,
		views:      views,
		log:        log,
		presenters: make(map[router.Section]*chart.Presenter),
		charts:     make(map[router.Section]*chart.View),
		chartErr:   make(map[router.Section]string),
		loaded:     make(map[router.Section]bool),
		lastUsed:   time.Now(),
	}

	for _, s := range views.Sections {
		sec := router.Section(s.Name)
		if len(s.Charts) > 0 {
			slots := make([]chart.Slot, len(s.Charts))
			for i, c := range s.Charts {
				slots[i] = chart.Slot(c)
			}
			reg := chart.NewRegistry(func(h *chart.Handle) {
				log.Debug("chart destroyed", zap.String("slot", string(h.Slot)), zap.Uint64("gen", h.Gen))
			})
			w.presenters[sec] = chart.NewPresenter(reg, slots, log)
			w.on(sec, func(ctx context.Context) error { return w.LoadStats(ctx, sec) })
			continue
		}
		switch sec {
		case router.SectionData:
			w.on(sec, func(ctx context.Context) error {
				panel := w.Search.Search(ctx, w.Search.Current().Filters)
				if panel.State == search.StateError {
					return fmt.Errorf("search: %s", panel.Error)
				}
				return nil
			})
		case router.SectionQuestions:
			w.on(sec, func(ctx context.Context) error {
				_, err := w.Questions.Reload(ctx)
				return err
			})
		}
	}
	return w, nil
}

func (w *Workspace) on(sec router.Section, fn router.EnterFunc) {
	w.Router.OnEnter(sec, func(ctx context.Context) error {
		err := fn(ctx)
		w.mu.Lock()
		w.loaded[sec] = true
		w.mu.Unlock()
		return err
	})
}

// EnsureLoaded runs the active section's hook when it never ran, which is
// the case for the configured initial section on the first page view.
func (w *Workspace) EnsureLoaded(ctx context.Context) error {
	active := w.Router.Active()
	if active == "" {
		return nil
	}
	w.mu.Lock()
	loaded := w.loaded[active]
	w.mu.Unlock()
	if loaded {
		return nil
	}
	return w.Router.Reload(ctx)
}

// LoadStats fetches aggregate statistics and the top performers together
// and presents them in the section's charts. A failed stats load falls back
// to zero-filled charts.
func (w *Workspace) LoadStats(ctx context.Context, sec router.Section) error {
	w.mu.Lock()
	p, ok := w.presenters[sec]
	w.mu.Unlock()
	if !ok {
		return nil
	}
	gen := p.Begin()

	var (
		stats *models.AggregateStats
		top   []models.TopPerformer
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = w.api.GetChartData(gctx)
		return err
	})
	g.Go(func() error {
		list, err := w.api.GetTopPerformers(gctx)
		if err != nil {
			// daftar top performer opsional, chart tetap jalan
			w.log.Warn("top performers unavailable", zap.Error(err))
			return nil
		}
		top = list
		return nil
	})
	err := g.Wait()

	var view *chart.View
	var fresh bool
	if err != nil {
		w.log.Warn("chart data load failed", zap.String("section", string(sec)), zap.Error(err))
		view, fresh = p.PresentEmpty(gen)
	} else {
		view, fresh = p.Present(gen, stats)
	}
	if !fresh {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.charts[sec] = view
	if err != nil {
		w.chartErr[sec] = client.Message(err, MsgStatsFailed)
	} else {
		delete(w.chartErr, sec)
		w.top = topRows(top)
	}
	return err
}

func topRows(list []models.TopPerformer) []TopRow {
	out := make([]TopRow, len(list))
	for i, t := range list {
		out[i] = TopRow{TopPerformer: t, Badge: score.FormatBadge(t.Score), Class: score.Classify(t.Score)}
	}
	return out
}

// Charts returns the last presented view of a chart section.
func (w *Workspace) Charts(sec router.Section) (*chart.View, string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.charts[sec], w.chartErr[sec]
}

func (w *Workspace) Snapshot() Page {
	active := w.Router.Active()
	capability, _ := w.views.Section(string(active))

	w.mu.Lock()
	page := Page{
		ID:            w.ID,
		Active:        active,
		Capability:    capability,
		Charts:        w.charts[active],
		ChartError:    w.chartErr[active],
		TopPerformers: append([]TopRow(nil), w.top...),
	}
	w.mu.Unlock()

	page.Sections = w.Router.Views()
	page.Search = w.Search.Current()
	page.ProgramOptions = w.Search.ProgramOptions()
	page.SemesterOptions = search.SemesterOptions
	page.Questions = w.Questions.Rows()
	page.QuestionError = w.Questions.ListError()
	page.Modal = w.Questions.Modal()
	return page
}

// Close releases every chart handle still held and reports how many were live.
func (w *Workspace) Close() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	released := 0
	for _, p := range w.presenters {
		reg := p.Registry()
		released += reg.Live()
		for _, slot := range chart.AllSlots {
			reg.Release(slot)
		}
	}
	w.charts = make(map[router.Section]*chart.View)
	w.loaded = make(map[router.Section]bool)
	return released
}

func (w *Workspace) touch(now time.Time) {
	w.mu.Lock()
	w.lastUsed = now
	w.mu.Unlock()
}

func (w *Workspace) idleSince(now time.Time) time.Duration {
	w.mu.Lock()
	defer w.mu.Unlock()
	return now.Sub(w.lastUsed)
}
