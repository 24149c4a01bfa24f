// Package search runs the filtered respondent search shown in the data
// section and keeps the panel that displays its outcome.
package search

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"survey-dashboard/app/client"
	"survey-dashboard/app/models"
	"survey-dashboard/app/score"
)

type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateEmpty   State = "empty"
	StateResults State = "results"
	StateError   State = "error"
)

const (
	MsgEmpty        = "Tidak ada data yang ditemukan"
	MsgSearchFailed = "Error saat mencari data"
)

// SemesterOptions are fixed; the program list comes from the server.
var SemesterOptions = []string{"1", "2", "3", "4", "5", "6", "7", "8"}

type Row struct {
	models.SearchResultRow
	Badge string
	Class score.Classification
}

type Panel struct {
	Gen     uint64
	State   State
	Filters models.SearchFilters
	Count   int
	Rows    []Row
	Error   string
}

type Controller struct {
	api client.SurveyAPI
	log *zap.Logger

	mu      sync.Mutex
	latest  uint64
	panel   Panel
	options []string
}

func NewController(api client.SurveyAPI, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{api: api, log: log, panel: Panel{State: StateIdle}}
}

// Search puts the panel in its loading state, queries the backend and
// publishes the outcome. A search overtaken by a newer one does not publish;
// the caller then gets whatever the panel currently shows.
func (c *Controller) Search(ctx context.Context, f models.SearchFilters) Panel {
	gen := c.begin(f)

	resp, err := c.api.GetSearchData(ctx, f)
	next := Panel{Gen: gen, Filters: f}
	switch {
	case err != nil:
		c.log.Warn("search failed", zap.Error(err))
		next.State = StateError
		next.Error = errorText(err)
	case len(resp.Data) == 0:
		next.State = StateEmpty
	default:
		next.State = StateResults
		next.Count = resp.Count()
		next.Rows = Rows(resp.Data)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen < c.latest {
		return c.panel
	}
	if err == nil && len(resp.ProdiList) > 0 {
		c.options = append([]string(nil), resp.ProdiList...)
	}
	c.panel = next
	return next
}

func (c *Controller) begin(f models.SearchFilters) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.latest++
	c.panel = Panel{Gen: c.latest, State: StateLoading, Filters: f}
	return c.latest
}

func (c *Controller) Current() Panel {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.panel
}

// ProgramOptions is the last prodi_list received.
func (c *Controller) ProgramOptions() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.options...)
}

// Rows classifies every result for display. Scores arrive on the 1-5 scale
// and are shown as is.
func Rows(data []models.SearchResultRow) []Row {
	out := make([]Row, len(data))
	for i, r := range data {
		out[i] = Row{
			SearchResultRow: r,
			Badge:           score.FormatBadge(r.TotalScore),
			Class:           score.Classify(r.TotalScore),
		}
	}
	return out
}

func errorText(err error) string {
	var appErr *client.AppError
	if errors.As(err, &appErr) {
		return appErr.Msg
	}
	return MsgSearchFailed
}
