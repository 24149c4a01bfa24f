package views

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"survey-dashboard/app/chart"
	"survey-dashboard/app/intake"
	"survey-dashboard/app/models"
	"survey-dashboard/app/question"
	"survey-dashboard/app/router"
	"survey-dashboard/app/search"
	"survey-dashboard/app/workspace"
	"survey-dashboard/config"
)

func render(t *testing.T, name string, data interface{}) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, name, data))
	return buf.String()
}

func TestIntakeShowsMessagesAndBusyButton(t *testing.T) {
	res := intake.New(nil).Check(models.IntakeForm{NIM: "1234567", Nama: "Budi"}, intake.ModeSubmit)
	html := render(t, "intake", IntakePage{Result: res, Programs: []string{"Sistem Informasi"}, Semesters: search.SemesterOptions})
	assert.Contains(t, html, "NIM harus minimal 8 digit")
	assert.Contains(t, html, "Pilih program studi")
	assert.Contains(t, html, "Sistem Informasi")
	assert.Contains(t, html, intake.LabelSubmit)

	ok := intake.New(nil).Check(models.IntakeForm{NIM: "12345678", Nama: "Budi", Prodi: "SI", Semester: "2"}, intake.ModeSubmit)
	html = render(t, "intake", IntakePage{Result: ok})
	assert.Contains(t, html, `type="submit" disabled>`)
	assert.Contains(t, html, intake.LabelBusy)
}

func TestAdminRendersOnlyActiveSection(t *testing.T) {
	r, err := router.New([]router.Section{router.SectionDashboard, router.SectionData, router.SectionQuestions},
		map[router.Section]string{router.SectionData: "Data Responden"}, router.SectionQuestions, nil)
	require.NoError(t, err)

	q := models.Question{ID: 7, Code: "Q7", Category: "Security", Text: `Apa itu "phishing"?`}
	page := AdminPage{Page: workspace.Page{
		Sections:  r.Views(),
		Active:    r.Active(),
		Questions: []question.Row{{Question: q, ConfirmPrompt: question.DeletePrompt(q)}},
	}}
	html := render(t, "admin", page)
	assert.Contains(t, html, `id="questions-section" class="active"`)
	assert.Contains(t, html, `id="data-section" class="" hidden`)
	assert.Contains(t, html, "/admin/questions/7/delete")
	assert.Contains(t, html, "Data Responden")
	assert.NotContains(t, html, "search-form")
}

func TestAdminRendersCharts(t *testing.T) {
	views, err := config.LoadViews("")
	require.NoError(t, err)
	dash, _ := views.Section("dashboard")

	p := chart.NewPresenter(chart.NewRegistry(nil), []chart.Slot{chart.SlotGauge, chart.SlotProgram}, nil)
	view, ok := p.Present(p.Begin(), &models.AggregateStats{OverallAverage: 4.2, ProgramStudies: []string{"SI"}, ProgramCounts: []int{3}})
	require.True(t, ok)

	r, _ := router.New([]router.Section{router.SectionDashboard}, nil, router.SectionDashboard, nil)
	html := render(t, "admin", AdminPage{Page: workspace.Page{
		Sections:   r.Views(),
		Active:     router.SectionDashboard,
		Capability: dash,
		Charts:     view,
	}})
	assert.Contains(t, html, `<canvas id="gaugeChart"`)
	assert.Contains(t, html, "Tinggi")
	assert.Contains(t, html, "SI: 3 (100%)")
	assert.Contains(t, html, `id="chart-configs"`)
	assert.Contains(t, html, `<div id="chart-error" class="alert" hidden></div>`)
	assert.Contains(t, html, "if (!view || !view.charts) return false;")
	assert.Contains(t, html, ".catch(function () { showError(")
	assert.Contains(t, html, "callbacks = { label:")

	html = render(t, "admin", AdminPage{Page: workspace.Page{
		Sections:   r.Views(),
		Active:     router.SectionDashboard,
		Capability: dash,
		Charts:     view,
		ChartError: "Gagal memuat data statistik",
	}})
	assert.Contains(t, html, `<div id="chart-error" class="alert">Gagal memuat data statistik</div>`)
}

func TestResultsFragment(t *testing.T) {
	html := render(t, "results", ResultsView{Panel: search.Panel{State: search.StateError, Error: "Error saat mencari data"}})
	assert.Contains(t, html, "Error saat mencari data")
	assert.NotContains(t, html, "/admin/export/")

	rows := search.Rows([]models.SearchResultRow{{Nama: "Ani", NIM: "12345678", TotalScore: 1.5}})
	html = render(t, "results", ResultsView{Panel: search.Panel{State: search.StateResults, Count: 1, Rows: rows}})
	assert.Contains(t, html, "badge-low")
	assert.Contains(t, html, "1.50 / 5.0")
}

func TestResultsExportLinksFollowFilters(t *testing.T) {
	panel := search.Panel{
		State:   search.StateEmpty,
		Filters: models.SearchFilters{Q: "budi", Prodi: "SI", Semester: "all"},
	}
	html := render(t, "results", ResultsView{Panel: panel, Export: true})
	assert.Contains(t, html, `href="/admin/export/csv?prodi=SI&amp;q=budi"`)
	assert.Contains(t, html, `href="/admin/export/excel?prodi=SI&amp;q=budi"`)
	assert.Contains(t, html, `href="/admin/search/workbook?prodi=SI&amp;q=budi"`)

	html = render(t, "results", ResultsView{Panel: search.Panel{State: search.StateEmpty}, Export: true})
	assert.Contains(t, html, `href="/admin/export/csv"`)
}

func TestConfirmPage(t *testing.T) {
	q := models.Question{ID: 3, Text: "Soal tiga"}
	html := render(t, "confirm", ConfirmPage{Row: question.Row{Question: q, ConfirmPrompt: question.DeletePrompt(q)}})
	assert.Contains(t, html, "Soal tiga")
	assert.Contains(t, html, `name="confirmed" value="1"`)
}

func TestUnknownTemplate(t *testing.T) {
	assert.Error(t, Render(&bytes.Buffer{}, "nope", nil))
}
