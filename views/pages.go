package views

import (
	"html/template"

	"survey-dashboard/app/client"
	"survey-dashboard/app/intake"
	"survey-dashboard/app/question"
	"survey-dashboard/app/search"
	"survey-dashboard/app/workspace"
)

type IntakePage struct {
	Result    intake.Result
	Programs  []string
	Semesters []string
	Flash     string
}

type AdminPage struct {
	workspace.Page
	Alert string
}

// Results membungkus panel pencarian bersama link export untuk filter yang sama.
func (p AdminPage) Results() ResultsView {
	return ResultsView{Panel: p.Search, Export: p.Capability.Export}
}

// ResultsView dirender utuh ulang setiap pencarian, jadi link export selalu
// mengikuti filter terakhir.
type ResultsView struct {
	Panel  search.Panel
	Export bool
}

func (r ResultsView) query() string {
	if q := client.EncodeFilters(r.Panel.Filters).Encode(); q != "" {
		return "?" + q
	}
	return ""
}

func (r ResultsView) ExportURL(format string) template.URL {
	return template.URL("/admin/export/" + format + r.query())
}

func (r ResultsView) WorkbookURL() template.URL {
	return template.URL("/admin/search/workbook" + r.query())
}

type ConfirmPage struct {
	Row question.Row
}
