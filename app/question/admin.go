// Package question implements the survey question admin screen: list,
// a create/edit modal, and confirmed deletes.
package question

import (
	"context"
	"fmt"
	"html/template"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"survey-dashboard/app/client"
	"survey-dashboard/app/models"
)

const (
	MsgInvalidForm  = "Lengkapi kode, kategori, dan teks soal"
	MsgSaveFailed   = "Gagal menyimpan soal"
	MsgDeleteFailed = "Gagal menghapus soal"
	MsgLoadFailed   = "Gagal memuat daftar soal"
	MsgNotFound     = "Soal tidak ditemukan"
)

// Form is the modal's content. ID zero means the modal creates a question.
type Form struct {
	ID       int    `form:"id"`
	Code     string `form:"code" validate:"required,max=20"`
	Category string `form:"category" validate:"required,max=50"`
	Text     string `form:"text" validate:"required,max=500"`
}

func (f Form) Input() models.QuestionInput {
	return models.QuestionInput{
		Code:     strings.TrimSpace(f.Code),
		Category: strings.TrimSpace(f.Category),
		Text:     strings.TrimSpace(f.Text),
	}
}

type Modal struct {
	Open  bool
	Title string
	Form  Form
	Alert string
}

// Row is a listed question plus its pre-escaped delete callback.
type Row struct {
	models.Question
	ConfirmPrompt string
	ConfirmCall   template.JS
}

type Action string

const (
	ActionNone   Action = ""
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Result is what the screen shows after an operation.
type Result struct {
	Action  Action
	OK      bool
	Modal   Modal
	Rows    []Row
	Alert   string
	Confirm *Row // set when a delete still waits for confirmation
}

type Admin struct {
	api      client.SurveyAPI
	validate *validator.Validate
	log      *zap.Logger

	mu      sync.Mutex
	rows    []Row
	modal   Modal
	listErr string
}

func NewAdmin(api client.SurveyAPI, validate *validator.Validate, log *zap.Logger) *Admin {
	if validate == nil {
		validate = validator.New()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Admin{api: api, validate: validate, log: log}
}

// EscapeQuotes makes text safe inside a single- or double-quoted JS string
// embedded in an HTML attribute.
func EscapeQuotes(s string) string {
	return template.JSEscapeString(s)
}

func DeletePrompt(q models.Question) string {
	return fmt.Sprintf("Hapus soal %s: \"%s\"?", q.Code, q.Text)
}

func newRow(q models.Question) Row {
	prompt := DeletePrompt(q)
	return Row{
		Question:      q,
		ConfirmPrompt: prompt,
		ConfirmCall:   template.JS("return confirm('" + EscapeQuotes(prompt) + "')"),
	}
}

// Reload fetches the full question list.
func (a *Admin) Reload(ctx context.Context) ([]Row, error) {
	qs, err := a.api.ListQuestions(ctx)
	a.mu.Lock()
	defer a.mu.Unlock()
	if err != nil {
		a.log.Warn("list questions failed", zap.Error(err))
		a.listErr = client.Message(err, MsgLoadFailed)
		return nil, err
	}
	rows := make([]Row, len(qs))
	for i, q := range qs {
		rows[i] = newRow(q)
	}
	a.rows = rows
	a.listErr = ""
	return rows, nil
}

func (a *Admin) Rows() []Row {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]Row(nil), a.rows...)
}

func (a *Admin) ListError() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.listErr
}

func (a *Admin) Modal() Modal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.modal
}

func (a *Admin) OpenCreate() Modal {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.modal = Modal{Open: true, Title: "Tambah Soal"}
	return a.modal
}

// OpenEdit loads a listed question into the modal.
func (a *Admin) OpenEdit(id int) (Modal, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, r := range a.rows {
		if r.ID == id {
			a.modal = Modal{
				Open:  true,
				Title: "Edit Soal",
				Form:  Form{ID: r.ID, Code: r.Code, Category: r.Category, Text: r.Text},
			}
			return a.modal, true
		}
	}
	return a.modal, false
}

func (a *Admin) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.modal = Modal{}
}

// Submit sends the modal: create when no id is loaded, update otherwise.
// On failure the modal stays open with the entered values.
func (a *Admin) Submit(ctx context.Context, f Form) Result {
	action := ActionCreate
	title := "Tambah Soal"
	if f.ID != 0 {
		action = ActionUpdate
		title = "Edit Soal"
	}
	keepOpen := func(alert string) Result {
		a.mu.Lock()
		defer a.mu.Unlock()
		a.modal = Modal{Open: true, Title: title, Form: f, Alert: alert}
		return Result{Action: action, Modal: a.modal, Rows: append([]Row(nil), a.rows...), Alert: alert}
	}

	f.Code, f.Category, f.Text = strings.TrimSpace(f.Code), strings.TrimSpace(f.Category), strings.TrimSpace(f.Text)
	if err := a.validate.Struct(f); err != nil {
		return keepOpen(MsgInvalidForm)
	}

	var err error
	if action == ActionCreate {
		err = a.api.CreateQuestion(ctx, f.Input())
	} else {
		err = a.api.UpdateQuestion(ctx, f.ID, f.Input())
	}
	if err != nil {
		a.log.Warn("save question failed", zap.String("action", string(action)), zap.Error(err))
		return keepOpen(client.Message(err, MsgSaveFailed))
	}

	a.Close()
	rows, err := a.Reload(ctx)
	res := Result{Action: action, OK: true, Rows: rows}
	if err != nil {
		res.Alert = a.ListError()
	}
	return res
}

// Delete removes a question only when confirmed. Without confirmation it
// returns the prompt naming the question and sends nothing.
func (a *Admin) Delete(ctx context.Context, id int, confirmed bool) Result {
	row, ok := a.find(id)
	if !ok {
		if _, err := a.Reload(ctx); err == nil {
			row, ok = a.find(id)
		}
	}
	if !ok {
		return Result{Action: ActionDelete, Rows: a.Rows(), Alert: MsgNotFound}
	}
	if !confirmed {
		return Result{Action: ActionDelete, Rows: a.Rows(), Confirm: &row}
	}

	if err := a.api.DeleteQuestion(ctx, id); err != nil {
		a.log.Warn("delete question failed", zap.Int("id", id), zap.Error(err))
		return Result{Action: ActionDelete, Rows: a.Rows(), Alert: client.Message(err, MsgDeleteFailed)}
	}
	rows, err := a.Reload(ctx)
	res := Result{Action: ActionDelete, OK: true, Rows: rows}
	if err != nil {
		res.Alert = a.ListError()
	}
	return res
}

func (a *Admin) find(id int) (Row, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, r := range a.rows {
		if r.ID == id {
			return r, true
		}
	}
	return Row{}, false
}
