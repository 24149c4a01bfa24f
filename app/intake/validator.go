// Package intake checks the respondent form shown before the survey.
package intake

import (
	"errors"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"survey-dashboard/app/models"
)

type Field string

const (
	FieldNIM      Field = "nim"
	FieldNama     Field = "nama"
	FieldProdi    Field = "prodi"
	FieldSemester Field = "semester"
)

// FieldOrder is also the focus order when several fields are invalid.
var FieldOrder = []Field{FieldNIM, FieldNama, FieldProdi, FieldSemester}

type Mode int

const (
	// ModeLive is used while typing: empty fields stay quiet.
	ModeLive Mode = iota
	ModeSubmit
)

const (
	LabelSubmit = "Mulai Survei"
	LabelBusy   = "Memproses..."
)

// pesan per field + tag validator
var messages = map[Field]map[string]string{
	FieldNIM: {
		"required": "❌ NIM wajib diisi",
		"number":   "❌ NIM hanya boleh berisi angka (0-9)",
		"min":      "❌ NIM harus minimal 8 digit",
		"max":      "❌ NIM maksimal 20 digit",
	},
	FieldNama: {
		"required": "❌ Nama wajib diisi",
		"min":      "❌ Nama minimal 3 karakter",
		"max":      "❌ Nama maksimal 100 karakter",
	},
	FieldProdi: {
		"required": "❌ Pilih program studi",
	},
	FieldSemester: {
		"required": "❌ Pilih semester",
		"oneof":    "❌ Semester harus antara 1-8",
	},
}

var okMessages = map[Field]string{
	FieldNIM:  "✅ Format NIM valid",
	FieldNama: "✅ Nama valid",
}

// struct field name -> form field
var structFields = map[string]Field{
	"NIM":      FieldNIM,
	"Nama":     FieldNama,
	"Prodi":    FieldProdi,
	"Semester": FieldSemester,
}

type FieldState struct {
	Valid   bool
	Message string
}

// Class is the input's css state; quiet fields get none.
func (s FieldState) Class() string {
	switch {
	case s.Message == "":
		return ""
	case s.Valid:
		return "success"
	default:
		return "error"
	}
}

// Result is what the form renders after a check.
type Result struct {
	Form   models.IntakeForm
	Fields map[Field]FieldState
	// Focus is the first invalid field on submit, empty otherwise.
	Focus Field
	OK    bool
	Busy  bool
}

// State looks a field up by its form name.
func (r Result) State(name string) FieldState {
	return r.Fields[Field(name)]
}

func (r Result) ButtonLabel() string {
	if r.Busy {
		return LabelBusy
	}
	return LabelSubmit
}

type Validator struct {
	validate *validator.Validate
}

func New(v *validator.Validate) *Validator {
	if v == nil {
		v = validator.New()
	}
	return &Validator{validate: v}
}

// Normalize strips non-digits from the NIM and trims the rest.
func Normalize(f models.IntakeForm) models.IntakeForm {
	return models.IntakeForm{
		NIM:      DigitsOnly(f.NIM),
		Nama:     strings.TrimSpace(f.Nama),
		Prodi:    strings.TrimSpace(f.Prodi),
		Semester: strings.TrimSpace(f.Semester),
	}
}

func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) && r < unicode.MaxASCII {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (f Field) value(form models.IntakeForm) string {
	switch f {
	case FieldNIM:
		return form.NIM
	case FieldNama:
		return form.Nama
	case FieldProdi:
		return form.Prodi
	default:
		return form.Semester
	}
}

// Check validates the form. Submission is allowed only when every field
// passes; in submit mode the first failing field gets the focus.
//
// The NIM is validated as typed, so a stray letter makes it invalid, while
// the returned form already carries the stripped value for redisplay.
func (v *Validator) Check(raw models.IntakeForm, mode Mode) Result {
	form := Normalize(raw)
	res := Result{Form: form, Fields: make(map[Field]FieldState, len(FieldOrder))}

	for _, f := range FieldOrder {
		res.Fields[f] = FieldState{Valid: true, Message: okMessages[f]}
	}

	typed := form
	typed.NIM = strings.TrimSpace(raw.NIM)

	var verrs validator.ValidationErrors
	if err := v.validate.Struct(typed); err != nil && errors.As(err, &verrs) {
		for _, fe := range verrs {
			field, ok := structFields[fe.StructField()]
			if !ok {
				continue
			}
			if !res.Fields[field].Valid {
				continue
			}
			res.Fields[field] = FieldState{Message: messageFor(field, fe.Tag())}
		}
	}

	res.OK = true
	for _, f := range FieldOrder {
		st := res.Fields[f]
		if !st.Valid {
			res.OK = false
			if mode == ModeSubmit && res.Focus == "" {
				res.Focus = f
			}
		}
		if mode == ModeLive && f.value(typed) == "" {
			st.Message = ""
			res.Fields[f] = st
		}
	}
	res.Busy = mode == ModeSubmit && res.OK
	return res
}

func messageFor(f Field, tag string) string {
	if m, ok := messages[f][tag]; ok {
		return m
	}
	return messages[f]["required"]
}
