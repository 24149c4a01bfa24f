package service

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"survey-dashboard/app/client"
	"survey-dashboard/app/intake"
	"survey-dashboard/app/models"
	"survey-dashboard/app/search"
	"survey-dashboard/views"
)

const MsgCheckNIMFailed = "Tidak dapat memeriksa NIM"

type IntakeService struct {
	api       client.SurveyAPI
	validator *intake.Validator
	programs  []string
	log       *zap.Logger
}

func NewIntakeService(api client.SurveyAPI, v *intake.Validator, programs []string, log *zap.Logger) *IntakeService {
	if log == nil {
		log = zap.NewNop()
	}
	return &IntakeService{api: api, validator: v, programs: programs, log: log}
}

func (s *IntakeService) page(res intake.Result, flash string) views.IntakePage {
	return views.IntakePage{Result: res, Programs: s.programs, Semesters: search.SemesterOptions, Flash: flash}
}

// ShowForm menampilkan form data diri kosong.
func (s *IntakeService) ShowForm(c *fiber.Ctx) error {
	res := s.validator.Check(models.IntakeForm{}, intake.ModeLive)
	return render(c, fiber.StatusOK, "intake", s.page(res, ""))
}

// Submit memvalidasi form lalu meneruskannya ke backend survei.
func (s *IntakeService) Submit(c *fiber.Ctx) error {
	// 1. Parse form
	var form models.IntakeForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	// 2. Validasi sisi server, sama dengan validasi di browser
	res := s.validator.Check(form, intake.ModeSubmit)
	if !res.OK {
		return render(c, fiber.StatusUnprocessableEntity, "intake", s.page(res, "Harap lengkapi semua data!"))
	}

	// 3. Kirim ke backend, backend yang menentukan NIM unik atau tidak
	next, err := s.api.SubmitIntake(c.UserContext(), res.Form)
	if err != nil {
		s.log.Warn("intake rejected", zap.String("nim", res.Form.NIM), zap.Error(err))
		res.Busy = false
		return render(c, fiber.StatusOK, "intake", s.page(res, client.Message(err, client.ErrIntakeRejected.Msg)))
	}

	return c.Redirect(next, fiber.StatusSeeOther)
}

// Validate dipanggil script form setiap kali field berubah. Field yang
// masih kosong tidak diberi pesan.
func (s *IntakeService) Validate(c *fiber.Ctx) error {
	var form models.IntakeForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	res := s.validator.Check(form, intake.ModeLive)
	fields := make(fiber.Map, len(intake.FieldOrder))
	for _, f := range intake.FieldOrder {
		st := res.Fields[f]
		fields[string(f)] = fiber.Map{"valid": st.Valid, "message": st.Message, "class": st.Class()}
	}
	return c.JSON(fiber.Map{"ok": res.OK, "nim": res.Form.NIM, "fields": fields})
}

// CheckNIM meneruskan cek ketersediaan NIM ke backend.
func (s *IntakeService) CheckNIM(c *fiber.Ctx) error {
	nim := intake.DigitsOnly(c.Params("nim"))
	if nim == "" {
		return c.Status(400).JSON(fiber.Map{"error": "NIM harus berisi angka saja (0-9)"})
	}

	out, err := s.api.CheckNIM(c.UserContext(), nim)
	if err != nil {
		s.log.Warn("check nim failed", zap.Error(err))
		return c.Status(502).JSON(fiber.Map{"error": client.Message(err, MsgCheckNIMFailed)})
	}
	return c.JSON(out)
}
