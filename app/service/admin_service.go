package service

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"survey-dashboard/app/client"
	"survey-dashboard/app/models"
	"survey-dashboard/app/question"
	"survey-dashboard/app/router"
	"survey-dashboard/app/search"
	"survey-dashboard/app/workspace"
	"survey-dashboard/config"
	"survey-dashboard/views"
)

const LocalWorkspace = "workspace"

var exportFormats = map[string]bool{"csv": true, "excel": true}

type AdminService struct {
	api   client.SurveyAPI
	store *workspace.Store
	views *config.Views
	log   *zap.Logger
}

func NewAdminService(api client.SurveyAPI, store *workspace.Store, v *config.Views, log *zap.Logger) *AdminService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AdminService{api: api, store: store, views: v, log: log}
}

// Workspace middleware: ambil state halaman admin dari cookie, buat baru kalau belum ada.
func (s *AdminService) Workspace(c *fiber.Ctx) error {
	ws, created, err := s.store.Get(c.Cookies(workspace.CookieName))
	if err != nil {
		return err
	}
	if created {
		c.Cookie(&fiber.Cookie{
			Name:     workspace.CookieName,
			Value:    ws.ID.String(),
			Path:     "/admin",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Expires:  time.Now().Add(workspace.DefaultIdleTTL),
		})
	}
	c.Locals(LocalWorkspace, ws)
	return c.Next()
}

func current(c *fiber.Ctx) (*workspace.Workspace, error) {
	ws, ok := c.Locals(LocalWorkspace).(*workspace.Workspace)
	if !ok {
		return nil, errors.New("workspace missing in context")
	}
	return ws, nil
}

func (s *AdminService) renderPage(c *fiber.Ctx, ws *workspace.Workspace, alert string) error {
	return render(c, fiber.StatusOK, "admin", views.AdminPage{Page: ws.Snapshot(), Alert: alert})
}

// Index mengarahkan ke section awal dari konfigurasi.
func (s *AdminService) Index(c *fiber.Ctx) error {
	ws, err := current(c)
	if err != nil {
		return err
	}
	if active := ws.Router.Active(); active != "" {
		return c.Redirect("/admin/"+string(active), fiber.StatusSeeOther)
	}
	return s.renderPage(c, ws, "")
}

// Section mengaktifkan satu section lalu merender halaman admin.
func (s *AdminService) Section(c *fiber.Ctx) error {
	ws, err := current(c)
	if err != nil {
		return err
	}

	// 1. Validasi nama section
	sec, ok := ws.Router.Parse(c.Params("section"))
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "Section tidak ditemukan")
	}

	// 2. Aktifkan. Error widget sudah disimpan di workspace, cukup dicatat
	ctx := c.UserContext()
	if _, err := ws.Router.Activate(ctx, sec); err != nil {
		s.log.Warn("section load failed", zap.String("section", string(sec)), zap.Error(err))
	}
	if err := ws.EnsureLoaded(ctx); err != nil {
		s.log.Warn("section load failed", zap.String("section", string(sec)), zap.Error(err))
	}

	// 3. Modal soal dibuka/ditutup lewat query
	if sec == router.SectionQuestions {
		switch c.Query("modal") {
		case "new":
			ws.Questions.OpenCreate()
		case "close":
			ws.Questions.Close()
		}
	}

	return s.renderPage(c, ws, "")
}

func parseFilters(c *fiber.Ctx) (models.SearchFilters, error) {
	var f models.SearchFilters
	if err := c.QueryParser(&f); err != nil {
		return f, fiber.NewError(fiber.StatusBadRequest, "Filter tidak valid")
	}
	return f, nil
}

// SearchResults menjalankan pencarian. Request dari script mendapat
// potongan HTML hasil, selain itu diarahkan kembali ke section data.
func (s *AdminService) SearchResults(c *fiber.Ctx) error {
	ws, err := current(c)
	if err != nil {
		return err
	}
	f, err := parseFilters(c)
	if err != nil {
		return err
	}

	panel := ws.Search.Search(c.UserContext(), f)
	if c.Get("X-Fragment") != "" {
		data, _ := s.views.Section(string(router.SectionData))
		return render(c, fiber.StatusOK, "results", views.ResultsView{Panel: panel, Export: data.Export})
	}
	return c.Redirect("/admin/"+string(router.SectionData), fiber.StatusSeeOther)
}

// Workbook mengunduh hasil pencarian sebagai XLSX.
func (s *AdminService) Workbook(c *fiber.Ctx) error {
	f, err := parseFilters(c)
	if err != nil {
		return err
	}

	resp, err := s.api.GetSearchData(c.UserContext(), f)
	if err != nil {
		s.log.Warn("workbook search failed", zap.Error(err))
		return fiber.NewError(fiber.StatusBadGateway, client.Message(err, search.MsgSearchFailed))
	}

	book, err := search.Workbook(search.Rows(resp.Data))
	if err != nil {
		return err
	}
	defer book.Close()

	c.Attachment("survey_data_" + time.Now().Format("20060102_150405") + ".xlsx")
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return book.Write(c)
}

// Export mengarahkan browser ke endpoint export milik backend.
func (s *AdminService) Export(c *fiber.Ctx) error {
	format := c.Params("format")
	if !exportFormats[format] {
		return fiber.NewError(fiber.StatusBadRequest, "Format export tidak dikenal")
	}
	if !s.exportEnabled() {
		return fiber.NewError(fiber.StatusNotFound, "Export tidak tersedia")
	}
	f, err := parseFilters(c)
	if err != nil {
		return err
	}
	return c.Redirect(s.api.ExportURL(format, f), fiber.StatusFound)
}

func (s *AdminService) exportEnabled() bool {
	for _, sec := range s.views.Sections {
		if sec.Export {
			return true
		}
	}
	return false
}

// ChartData memuat ulang statistik untuk section chart yang aktif.
func (s *AdminService) ChartData(c *fiber.Ctx) error {
	ws, err := current(c)
	if err != nil {
		return err
	}
	sec := ws.Router.Active()
	if sv, ok := s.views.Section(string(sec)); !ok || len(sv.Charts) == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Section aktif tidak memiliki grafik")
	}

	if err := ws.LoadStats(c.UserContext(), sec); err != nil {
		s.log.Warn("chart refresh failed", zap.Error(err))
	}
	view, msg := ws.Charts(sec)
	if view == nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": msg})
	}
	if msg != "" {
		return c.JSON(fiber.Map{"charts": view.Charts, "summary": view.Summary, "error": msg})
	}
	return c.JSON(view)
}

// SaveQuestion membuat atau mengubah soal dari modal.
func (s *AdminService) SaveQuestion(c *fiber.Ctx) error {
	ws, err := current(c)
	if err != nil {
		return err
	}
	var form question.Form
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if _, err := ws.Router.Activate(c.UserContext(), router.SectionQuestions); err != nil {
		s.log.Warn("question list load failed", zap.Error(err))
	}
	res := ws.Questions.Submit(c.UserContext(), form)
	if res.OK && res.Alert == "" {
		return c.Redirect("/admin/"+string(router.SectionQuestions), fiber.StatusSeeOther)
	}
	return s.renderPage(c, ws, res.Alert)
}

// EditQuestion membuka modal dengan soal yang dipilih.
func (s *AdminService) EditQuestion(c *fiber.Ctx) error {
	ws, err := current(c)
	if err != nil {
		return err
	}
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "ID soal tidak valid")
	}

	if _, err := ws.Router.Activate(c.UserContext(), router.SectionQuestions); err != nil {
		s.log.Warn("question list load failed", zap.Error(err))
	}
	if err := ws.EnsureLoaded(c.UserContext()); err != nil {
		s.log.Warn("question list load failed", zap.Error(err))
	}
	if _, ok := ws.Questions.OpenEdit(id); !ok {
		return s.renderPage(c, ws, question.MsgNotFound)
	}
	return s.renderPage(c, ws, "")
}

// DeleteQuestion menghapus soal setelah dikonfirmasi.
func (s *AdminService) DeleteQuestion(c *fiber.Ctx) error {
	ws, err := current(c)
	if err != nil {
		return err
	}
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "ID soal tidak valid")
	}

	if _, err := ws.Router.Activate(c.UserContext(), router.SectionQuestions); err != nil {
		s.log.Warn("question list load failed", zap.Error(err))
	}
	res := ws.Questions.Delete(c.UserContext(), id, c.FormValue("confirmed") == "1")
	if res.Confirm != nil {
		return render(c, fiber.StatusOK, "confirm", views.ConfirmPage{Row: *res.Confirm})
	}
	if res.OK && res.Alert == "" {
		return c.Redirect("/admin/"+string(router.SectionQuestions), fiber.StatusSeeOther)
	}
	return s.renderPage(c, ws, res.Alert)
}
