package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"survey-dashboard/app/client"
	"survey-dashboard/app/intake"
	"survey-dashboard/app/service"
	"survey-dashboard/app/workspace"
	"survey-dashboard/config"
)

func SetupRoutes(app *fiber.App, api client.SurveyAPI, views *config.Views, log *zap.Logger) {
	validate := validator.New()

	// Services
	store := workspace.NewStore(api, views, validate, log)
	intakeService := service.NewIntakeService(api, intake.New(validate), views.Programs, log)
	adminService := service.NewAdminService(api, store, views, log)

	app.Get("/healthz", service.Healthz)

	// Form data diri responden
	app.Get("/", intakeService.ShowForm)
	app.Post("/", intakeService.Submit)
	app.Post("/validate", intakeService.Validate)
	app.Get("/check-nim/:nim", intakeService.CheckNIM)

	// Halaman admin
	admin := app.Group("/admin", adminService.Workspace)
	admin.Get("/", adminService.Index)

	admin.Get("/search/results", adminService.SearchResults)
	admin.Get("/search/workbook", adminService.Workbook)
	admin.Get("/export/:format", adminService.Export)
	admin.Get("/charts/data", adminService.ChartData)

	admin.Post("/questions", adminService.SaveQuestion)
	admin.Get("/questions/:id/edit", adminService.EditQuestion)
	admin.Post("/questions/:id/delete", adminService.DeleteQuestion)

	admin.Get("/:section", adminService.Section)
}
