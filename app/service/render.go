package service

import (
	"github.com/gofiber/fiber/v2"

	"survey-dashboard/views"
)

func render(c *fiber.Ctx, status int, name string, data interface{}) error {
	c.Status(status)
	c.Type("html", "utf-8")
	return views.Render(c, name, data)
}

// Healthz dipakai untuk cek liveness.
func Healthz(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
