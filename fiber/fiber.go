package fiber

import (
	"errors"
	"time"

	gofiber "github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"survey-dashboard/utils"
)

const (
	HeaderRequestID = "X-Request-ID"
	LocalRequestID  = "request_id"
)

// SetupFiber membuat app fiber dengan error handler JSON dan log request.
func SetupFiber(log *zap.Logger) *gofiber.App {
	if log == nil {
		log = zap.NewNop()
	}
	app := gofiber.New(gofiber.Config{
		AppName:      "survey-dashboard",
		ErrorHandler: ErrorHandler(log),
	})
	app.Use(RequestLogger(log))
	return app
}

// ErrorHandler menulis error handler sebagai {"error": "..."}.
func ErrorHandler(log *zap.Logger) gofiber.ErrorHandler {
	return func(c *gofiber.Ctx, err error) error {
		code := gofiber.StatusInternalServerError
		msg := "Internal server error"

		var fe *gofiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			msg = fe.Message
		} else {
			log.Error("unhandled error",
				zap.String("path", c.Path()),
				zap.Any("request_id", c.Locals(LocalRequestID)),
				zap.Error(err))
		}
		return c.Status(code).JSON(gofiber.Map{"error": msg})
	}
}

// RequestLogger memberi setiap request id lalu mencatat hasilnya.
func RequestLogger(log *zap.Logger) gofiber.Handler {
	return func(c *gofiber.Ctx) error {
		start := time.Now()

		reqID := c.Get(HeaderRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Locals(LocalRequestID, reqID)
		c.Set(HeaderRequestID, reqID)
		c.SetUserContext(utils.WithRequestID(c.UserContext(), reqID))

		err := c.Next()
		if err != nil {
			// biar status di log sama dengan yang dikirim ke client
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(gofiber.StatusInternalServerError)
			}
		}

		log.Info("request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", reqID))
		return nil
	}
}
