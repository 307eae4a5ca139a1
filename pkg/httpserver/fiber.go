package httpserver

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const bodyLimit = 1024 * 1024

type Options struct {
	AppName      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	// Ready reports readiness on /manage/ready; nil means always ready.
	Ready func() bool
}

func InitFiberServer(opts Options) *fiber.App {
	s := fiber.New(fiber.Config{
		AppName:      opts.AppName,
		// handlers keep path params as map keys and stored values
		Immutable:    true,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		BodyLimit:    bodyLimit,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		IdleTimeout:  opts.IdleTimeout,
		ErrorHandler: errorHandler,
	})

	s.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))
	s.Use(cors.New())

	healthConfig := healthcheck.Config{
		LivenessEndpoint:  "/manage/health",
		ReadinessEndpoint: "/manage/ready",
	}
	if opts.Ready != nil {
		healthConfig.ReadinessProbe = func(*fiber.Ctx) bool {
			return opts.Ready()
		}
	}
	s.Use(healthcheck.New(healthConfig))

	return s
}

// errorHandler renders unhandled errors in the same {"error": ...} shape the
// handlers use.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Internal server error"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		msg = fiberErr.Message
	}

	return c.Status(code).JSON(fiber.Map{"error": msg})
}
