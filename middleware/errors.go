package middleware

import (
	"errors"
	"log"
	"runtime/debug"

	"ledgerline/config"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler is the single responder every failed handler funnels into.
// Declared status codes map straight to HTTP; anything else is a 500.
// The stack is exposed only outside production.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	} else if err != nil {
		message = err.Error()
	}

	if code >= fiber.StatusInternalServerError {
		log.Printf("Error %d on %s %s: %v", code, c.Method(), c.Path(), err)
	}

	body := fiber.Map{
		"success": false,
		"message": message,
	}
	if config.AppConfig != nil && config.AppConfig.Env != "production" {
		body["stack"] = string(debug.Stack())
	}

	return c.Status(code).JSON(body)
}
