package middleware

import "github.com/gofiber/fiber/v2"

// Noop is a pass-through middleware, useful as a stand-in when an optional
// middleware (e.g. metrics) is disabled.
func Noop() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Next()
	}
}
