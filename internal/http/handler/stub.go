package handler

import "github.com/gofiber/fiber/v2"

// RegisterStubRoutes serves a stand-in for the backend root endpoint so the
// page can be run locally without the real backend.
func RegisterStubRoutes(app *fiber.App) {
	app.Get("/", StubRoot())
}

// StubRoot answers the backend root endpoint.
func StubRoot() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Hello World"})
	}
}
