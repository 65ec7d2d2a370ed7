package handler

import (
	"github.com/gofiber/fiber/v2"

	"homepage/internal/page"
	"homepage/internal/view"
)

const homeTitle = "Home"

// RegisterRoutes attaches the page and probe routes to app.
func RegisterRoutes(app *fiber.App, home *page.Home) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/home", fiber.StatusFound)
	})
	app.Get("/home", HomePage(home))
	app.Get("/health", HealthCheck(home))
	app.Get("/healthz", LivenessProbe())
}

// HomePage renders the home page. The first request mounts the page, which
// starts the backend fetch; until it completes the page shows its loading text.
//
// @Summary Home page
// @Produce html
// @Success 200 {string} string "HTML document"
// @Router /home [get]
func HomePage(home *page.Home) fiber.Handler {
	return func(c *fiber.Ctx) error {
		home.Mount(c.UserContext())

		c.Type("html", "utf-8")
		return view.Page(homeTitle, home.Component()).Render(c.UserContext(), c.Response().BodyWriter())
	}
}

// HealthCheck reports readiness from the page state. A failed backend fetch is
// terminal for the page, so it is reported as unavailable.
//
// @Summary Readiness probe
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} errorPayload
// @Router /health [get]
func HealthCheck(home *page.Home) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s := home.State()
		if s.Phase == page.Failed {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "backend unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"page":   s.Phase.String(),
		})
	}
}

// LivenessProbe always answers 200.
//
// @Summary Liveness probe
// @Success 200
// @Router /healthz [get]
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}
