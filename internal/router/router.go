package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aQ-codes/expense-tracker-backend/internal/auth"
	"github.com/aQ-codes/expense-tracker-backend/internal/category"
	"github.com/aQ-codes/expense-tracker-backend/internal/expense"
	"github.com/aQ-codes/expense-tracker-backend/internal/report"
)

// Router wires the feature handlers into the fiber app.
type Router struct {
	Auth       *auth.Handler
	Categories *category.Handler
	Expenses   *expense.Handler
	Reports    *report.Handler
	AuthMW     fiber.Handler
	AuthLimit  fiber.Handler
}

func (r *Router) Register(app *fiber.App) {
	health := func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	}
	app.Get("/health", health)
	app.Get("/api/health", health)

	authRoutes := app.Group("/api/auth")
	if r.AuthLimit != nil {
		authRoutes.Post("/signup", r.AuthLimit, r.Auth.Signup)
		authRoutes.Post("/login", r.AuthLimit, r.Auth.Login)
	} else {
		authRoutes.Post("/signup", r.Auth.Signup)
		authRoutes.Post("/login", r.Auth.Login)
	}
	authRoutes.Post("/logout", r.Auth.Logout)
	authRoutes.Get("/profile", r.AuthMW, r.Auth.Profile)

	// Alias kept for clients that fetch the profile under /api/user.
	app.Get("/api/user/profile", r.AuthMW, r.Auth.Profile)

	categories := app.Group("/api/categories", r.AuthMW)
	categories.Get("/", r.Categories.List)
	categories.Post("/", r.Categories.Create)
	categories.Put("/:id", r.Categories.Update)
	categories.Delete("/:id", r.Categories.Delete)

	expenses := app.Group("/api/expenses", r.AuthMW)
	expenses.Get("/stats", r.Expenses.Stats)
	expenses.Get("/", r.Expenses.List)
	expenses.Post("/", r.Expenses.Create)
	expenses.Get("/:id", r.Expenses.GetOne)
	expenses.Put("/:id", r.Expenses.Update)
	expenses.Delete("/:id", r.Expenses.Delete)

	reports := app.Group("/api", r.AuthMW)
	reports.Get("/monthly-breakdown", r.Reports.Monthly)
	reports.Get("/monthly-breakdown/export", r.Reports.ExportCSV)
	reports.Get("/monthly-breakdown/pdf", r.Reports.ExportPDF)
	reports.Get("/dashboard", r.Reports.Dashboard)
}
