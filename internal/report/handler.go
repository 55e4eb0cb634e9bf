package report

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/aQ-codes/expense-tracker-backend/internal/auth"
	"github.com/aQ-codes/expense-tracker-backend/internal/format"
	"github.com/aQ-codes/expense-tracker-backend/internal/respond"
	"github.com/aQ-codes/expense-tracker-backend/internal/validate"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// Handler serves the monthly breakdown, its exports and the dashboard.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func parseMonthQuery(c *fiber.Ctx) (month, year int, errs validate.Errors) {
	errs = validate.Errors{}
	month = c.QueryInt("month")
	year = c.QueryInt("year")
	errs.Range("month", month, 1, 12, "Month")
	errs.Range("year", year, 1970, 2100, "Year")
	return month, year, errs
}

// Monthly returns the full breakdown for one calendar month.
func (h *Handler) Monthly(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	month, year, errs := parseMonthQuery(c)
	if !errs.Ok() {
		return respond.Invalid(c, errs)
	}

	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", defaultLimit)
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	breakdown, total, err := h.service.MonthlyBreakdown(userContext(c), userID, month, year, page, limit)
	if err != nil {
		return err
	}
	return respond.Page(c, "Monthly breakdown fetched successfully", breakdown,
		respond.NewPagination(page, limit, total))
}

// ExportCSV downloads the month's expenses as a CSV statement, newest
// first. Every field is quoted, including the header.
func (h *Handler) ExportCSV(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	month, year, errs := parseMonthQuery(c)
	if !errs.Ok() {
		return respond.Invalid(c, errs)
	}

	all, err := h.service.MonthExpenses(userContext(c), userID, month, year)
	if err != nil {
		return err
	}

	lines := make([]string, 0, len(all)+1)
	lines = append(lines, format.CSVLine("Title", "Amount", "Category", "Date"))
	for i := range all {
		e := &all[i]
		lines = append(lines, format.CSVLine(
			e.Title,
			format.Amount(e.Amount),
			e.CategoryName,
			format.InputDate(e.SpentOn),
		))
	}

	filename := fmt.Sprintf("expenses-%04d-%02d.csv", year, month)
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, "attachment; filename="+filename)
	return c.Status(fiber.StatusOK).SendString(format.CSVDocument(lines))
}

// ExportPDF downloads the month's summary and category distribution as a
// PDF report.
func (h *Handler) ExportPDF(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	month, year, errs := parseMonthQuery(c)
	if !errs.Ok() {
		return respond.Invalid(c, errs)
	}

	sum, dist, err := h.service.MonthSummary(userContext(c), userID, month, year)
	if err != nil {
		return err
	}

	doc, err := BuildMonthlyPDF(month, year, sum, dist)
	if err != nil {
		return err
	}

	filename := fmt.Sprintf("expense-report-%04d-%02d.pdf", year, month)
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, "attachment; filename="+filename)
	return c.Status(fiber.StatusOK).Send(doc)
}

// Dashboard returns the landing-page aggregate.
func (h *Handler) Dashboard(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	dashboard, err := h.service.Dashboard(userContext(c), userID, time.Now())
	if err != nil {
		return err
	}
	return respond.OK(c, fiber.StatusOK, "Dashboard fetched successfully", dashboard)
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
