package expense

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/aQ-codes/expense-tracker-backend/internal/auth"
	"github.com/aQ-codes/expense-tracker-backend/internal/category"
	"github.com/aQ-codes/expense-tracker-backend/internal/database"
	"github.com/aQ-codes/expense-tracker-backend/internal/format"
	"github.com/aQ-codes/expense-tracker-backend/internal/respond"
	"github.com/aQ-codes/expense-tracker-backend/internal/validate"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// Handler serves the expense CRUD and stats endpoints.
type Handler struct {
	expenses   Repository
	categories category.Repository
}

func NewHandler(expenses Repository, categories category.Repository) *Handler {
	return &Handler{expenses: expenses, categories: categories}
}

type createRequest struct {
	Title      string  `json:"title"`
	Amount     float64 `json:"amount"`
	CategoryID string  `json:"categoryId"`
	Date       string  `json:"date"`
}

func (r createRequest) validate() (time.Time, validate.Errors) {
	errs := validate.Errors{}
	errs.Length("title", r.Title, "Title", 2, 100)
	errs.Positive("amount", r.Amount, "Amount")
	errs.Required("categoryId", r.CategoryID, "Category")

	spentOn, err := format.ParseInputDate(r.Date)
	if err != nil {
		errs.Add("date", "Date must be YYYY-MM-DD")
	}
	return spentOn, errs
}

type updateRequest struct {
	Title      *string  `json:"title"`
	Amount     *float64 `json:"amount"`
	CategoryID *string  `json:"categoryId"`
	Date       *string  `json:"date"`
}

// Create records a new expense after checking the category is visible to
// the user.
func (h *Handler) Create(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	var body createRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	spentOn, errs := body.validate()
	if !errs.Ok() {
		return respond.Invalid(c, errs)
	}

	ctx := userContext(c)
	cat, err := h.categories.GetVisibleByID(ctx, userID, body.CategoryID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Category not found")
		}
		return err
	}

	e := &Expense{
		UserID:       userID,
		CategoryID:   cat.ID,
		CategoryName: cat.Name,
		Title:        strings.TrimSpace(body.Title),
		Amount:       body.Amount,
		SpentOn:      spentOn,
	}
	if err := h.expenses.Create(ctx, e); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Category not found")
		}
		return err
	}
	return respond.OK(c, fiber.StatusCreated, "Expense added successfully", Format(e))
}

// List returns the user's expenses, newest first, filtered by category
// and/or date range, one page at a time.
func (h *Handler) List(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	filter, page, limit, errs := parseListQuery(c)
	if !errs.Ok() {
		return respond.Invalid(c, errs)
	}

	items, total, err := h.expenses.List(userContext(c), userID, filter, page, limit)
	if err != nil {
		return err
	}
	return respond.Page(c, "Expenses fetched successfully", FormatList(items),
		respond.NewPagination(page, limit, total))
}

func (h *Handler) GetOne(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	e, err := h.expenses.GetByID(userContext(c), userID, c.Params("id"))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Expense not found")
		}
		return err
	}
	return respond.OK(c, fiber.StatusOK, "Expense fetched successfully", Format(e))
}

// Update applies a partial update; only the provided fields change.
func (h *Handler) Update(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	ctx := userContext(c)
	e, err := h.expenses.GetByID(ctx, userID, c.Params("id"))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Expense not found")
		}
		return err
	}

	var body updateRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	errs := validate.Errors{}
	if body.Title != nil {
		errs.Length("title", *body.Title, "Title", 2, 100)
		e.Title = strings.TrimSpace(*body.Title)
	}
	if body.Amount != nil {
		errs.Positive("amount", *body.Amount, "Amount")
		e.Amount = *body.Amount
	}
	if body.Date != nil {
		spentOn, err := format.ParseInputDate(*body.Date)
		if err != nil {
			errs.Add("date", "Date must be YYYY-MM-DD")
		} else {
			e.SpentOn = spentOn
		}
	}
	if !errs.Ok() {
		return respond.Invalid(c, errs)
	}

	if body.CategoryID != nil {
		cat, err := h.categories.GetVisibleByID(ctx, userID, *body.CategoryID)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Category not found")
			}
			return err
		}
		e.CategoryID = cat.ID
		e.CategoryName = cat.Name
	}

	if err := h.expenses.Update(ctx, e); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Expense not found")
		}
		return err
	}
	return respond.OK(c, fiber.StatusOK, "Expense updated successfully", Format(e))
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	if err := h.expenses.Delete(userContext(c), userID, c.Params("id")); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Expense not found")
		}
		return err
	}
	return respond.OK(c, fiber.StatusOK, "Expense deleted successfully", nil)
}

// Stats reports the sum, count and average amount over the filtered set.
func (h *Handler) Stats(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	filter, _, _, errs := parseListQuery(c)
	if !errs.Ok() {
		return respond.Invalid(c, errs)
	}

	stats, err := h.expenses.Stats(userContext(c), userID, filter)
	if err != nil {
		return err
	}
	return respond.OK(c, fiber.StatusOK, "Expense stats fetched successfully", stats)
}

// parseListQuery reads the shared filter and pagination parameters. A
// month/year pair takes precedence over startDate/endDate.
func parseListQuery(c *fiber.Ctx) (Filter, int, int, validate.Errors) {
	errs := validate.Errors{}

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

	filter := Filter{CategoryID: c.Query("categoryId")}

	monthStr, yearStr := c.Query("month"), c.Query("year")
	switch {
	case monthStr != "" || yearStr != "":
		if monthStr == "" || yearStr == "" {
			errs.Add("month", "Month and year must be provided together")
			break
		}
		month := c.QueryInt("month")
		year := c.QueryInt("year")
		errs.Range("month", month, 1, 12, "Month")
		errs.Range("year", year, 1970, 2100, "Year")
		if errs.Ok() {
			filter.From, filter.To = format.MonthRange(year, month)
		}
	default:
		if raw := c.Query("startDate"); raw != "" {
			from, err := format.ParseInputDate(raw)
			if err != nil {
				errs.Add("startDate", "startDate must be YYYY-MM-DD")
			} else {
				filter.From = from
			}
		}
		if raw := c.Query("endDate"); raw != "" {
			to, err := format.ParseInputDate(raw)
			if err != nil {
				errs.Add("endDate", "endDate must be YYYY-MM-DD")
			} else {
				filter.To = to
			}
		}
	}

	return filter, page, limit, errs
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
