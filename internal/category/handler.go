package category

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/aQ-codes/expense-tracker-backend/internal/auth"
	"github.com/aQ-codes/expense-tracker-backend/internal/database"
	"github.com/aQ-codes/expense-tracker-backend/internal/respond"
	"github.com/aQ-codes/expense-tracker-backend/internal/validate"
)

// Reassigner moves a user's expenses between categories. Deleting a
// category reassigns its expenses to the default fallback first so no
// expense is left pointing at a removed category.
type Reassigner interface {
	ReassignCategory(ctx context.Context, userID, fromID, toID string) error
}

// Handler serves the category CRUD endpoints.
type Handler struct {
	categories Repository
	expenses   Reassigner
}

func NewHandler(categories Repository, expenses Reassigner) *Handler {
	return &Handler{categories: categories, expenses: expenses}
}

type categoryRequest struct {
	Name string `json:"name"`
}

func (r categoryRequest) validate() validate.Errors {
	errs := validate.Errors{}
	errs.Length("name", r.Name, "Category name", 2, 50)
	return errs
}

// List returns the categories visible to the user: the shared defaults
// first, then the user's own, each group alphabetical.
func (h *Handler) List(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	categories, err := h.categories.ListVisible(userContext(c), userID)
	if err != nil {
		return err
	}
	return respond.OK(c, fiber.StatusOK, "Categories fetched successfully", FormatList(categories))
}

func (h *Handler) Create(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	var body categoryRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if errs := body.validate(); !errs.Ok() {
		return respond.Invalid(c, errs)
	}

	ctx := userContext(c)
	name := strings.TrimSpace(body.Name)

	taken, err := h.categories.NameTaken(ctx, userID, name, "")
	if err != nil {
		return err
	}
	if taken {
		return fiber.NewError(fiber.StatusConflict, "Category already exists")
	}

	cat := &Category{Name: name, UserID: &userID}
	if err := h.categories.Create(ctx, cat); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return fiber.NewError(fiber.StatusConflict, "Category already exists")
		}
		return err
	}
	return respond.OK(c, fiber.StatusCreated, "Category created successfully", Format(cat))
}

func (h *Handler) Update(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	ctx := userContext(c)
	cat, err := h.categories.GetVisibleByID(ctx, userID, c.Params("id"))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Category not found")
		}
		return err
	}
	if cat.IsDefault {
		return fiber.NewError(fiber.StatusForbidden, "Default categories cannot be modified")
	}

	var body categoryRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if errs := body.validate(); !errs.Ok() {
		return respond.Invalid(c, errs)
	}

	name := strings.TrimSpace(body.Name)
	taken, err := h.categories.NameTaken(ctx, userID, name, cat.ID)
	if err != nil {
		return err
	}
	if taken {
		return fiber.NewError(fiber.StatusConflict, "Category already exists")
	}

	cat.Name = name
	if err := h.categories.Update(ctx, cat); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return fiber.NewError(fiber.StatusConflict, "Category already exists")
		}
		if errors.Is(err, database.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Category not found")
		}
		return err
	}
	return respond.OK(c, fiber.StatusOK, "Category updated successfully", Format(cat))
}

// Delete removes one of the user's own categories. The user's expenses in
// it are reassigned to the default fallback first; the two writes are
// separate statements, so a failure between them leaves expenses moved but
// the category in place, which a retry resolves.
func (h *Handler) Delete(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	ctx := userContext(c)
	cat, err := h.categories.GetVisibleByID(ctx, userID, c.Params("id"))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Category not found")
		}
		return err
	}
	if cat.IsDefault {
		return fiber.NewError(fiber.StatusForbidden, "Default categories cannot be deleted")
	}

	fallback, err := h.categories.DefaultByName(ctx, OtherName)
	if err != nil {
		return err
	}
	if err := h.expenses.ReassignCategory(ctx, userID, cat.ID, fallback.ID); err != nil {
		return err
	}

	if err := h.categories.Delete(ctx, userID, cat.ID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Category not found")
		}
		return err
	}
	return respond.OK(c, fiber.StatusOK, "Category deleted successfully", nil)
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
