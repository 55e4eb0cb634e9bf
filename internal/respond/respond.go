// Package respond shapes every API reply into the common envelope:
// {"status":bool,"message":string,"data":...,"pagination":...,"errors":...}.
package respond

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aQ-codes/expense-tracker-backend/internal/validate"
)

// Pagination describes one page of a list response.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewPagination computes totalPages as ceil(total/limit).
func NewPagination(page, limit, total int) Pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: pages}
}

// Body is the wire envelope shared by every endpoint.
type Body struct {
	Status     bool            `json:"status"`
	Message    string          `json:"message"`
	Data       any             `json:"data,omitempty"`
	Pagination *Pagination     `json:"pagination,omitempty"`
	Errors     validate.Errors `json:"errors,omitempty"`
}

// OK writes a success envelope.
func OK(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Body{Status: true, Message: message, Data: data})
}

// Page writes a success envelope with pagination.
func Page(c *fiber.Ctx, message string, data any, p Pagination) error {
	return c.Status(fiber.StatusOK).JSON(Body{Status: true, Message: message, Data: data, Pagination: &p})
}

// Fail writes a failure envelope.
func Fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Body{Status: false, Message: message})
}

// Invalid writes the 422 envelope carrying field-level validation messages.
func Invalid(c *fiber.Ctx, errs validate.Errors) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(Body{
		Status:  false,
		Message: "Validation failed",
		Errors:  errs,
	})
}
