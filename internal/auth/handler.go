package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/aQ-codes/expense-tracker-backend/internal/database"
	"github.com/aQ-codes/expense-tracker-backend/internal/respond"
	"github.com/aQ-codes/expense-tracker-backend/internal/user"
	"github.com/aQ-codes/expense-tracker-backend/internal/validate"
)

// Handler serves signup, login, logout and profile requests.
type Handler struct {
	users    user.Repository
	secret   []byte
	tokenTTL time.Duration
	secure   bool
}

func NewHandler(users user.Repository, secret []byte, tokenTTL time.Duration, secure bool) *Handler {
	return &Handler{users: users, secret: secret, tokenTTL: tokenTTL, secure: secure}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r signupRequest) validate() validate.Errors {
	errs := validate.Errors{}
	errs.Length("name", r.Name, "Name", 2, 50)
	errs.Email("email", r.Email)
	errs.MinLength("password", r.Password, "Password", 6)
	return errs
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r loginRequest) validate() validate.Errors {
	errs := validate.Errors{}
	errs.Email("email", r.Email)
	errs.Required("password", r.Password, "Password")
	return errs
}

// Signup registers a new account and opens a session for it.
func (h *Handler) Signup(c *fiber.Ctx) error {
	var body signupRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if errs := body.validate(); !errs.Ok() {
		return respond.Invalid(c, errs)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Could not register user")
	}

	u := &user.User{
		Name:         strings.TrimSpace(body.Name),
		Email:        strings.TrimSpace(body.Email),
		PasswordHash: string(hashed),
	}
	if err := h.users.Create(userContext(c), u); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return fiber.NewError(fiber.StatusConflict, "Email is already registered")
		}
		return err
	}

	if err := h.openSession(c, u.ID); err != nil {
		return err
	}
	return respond.OK(c, fiber.StatusCreated, "User registered successfully", user.Format(u))
}

// Login verifies credentials and opens a session. Unknown emails and wrong
// passwords produce the same response so the endpoint does not reveal which
// accounts exist.
func (h *Handler) Login(c *fiber.Ctx) error {
	var body loginRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if errs := body.validate(); !errs.Ok() {
		return respond.Invalid(c, errs)
	}

	u, err := h.users.GetByEmail(userContext(c), strings.TrimSpace(body.Email))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid email or password")
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(body.Password)); err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid email or password")
	}

	if err := h.openSession(c, u.ID); err != nil {
		return err
	}
	return respond.OK(c, fiber.StatusOK, "Login successful", user.Format(u))
}

// Logout clears the session cookie. It succeeds whether or not a session
// was active.
func (h *Handler) Logout(c *fiber.Ctx) error {
	ClearSessionCookie(c, h.secure)
	return respond.OK(c, fiber.StatusOK, "Logged out successfully", nil)
}

// Profile returns the authenticated user's record.
func (h *Handler) Profile(c *fiber.Ctx) error {
	userID, err := UserID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Authentication required. Please log in.")
	}

	u, err := h.users.GetByID(userContext(c), userID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return err
	}
	return respond.OK(c, fiber.StatusOK, "Profile fetched successfully", user.Format(u))
}

func (h *Handler) openSession(c *fiber.Ctx, userID string) error {
	token, err := NewToken(h.secret, userID, h.tokenTTL)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Could not create session")
	}
	SetSessionCookie(c, token, h.tokenTTL, h.secure)
	return nil
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
