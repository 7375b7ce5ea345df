package handler

import (
	"time"

	"go-pos-admin/internal/apperror"
	"go-pos-admin/internal/middleware"
	"go-pos-admin/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CookieConfig controls the session cookie.
type CookieConfig struct {
	Name   string
	Secure bool
}

type AuthHandler struct {
	authService service.AuthService
	cookie      CookieConfig
}

func NewAuthHandler(authService service.AuthService, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{authService: authService, cookie: cookie}
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PinLoginRequest is the POS login body.
type PinLoginRequest struct {
	Email string `json:"email"`
	Pin   string `json:"pin"`
}

// ChangePasswordRequest represents the change password request body
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// Login handles staff authentication
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody()
	}
	if req.Email == "" || req.Password == "" {
		return apperror.Validation(required(map[string]string{"email": req.Email, "password": req.Password}))
	}

	resp, err := h.authService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	h.setCookie(c, resp.Token, resp.ExpiresAt)
	return c.JSON(resp)
}

// PinLogin handles POS authentication
// POST /api/v1/auth/pin-login
func (h *AuthHandler) PinLogin(c *fiber.Ctx) error {
	var req PinLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody()
	}
	if req.Email == "" || req.Pin == "" {
		return apperror.Validation(required(map[string]string{"email": req.Email, "pin": req.Pin}))
	}

	resp, err := h.authService.PinLogin(c.UserContext(), req.Email, req.Pin)
	if err != nil {
		return err
	}
	h.setCookie(c, resp.Token, resp.ExpiresAt)
	return c.JSON(resp)
}

// Logout revokes the presented token and clears the cookie
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if token := middleware.TokenFrom(c, h.cookie.Name); token != "" {
		if err := h.authService.Logout(c.UserContext(), token); err != nil {
			return err
		}
	}
	h.setCookie(c, "", time.Unix(0, 0))
	return c.JSON(fiber.Map{"message": "Logged out"})
}

// Me returns the authenticated staff
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	staff := middleware.CurrentStaff(c)
	if staff == nil {
		return apperror.Unauthenticated("authentication required")
	}
	return c.JSON(staff.ToResponse())
}

// ChangePassword handles password change for the authenticated staff
// POST /api/v1/auth/change-password
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody()
	}
	if err := h.authService.ChangePassword(c.UserContext(), middleware.CurrentStaff(c), req.OldPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Password updated successfully"})
}

// Heartbeat
// POST /api/v1/auth/heartbeat
func (h *AuthHandler) Heartbeat(c *fiber.Ctx) error {
	if err := h.authService.Heartbeat(c.UserContext(), middleware.CurrentStaff(c)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Heartbeat received", "status": "online"})
}

func (h *AuthHandler) setCookie(c *fiber.Ctx, token string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: fiber.CookieSameSiteStrictMode,
	})
}

func required(values map[string]string) map[string]string {
	fields := map[string]string{}
	for name, v := range values {
		if v == "" {
			fields[name] = "required"
		}
	}
	return fields
}
