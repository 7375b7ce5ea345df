package middleware

import (
	"strings"

	"go-pos-admin/internal/apperror"
	"go-pos-admin/internal/model"
	"go-pos-admin/internal/service"

	"github.com/gofiber/fiber/v2"
)

const (
	localStaff = "staff"
	localToken = "token"
)

// RequireAuth resolves the session token from the cookie, falling back to an
// "Authorization: Bearer" header, and stores the authenticated staff in the
// request context.
func RequireAuth(auth service.AuthService, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := TokenFrom(c, cookieName)
		if token == "" {
			return apperror.Unauthenticated("missing session token")
		}

		staff, err := auth.Authenticate(c.UserContext(), token)
		if err != nil {
			return err
		}

		c.Locals(localStaff, staff)
		c.Locals(localToken, token)
		return c.Next()
	}
}

// TokenFrom returns the raw session token carried by the request, if any.
func TokenFrom(c *fiber.Ctx, cookieName string) string {
	if token := c.Cookies(cookieName); token != "" {
		return token
	}
	header := c.Get(fiber.HeaderAuthorization)
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// RequirePermission lets the request through when the authenticated staff
// holds at least one of perms.
func RequirePermission(perms ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := service.Authorize(CurrentStaff(c), perms...); err != nil {
			return err
		}
		return c.Next()
	}
}

// CurrentStaff returns the staff set by RequireAuth, or nil.
func CurrentStaff(c *fiber.Ctx) *model.Staff {
	staff, _ := c.Locals(localStaff).(*model.Staff)
	return staff
}

// CurrentToken returns the token RequireAuth accepted.
func CurrentToken(c *fiber.Ctx) string {
	token, _ := c.Locals(localToken).(string)
	return token
}
