package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wizardsmarket/wizards/internal/services"
)

// AuthRequired resolves the session and stores the identity and role in the
// request context. Without a valid session the response carries the login
// destination with the originally requested path preserved.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	user, err := handler.authenticateRequest(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":       "unauthorized",
			"destination": services.AuthRedirectPath(requestedPagePath(c)),
		})
	}

	c.Locals(contextUserKey, user)
	c.Locals(contextRoleKey, handler.resolveRole(user))
	return c.Next()
}

func (handler *Handler) CustomerOnly(c *fiber.Ctx) error {
	if currentUser(c) == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}
	if role := currentRole(c); role != services.RoleCustomer && role != services.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "customer access required"})
	}
	return c.Next()
}

func (handler *Handler) ExpertOnly(c *fiber.Ctx) error {
	if currentUser(c) == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}
	if role := currentRole(c); role != services.RoleExpert && role != services.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "expert access required"})
	}
	return c.Next()
}

// requestedPagePath is the SPA page the API call acts for, passed by the
// client router; it falls back to the request path itself.
func requestedPagePath(c *fiber.Ctx) string {
	if fromQuery := sanitizeRedirectPath(c.Query("path"), ""); fromQuery != "" {
		return fromQuery
	}
	if fromHeader := sanitizeRedirectPath(c.Get("X-App-Path"), ""); fromHeader != "" {
		return fromHeader
	}
	return c.Path()
}
