package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wizardsmarket/wizards/internal/models"
	"github.com/wizardsmarket/wizards/internal/services"
)

const (
	authCookieName       = "wizards_auth"
	oauthStateCookieName = "wizards_oauth_state"
	contextUserKey       = "current_user"
	contextRoleKey       = "current_role"
)

func currentUser(c *fiber.Ctx) *models.User {
	user, ok := c.Locals(contextUserKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}

func currentRole(c *fiber.Ctx) services.Role {
	role, ok := c.Locals(contextRoleKey).(services.Role)
	if !ok {
		return services.RoleUnset
	}
	return role
}
