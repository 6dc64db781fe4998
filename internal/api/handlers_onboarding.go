package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/wizardsmarket/wizards/internal/services"
)

// CompleteOnboarding records the name and role a fresh account picked.
// Role selection is a one-way door: the endpoint rejects accounts that
// already carry a role.
func (handler *Handler) CompleteOnboarding(c *fiber.Ctx) error {
	user := currentUser(c)
	if user == nil {
		return apiError(c, fiber.StatusUnauthorized, "authentication required")
	}
	if currentRole(c) != services.RoleUnset {
		return apiError(c, fiber.StatusConflict, "onboarding already completed")
	}

	var input onboardingInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := handler.validate.Struct(input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "first name, last name and a valid role are required")
	}

	handler.ensureDependencies()
	if _, err := handler.onboardingSvc.Complete(user.ID, input.FirstName, input.LastName, input.Role); err != nil {
		switch {
		case errors.Is(err, services.ErrOnboardingNameRequired):
			return apiError(c, fiber.StatusBadRequest, "first and last name are required")
		case errors.Is(err, services.ErrOnboardingRoleInvalid):
			return apiError(c, fiber.StatusBadRequest, "role must be expert or customer")
		default:
			return apiError(c, fiber.StatusInternalServerError, "failed to complete onboarding")
		}
	}

	fresh, err := handler.authService.FindByID(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load account")
	}
	// The onboarding page is exempt from the forced-edit redirect, so the
	// plain page decision would say stay. The user just left it.
	return handler.respondPostLogin(c, &fresh, fiber.StatusOK)
}
