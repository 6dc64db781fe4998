package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/wizardsmarket/wizards/internal/models"
	"github.com/wizardsmarket/wizards/internal/services"
)

func (handler *Handler) Register(c *fiber.Ctx) error {
	input := credentialsInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if err := handler.validate.Struct(input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	email, password, err := services.NormalizeCredentialsInput(input.Email, input.Password)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if err := services.ValidatePasswordStrength(password); err != nil {
		return apiError(c, fiber.StatusBadRequest, "weak password")
	}

	handler.ensureDependencies()
	user, err := handler.authService.Register(email, password)
	if err != nil {
		if errors.Is(err, services.ErrEmailAlreadyRegistered) {
			return apiError(c, fiber.StatusConflict, "email already exists")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to create account")
	}

	if err := handler.setAuthCookie(c, &user, true); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}

	// A fresh account has no role yet, so the only place to go is onboarding.
	payload := destinationPayload(services.GoOnboarding, services.PathAuth)
	payload["user"] = handler.userPayload(&user)
	return c.Status(fiber.StatusCreated).JSON(payload)
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	now := time.Now()
	limiterKey := clientKey(c)
	if handler.loginLimiter.blocked(limiterKey, now) {
		return apiError(c, fiber.StatusTooManyRequests, "too many login attempts")
	}

	input := credentialsInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	email, password, err := services.NormalizeCredentialsInput(input.Email, input.Password)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	handler.ensureDependencies()
	user, err := handler.authService.Authenticate(email, password)
	if err != nil {
		handler.loginLimiter.record(limiterKey, now)
		return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
	}
	handler.loginLimiter.reset(limiterKey)

	if err := handler.setAuthCookie(c, &user, input.RememberMe); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}

	return handler.respondPostLogin(c, &user, fiber.StatusOK)
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{
		"ok":          true,
		"destination": services.PathAuth,
	})
}

// Session reports the current identity, the completion verdict and the
// navigation decision for the page the client is on.
func (handler *Handler) Session(c *fiber.Ctx) error {
	pagePath := requestedPagePath(c)

	user := handler.optionalAuthenticatedUser(c)
	if user == nil {
		payload := destinationPayload(services.GoAuth, pagePath)
		payload["authenticated"] = false
		return c.JSON(payload)
	}

	return handler.respondWithDestination(c, user, pagePath, fiber.StatusOK)
}

func (handler *Handler) respondWithDestination(c *fiber.Ctx, user *models.User, pagePath string, status int) error {
	handler.ensureDependencies()
	verdict, err := handler.evaluator.Evaluate(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to evaluate profile")
	}

	destination := services.Decide(pagePath, true, verdict)
	payload := destinationPayload(destination, pagePath)
	payload["authenticated"] = true
	payload["user"] = handler.userPayload(user)
	payload["verdict"] = verdictPayload(verdict)
	return c.Status(status).JSON(payload)
}

// respondPostLogin is the variant used right after a credential exchange,
// where the auth page exemptions of Decide do not apply.
func (handler *Handler) respondPostLogin(c *fiber.Ctx, user *models.User, status int) error {
	handler.ensureDependencies()
	verdict, err := handler.evaluator.Evaluate(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to evaluate profile")
	}

	destination := services.PostLoginDestination(verdict)
	payload := destinationPayload(destination, services.PathAuth)
	payload["authenticated"] = true
	payload["user"] = handler.userPayload(user)
	payload["verdict"] = verdictPayload(verdict)
	return c.Status(status).JSON(payload)
}

func (handler *Handler) userPayload(user *models.User) fiber.Map {
	return fiber.Map{
		"id":               user.ID,
		"email":            user.Email,
		"first_name":       user.FirstName,
		"last_name":        user.LastName,
		"country_id":       user.CountryID,
		"role":             handler.resolveRole(user).Name(),
		"linkedin_profile": user.LinkedinProfile,
		"other_link":       user.OtherLink,
		"avatar_url":       user.AvatarURL,
		"cv_url":           user.CVURL,
	}
}

func verdictPayload(verdict services.CompletionVerdict) fiber.Map {
	return fiber.Map{
		"complete":       verdict.Complete,
		"basic_complete": verdict.BasicComplete,
		"role_complete":  verdict.RoleComplete,
		"missing_fields": verdict.MissingFields,
	}
}
