package api

import (
	"errors"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/wizardsmarket/wizards/internal/services"
)

// MagicLinkRequest mails a one-time sign-in link to a registered address.
// The response is the same whether or not the address exists, so the
// endpoint cannot be used to probe for accounts.
func (handler *Handler) MagicLinkRequest(c *fiber.Ctx) error {
	now := time.Now()
	limiterKey := clientKey(c)
	if handler.magicLinkLimiter.blocked(limiterKey, now) {
		return apiError(c, fiber.StatusTooManyRequests, "too many sign-in link requests")
	}

	var input magicLinkInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := handler.validate.Struct(input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "a valid email is required")
	}

	email := services.NormalizeAuthEmail(input.Email)
	if email == "" {
		return apiError(c, fiber.StatusBadRequest, "a valid email is required")
	}

	handler.ensureDependencies()
	handler.magicLinkLimiter.record(limiterKey, now)

	user, nonce, err := handler.authService.IssueMagicLinkNonce(email)
	if err != nil {
		// Unknown address. Respond as if the mail was sent.
		return c.JSON(fiber.Map{"ok": true})
	}

	token, err := handler.buildMagicLinkToken(user.ID, nonce, magicLinkTokenTTL)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create sign-in link")
	}

	handler.mailer.Enqueue(services.MagicLinkMail{
		Email: user.Email,
		Link:  handler.appBaseURL + services.PathAuthVerify + "?token=" + url.QueryEscape(token),
	})
	return c.JSON(fiber.Map{"ok": true})
}

// MagicLinkVerify exchanges a mailed token for a session. Tokens are
// single use: the nonce is burned before the cookie is issued.
func (handler *Handler) MagicLinkVerify(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return apiError(c, fiber.StatusBadRequest, "token is required")
	}

	handler.ensureDependencies()
	claims, err := handler.parseMagicLinkToken(token)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "sign-in link is invalid or expired")
	}

	user, err := handler.authService.ConsumeMagicLinkNonce(claims.UserID, claims.Nonce)
	if err != nil {
		if errors.Is(err, services.ErrMagicLinkInvalid) {
			return apiError(c, fiber.StatusUnauthorized, "sign-in link is invalid or expired")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to sign in")
	}

	if err := handler.setAuthCookie(c, &user, true); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}

	return handler.respondPostLogin(c, &user, fiber.StatusOK)
}
