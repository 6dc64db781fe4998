package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wizardsmarket/wizards/internal/services"
)

// Gate answers a single question for the client router: given the page the
// user is about to render, stay or go somewhere else. It never fails for
// anonymous visitors; they are simply sent to the auth page.
func (handler *Handler) Gate(c *fiber.Ctx) error {
	pagePath := requestedPagePath(c)

	user := handler.optionalAuthenticatedUser(c)
	if user == nil {
		destination := services.Decide(pagePath, false, services.CompletionVerdict{})
		payload := destinationPayload(destination, pagePath)
		payload["authenticated"] = false
		return c.JSON(payload)
	}

	handler.ensureDependencies()
	verdict, err := handler.evaluator.Evaluate(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to evaluate profile")
	}

	destination := services.Decide(pagePath, true, verdict)
	payload := destinationPayload(destination, pagePath)
	payload["authenticated"] = true
	payload["verdict"] = verdictPayload(verdict)
	return c.JSON(payload)
}
