package api

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/wizardsmarket/wizards/internal/services"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// destinationPayload is the wire shape of a redirect decision. GoAuth carries
// the original path so the client can return after login.
func destinationPayload(destination services.Destination, currentPath string) fiber.Map {
	path := destination.Path()
	if destination == services.GoAuth {
		path = services.AuthRedirectPath(currentPath)
	}
	return fiber.Map{
		"action":      destination.String(),
		"destination": path,
	}
}

func sanitizeRedirectPath(raw string, fallback string) string {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return fallback
	}
	if strings.HasPrefix(candidate, "//") || !strings.HasPrefix(candidate, "/") {
		return fallback
	}
	parsed, err := url.Parse(candidate)
	if err != nil || parsed.IsAbs() {
		return fallback
	}
	return candidate
}
