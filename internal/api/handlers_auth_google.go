package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/wizardsmarket/wizards/internal/security"
	"github.com/wizardsmarket/wizards/internal/services"
)

type googleUserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// GoogleLogin starts the OAuth round trip. The state token is pinned in a
// short-lived cookie and checked on callback.
func (handler *Handler) GoogleLogin(c *fiber.Ctx) error {
	if handler.googleOAuth == nil {
		return apiError(c, fiber.StatusNotImplemented, "google sign-in not configured")
	}

	state, err := security.OAuthState()
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to start sign-in")
	}

	c.Cookie(&fiber.Cookie{
		Name:     oauthStateCookieName,
		Value:    state,
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().Add(10 * time.Minute),
	})
	return c.Redirect(handler.googleOAuth.AuthCodeURL(state), fiber.StatusTemporaryRedirect)
}

func (handler *Handler) GoogleCallback(c *fiber.Ctx) error {
	if handler.googleOAuth == nil {
		return apiError(c, fiber.StatusNotImplemented, "google sign-in not configured")
	}

	state := c.Query("state")
	if state == "" || state != c.Cookies(oauthStateCookieName) {
		return apiError(c, fiber.StatusBadRequest, "invalid oauth state")
	}

	token, err := handler.googleOAuth.Exchange(c.Context(), c.Query("code"))
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "oauth exchange failed")
	}

	info, err := fetchGoogleUserInfo(token.AccessToken)
	if err != nil || info.Email == "" {
		return apiError(c, fiber.StatusUnauthorized, "failed to fetch user info")
	}

	handler.ensureDependencies()
	user, err := handler.authService.ResolveGoogleUser(info.ID, services.NormalizeAuthEmail(info.Email))
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to sign in")
	}

	if err := handler.setAuthCookie(c, &user, true); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}

	verdict, err := handler.evaluator.Evaluate(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to evaluate profile")
	}
	destination := services.PostLoginDestination(verdict)
	return c.Redirect(destination.Path(), fiber.StatusSeeOther)
}

func fetchGoogleUserInfo(accessToken string) (googleUserInfo, error) {
	response, err := http.Get("https://www.googleapis.com/oauth2/v2/userinfo?access_token=" + url.QueryEscape(accessToken))
	if err != nil {
		return googleUserInfo{}, err
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return googleUserInfo{}, err
	}

	info := googleUserInfo{}
	if err := json.Unmarshal(body, &info); err != nil {
		return googleUserInfo{}, err
	}
	return info, nil
}
