package api

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/wizardsmarket/wizards/internal/models"
)

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	app, _ := newTestApp(t)
	registerTestAccount(t, app, "dup@example.com")

	request := jsonRequest(t, http.MethodPost, "/api/auth/register", map[string]any{
		"email":    "Dup@Example.com",
		"password": "StrongPass1",
	}, "")
	response, _ := doJSON(t, app, request)
	if response.StatusCode != http.StatusConflict {
		t.Fatalf("status = %d, want 409", response.StatusCode)
	}
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	app, _ := newTestApp(t)

	request := jsonRequest(t, http.MethodPost, "/api/auth/register", map[string]any{
		"email":    "weak@example.com",
		"password": "alllowercase",
	}, "")
	response, _ := doJSON(t, app, request)
	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", response.StatusCode)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	app, _ := newTestApp(t)
	registerTestAccount(t, app, "ada@example.com")

	request := jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "ada@example.com",
		"password": "WrongPass1",
	}, "")
	response, _ := doJSON(t, app, request)
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", response.StatusCode)
	}
}

func TestSessionWithoutCookieReportsUnauthenticated(t *testing.T) {
	app, _ := newTestApp(t)

	request := jsonRequest(t, http.MethodGet, "/api/auth/session?path=/dashboard", nil, "")
	response, payload := doJSON(t, app, request)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", response.StatusCode)
	}
	if authenticated, _ := payload["authenticated"].(bool); authenticated {
		t.Fatal("expected authenticated=false")
	}
	if action, _ := redirectTarget(t, payload); action != "auth" {
		t.Fatalf("action = %q, want auth", action)
	}
}

func TestMagicLinkRequestDoesNotRevealAccounts(t *testing.T) {
	app, _ := newTestApp(t)
	registerTestAccount(t, app, "known@example.com")

	for _, email := range []string{"known@example.com", "ghost@example.com"} {
		request := jsonRequest(t, http.MethodPost, "/api/auth/magic-link", map[string]any{"email": email}, "")
		response, payload := doJSON(t, app, request)
		if response.StatusCode != http.StatusOK {
			t.Fatalf("email %q: status = %d, want 200", email, response.StatusCode)
		}
		if ok, _ := payload["ok"].(bool); !ok {
			t.Fatalf("email %q: payload = %v, want ok", email, payload)
		}
	}
}

func signTestMagicLinkToken(t *testing.T, userID uint, nonce string, ttl time.Duration) string {
	t.Helper()

	now := time.Now()
	claims := magicLinkClaims{
		UserID:  userID,
		Nonce:   nonce,
		Purpose: magicLinkPurpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret-key"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestMagicLinkVerifySignsInExactlyOnce(t *testing.T) {
	app, database := newTestApp(t)
	registerTestAccount(t, app, "link@example.com")

	request := jsonRequest(t, http.MethodPost, "/api/auth/magic-link", map[string]any{"email": "link@example.com"}, "")
	if response, _ := doJSON(t, app, request); response.StatusCode != http.StatusOK {
		t.Fatalf("magic link request failed: %d", response.StatusCode)
	}

	var user models.User
	if err := database.Where("email = ?", "link@example.com").First(&user).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if user.MagicLinkNonce == "" {
		t.Fatal("no nonce issued")
	}

	token := signTestMagicLinkToken(t, user.ID, user.MagicLinkNonce, time.Minute)
	target := "/api/auth/magic-link/verify?token=" + url.QueryEscape(token)

	response, payload := doJSON(t, app, jsonRequest(t, http.MethodGet, target, nil, ""))
	if response.StatusCode != http.StatusOK {
		t.Fatalf("verify status = %d: %v", response.StatusCode, payload)
	}
	extractAuthCookie(t, response)
	if action, _ := redirectTarget(t, payload); action != "onboarding" {
		t.Fatalf("fresh account after magic link: action = %q, want onboarding", action)
	}

	// The nonce is burned: replaying the same link fails.
	response, _ = doJSON(t, app, jsonRequest(t, http.MethodGet, target, nil, ""))
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("replay status = %d, want 401", response.StatusCode)
	}
}

func TestMagicLinkVerifyRejectsExpiredToken(t *testing.T) {
	app, database := newTestApp(t)
	registerTestAccount(t, app, "stale@example.com")

	request := jsonRequest(t, http.MethodPost, "/api/auth/magic-link", map[string]any{"email": "stale@example.com"}, "")
	if response, _ := doJSON(t, app, request); response.StatusCode != http.StatusOK {
		t.Fatalf("magic link request failed: %d", response.StatusCode)
	}

	var user models.User
	if err := database.Where("email = ?", "stale@example.com").First(&user).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}

	token := signTestMagicLinkToken(t, user.ID, user.MagicLinkNonce, -time.Minute)
	target := "/api/auth/magic-link/verify?token=" + url.QueryEscape(token)
	response, _ := doJSON(t, app, jsonRequest(t, http.MethodGet, target, nil, ""))
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expired token status = %d, want 401", response.StatusCode)
	}
}

func TestAuthCookieRejectsWrongSignature(t *testing.T) {
	app, _ := newTestApp(t)

	claims := authClaims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	request := jsonRequest(t, http.MethodGet, "/api/my/profile", nil, authCookieName+"="+forged)
	response, _ := doJSON(t, app, request)
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("forged cookie status = %d, want 401", response.StatusCode)
	}
}

func TestMagicLinkRequestsAreThrottled(t *testing.T) {
	app, _ := newTestApp(t)

	for i := 0; i < magicLinkRequestLimit; i++ {
		request := jsonRequest(t, http.MethodPost, "/api/auth/magic-link", map[string]any{"email": "ghost@example.com"}, "")
		response, _ := doJSON(t, app, request)
		if response.StatusCode != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, response.StatusCode)
		}
	}

	request := jsonRequest(t, http.MethodPost, "/api/auth/magic-link", map[string]any{"email": "ghost@example.com"}, "")
	response, _ := doJSON(t, app, request)
	if response.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("request over budget: status = %d, want 429", response.StatusCode)
	}
}
