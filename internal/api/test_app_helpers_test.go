package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/wizardsmarket/wizards/internal/db"
	"github.com/wizardsmarket/wizards/internal/services"
	"github.com/wizardsmarket/wizards/internal/storage"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	tempDir := t.TempDir()
	database, err := db.OpenSQLite(filepath.Join(tempDir, "wizards-api-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := database.DB(); err == nil {
			sqlDB.Close()
		}
	})

	app := fiber.New()
	handler := NewHandler(database, Config{
		SecretKey:  "test-secret-key",
		AppBaseURL: "http://localhost:8080",
		Uploads:    storage.NewLocalStore(filepath.Join(tempDir, "uploads"), "/uploads"),
		Mailer:     services.NewMailerService(services.ConsoleMailSender{}),
	})
	RegisterRoutes(app, handler)
	return app, database
}

func jsonRequest(t *testing.T, method string, target string, payload any, cookie string) *http.Request {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("encode request body: %v", err)
		}
		body = bytes.NewReader(encoded)
	}
	request := httptest.NewRequest(method, target, body)
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		request.Header.Set("Cookie", cookie)
	}
	return request
}

func doJSON(t *testing.T, app *fiber.App, request *http.Request) (*http.Response, map[string]any) {
	t.Helper()

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", request.Method, request.URL, err)
	}
	t.Cleanup(func() { response.Body.Close() })

	decoded := map[string]any{}
	raw, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("decode response body %q: %v", raw, err)
		}
	}
	return response, decoded
}

func extractAuthCookie(t *testing.T, response *http.Response) string {
	t.Helper()

	for _, cookie := range response.Cookies() {
		if cookie.Name == authCookieName && cookie.Value != "" {
			return cookie.Name + "=" + cookie.Value
		}
	}
	t.Fatal("auth cookie not set")
	return ""
}

func registerTestAccount(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	request := jsonRequest(t, http.MethodPost, "/api/auth/register", map[string]any{
		"email":    email,
		"password": "StrongPass1",
	}, "")
	response, _ := doJSON(t, app, request)
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("register returned %d, want 201", response.StatusCode)
	}
	return extractAuthCookie(t, response)
}

func completeTestOnboarding(t *testing.T, app *fiber.App, cookie string, role string) {
	t.Helper()

	request := jsonRequest(t, http.MethodPost, "/api/my/onboarding", map[string]any{
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"role":       role,
	}, cookie)
	response, _ := doJSON(t, app, request)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("onboarding returned %d, want 200", response.StatusCode)
	}
}

func submitCompleteExpertProfile(t *testing.T, app *fiber.App, cookie string) map[string]any {
	t.Helper()

	request := jsonRequest(t, http.MethodPut, "/api/my/profile?path=/force-profile/edit", map[string]any{
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"country_id": 1,
		"expert": map[string]any{
			"bio":           "Platform specialist",
			"profession_id": 1,
			"skills":        []string{"Automation"},
			"tools":         []string{"Zapier"},
			"expertise": []map[string]any{
				{"platform_id": 1, "rating": 4, "experience_time": "3 years"},
			},
		},
	}, cookie)
	response, payload := doJSON(t, app, request)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("profile submit returned %d: %v", response.StatusCode, payload)
	}
	return payload
}

func redirectTarget(t *testing.T, payload map[string]any) (string, string) {
	t.Helper()

	action, _ := payload["action"].(string)
	destination, _ := payload["destination"].(string)
	if action == "" {
		t.Fatalf("payload %v carries no action", payload)
	}
	return action, destination
}

func assertRedirectPath(t *testing.T, destination string, wantPath string, wantRedirect string) {
	t.Helper()

	parts := strings.SplitN(destination, "?", 2)
	if parts[0] != wantPath {
		t.Fatalf("destination path = %q, want %q", parts[0], wantPath)
	}
	if wantRedirect == "" {
		return
	}
	if len(parts) != 2 {
		t.Fatalf("destination %q carries no query", destination)
	}
	values, err := url.ParseQuery(parts[1])
	if err != nil {
		t.Fatalf("parse destination query: %v", err)
	}
	if got := values.Get("redirect"); got != wantRedirect {
		t.Fatalf("redirect = %q, want %q", got, wantRedirect)
	}
}
