package console

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/nmt-console/internal/session"
)

func navigateApp(loc session.Location) *fiber.App {
	app := fiber.New()
	app.All("/*", func(c *fiber.Ctx) error {
		return Navigate(c, loc)
	})
	return app
}

func TestNavigateRedirectsBrowsers(t *testing.T) {
	cases := []struct {
		method string
		status int
	}{
		{http.MethodGet, http.StatusFound},
		{http.MethodPost, http.StatusSeeOther},
	}
	for _, tc := range cases {
		t.Run(tc.method, func(t *testing.T) {
			app := navigateApp(session.LoginLocation("/dashboard", true))
			resp, err := app.Test(httptest.NewRequest(tc.method, "/dashboard", nil))
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			if resp.StatusCode != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, resp.StatusCode)
			}
			if loc := resp.Header.Get("Location"); loc != "/login?expired=1&next=%2Fdashboard" {
				t.Fatalf("unexpected location %q", loc)
			}
		})
	}
}

func TestNavigateAnswersJSONCallers(t *testing.T) {
	app := navigateApp(session.LoginLocation("", false))
	resp, err := app.Test(httptest.NewRequest(http.MethodPost, APIPrefix+"/models", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["redirect"] != "/login" {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestRefererPath(t *testing.T) {
	cases := map[string]string{
		"":                                     "",
		"http://console.local/models?lp=en-de": "/models?lp=en-de",
		"http://console.local/login":           "",
		"not a url\x7f":                        "",
	}
	for in, want := range cases {
		if got := refererPath(in); got != want {
			t.Errorf("refererPath(%q) = %q, want %q", in, got, want)
		}
	}
}
