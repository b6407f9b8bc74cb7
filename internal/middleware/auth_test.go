package middleware

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const testSecret = "test-secret"

func newProtectedApp(t *testing.T, secret string) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Get("/whoami", Protected(secret), func(c *fiber.Ctx) error {
		return c.SendString(GetUserID(c).String())
	})
	return app
}

func TestProtected(t *testing.T) {
	userID := uuid.New()

	token, err := GenerateToken(testSecret, userID, "a@b.com")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	foreign, err := GenerateToken("some-other-secret", userID, "a@b.com")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"missing header", "", fiber.StatusUnauthorized},
		{"not a bearer token", token, fiber.StatusUnauthorized},
		{"signed with a different secret", "Bearer " + foreign, fiber.StatusUnauthorized},
		{"garbage token", "Bearer not.a.jwt", fiber.StatusUnauthorized},
		{"valid token", "Bearer " + token, fiber.StatusOK},
	}

	app := newProtectedApp(t, testSecret)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/whoami", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if tt.wantStatus == fiber.StatusOK {
				body, _ := io.ReadAll(resp.Body)
				if string(body) != userID.String() {
					t.Errorf("authenticated user = %s, want %s", body, userID)
				}
			}
		})
	}
}
