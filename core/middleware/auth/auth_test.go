package auth_test

import (
	"io"
	"net/http/httptest"
	"testing"

	"storage-kit/core/middleware/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth(t *testing.T) {
	app := fiber.New()
	app.Use(auth.New(auth.Config{ApiKey: "secret"}))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

	tests := []struct {
		name   string
		key    string
		status int
	}{
		{"Valid", "secret", fiber.StatusOK},
		{"Wrong", "nope", fiber.StatusUnauthorized},
		{"Missing", "", fiber.StatusUnauthorized},
		{"Prefix", "secre", fiber.StatusUnauthorized},
		{"BearerScheme", "Bearer secret", fiber.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tt.key != "" {
				req.Header.Set(auth.HeaderAPIKey, tt.key)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			if tt.status == fiber.StatusUnauthorized {
				body, _ := io.ReadAll(resp.Body)
				assert.JSONEq(t, `{"error":"unauthorized"}`, string(body))
			}
		})
	}
}

func TestAuth_Disabled(t *testing.T) {
	app := fiber.New()
	app.Use(auth.New(auth.Config{}))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuth_StoresKeyInLocals(t *testing.T) {
	app := fiber.New()
	app.Use(auth.New(auth.Config{ApiKey: "secret"}))
	app.Get("/", func(c *fiber.Ctx) error {
		key, _ := c.Locals("token").(string)
		return c.SendString(key)
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(auth.HeaderAPIKey, "secret")
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "secret", string(body))
}
