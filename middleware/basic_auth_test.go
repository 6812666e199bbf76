package middleware

import (
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"claim_relay/config"
)

func newGatedApp(cfg *config.Config) *fiber.App {
	app := fiber.New()
	app.Use(RequestID())
	app.Use(BasicAuth(cfg))
	app.Post("/api/resume-workflow", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true, "requestId": GetRequestID(c)})
	})
	return app
}

func basic(user, pass string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+pass))
}

func TestBasicAuth(t *testing.T) {
	cfg := &config.Config{AuthUser: "agent", AuthPass: "pa:ss", AuthRealm: "Claims"}
	app := newGatedApp(cfg)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Bearer abc", http.StatusUnauthorized},
		{"not base64", "Basic !!!", http.StatusUnauthorized},
		{"no colon", "Basic " + base64.StdEncoding.EncodeToString([]byte("agent")), http.StatusUnauthorized},
		{"wrong password", basic("agent", "nope"), http.StatusUnauthorized},
		{"wrong user case", basic("Agent", "pa:ss"), http.StatusUnauthorized},
		{"empty credentials", basic("", ""), http.StatusUnauthorized},
		{"valid, password with colon", basic("agent", "pa:ss"), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/resume-workflow", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
			if tt.want == http.StatusUnauthorized {
				assert.Equal(t, `Basic realm="Claims"`, resp.Header.Get("WWW-Authenticate"))
				body, _ := io.ReadAll(resp.Body)
				assert.JSONEq(t, `{"error":"Authentication required."}`, string(body))
			}
		})
	}
}

func TestBasicAuth_Unconfigured(t *testing.T) {
	for _, cfg := range []*config.Config{
		{},
		{AuthUser: "agent"},
		{AuthPass: "secret"},
	} {
		app := newGatedApp(cfg)
		req := httptest.NewRequest(http.MethodPost, "/api/resume-workflow", nil)
		req.Header.Set("Authorization", basic("agent", "secret"))

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Empty(t, resp.Header.Get("WWW-Authenticate"))
		body, _ := io.ReadAll(resp.Body)
		assert.JSONEq(t, `{"error":"Server configuration error"}`, string(body))
	}
}

func TestRequestID_IsExposed(t *testing.T) {
	app := newGatedApp(&config.Config{AuthUser: "agent", AuthPass: "secret"})
	req := httptest.NewRequest(http.MethodPost, "/api/resume-workflow", nil)
	req.Header.Set("Authorization", basic("agent", "secret"))

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
}
