package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kartvizit.link/auth"
	"kartvizit.link/configs"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestApp(t *testing.T, guards ...fiber.Handler) *fiber.App {
	t.Helper()
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("AUTH_LOGIN_URL", "/auth/login")
	configs.LoadEnv()

	app := fiber.New()
	handlers := append([]fiber.Handler{AuthMiddleware}, guards...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		p, ok := auth.FromContext(c.UserContext())
		if !ok {
			return c.SendStatus(fiber.StatusTeapot)
		}
		return c.SendString(p.Email)
	})
	app.Get("/private", handlers...)
	return app
}

func token(t *testing.T, p auth.Principal, expiry time.Duration) string {
	t.Helper()
	tok, err := auth.GenerateToken(testSecret, p, expiry)
	require.NoError(t, err)
	return tok
}

func TestAuthMiddleware_RedirectsWithoutToken(t *testing.T) {
	app := newTestApp(t)
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/private", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/auth/login", resp.Header.Get("Location"))
}

func TestAuthMiddleware_JSONClientsGet401(t *testing.T) {
	app := newTestApp(t)
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Accept", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_AcceptsCookieAndBearer(t *testing.T) {
	app := newTestApp(t)
	tok := token(t, auth.Principal{UserID: 2, Email: "owner@acme.test"}, time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: tok})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthMiddleware_RejectsExpiredAndForeignTokens(t *testing.T) {
	app := newTestApp(t)

	expired := token(t, auth.Principal{UserID: 2}, -time.Minute)
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)

	foreign, err := auth.GenerateToken("other-secret", auth.Principal{UserID: 2}, time.Hour)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+foreign)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
}

func TestRoleGuards(t *testing.T) {
	admin := token(t, auth.Principal{UserID: 1, IsSystem: true}, time.Hour)
	user := token(t, auth.Principal{UserID: 2, Email: "u@acme.test"}, time.Hour)

	do := func(app *fiber.App, tok string) *http.Response {
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp
	}

	system := newTestApp(t, RequireSystem())
	assert.Equal(t, fiber.StatusOK, do(system, admin).StatusCode)
	resp := do(system, user)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/panel/cards", resp.Header.Get("Location"))

	panel := newTestApp(t, RequireUser())
	assert.Equal(t, fiber.StatusOK, do(panel, user).StatusCode)
	resp = do(panel, admin)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/dashboard/cards", resp.Header.Get("Location"))
}
