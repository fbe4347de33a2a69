package configs

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"kartvizit.link/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCSRFTestApp() *fiber.App {
	store := SetupSession()
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(utils.SessionStoreKey, store)
		return c.Next()
	})
	app.Use(SetupCSRF())
	app.Get("/form", func(c *fiber.Ctx) error {
		token, _ := c.Locals(CSRFContextKey).(string)
		return c.SendString(token)
	})
	app.Post("/form", func(c *fiber.Ctx) error {
		return c.SendString("kaydedildi")
	})
	return app
}

func TestCSRFRejectsPostWithoutToken(t *testing.T) {
	app := newCSRFTestApp()

	req := httptest.NewRequest(http.MethodPost, "/form", strings.NewReader("name=x"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

	req = httptest.NewRequest(http.MethodPost, "/form", strings.NewReader("name=x"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	req.Header.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestCSRFAcceptsTokenFromFormAndHeader(t *testing.T) {
	app := newCSRFTestApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/form", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	token := string(body)
	require.NotEmpty(t, token)
	cookies := resp.Cookies()

	form := url.Values{CSRFFormField: {token}}
	req := httptest.NewRequest(http.MethodPost, "/form", strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodPost, "/form", nil)
	req.Header.Set(CSRFHeader, token)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodPost, "/form", nil)
	req.Header.Set(CSRFHeader, "baska-bir-token")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
}
