package renderer

import (
	"net/http"

	"kartvizit.link/configs"
	"kartvizit.link/configs/configslog"
	"kartvizit.link/pkg/flashmessages"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	FlashSuccessKeyView = "Success"
	FlashErrorKeyView   = "Error"
	FlashWarningKeyView = "Warning"
)

// SetFlashMessages flash mesajlarını view verisine ekler.
func SetFlashMessages(data fiber.Map, msgs flashmessages.FlashMessages) {
	if msgs.Success != "" {
		data[FlashSuccessKeyView] = msgs.Success
	}
	if msgs.Error != "" {
		data[FlashErrorKeyView] = msgs.Error
	}
	if msgs.Warning != "" {
		data[FlashWarningKeyView] = msgs.Warning
	}
}

// Render şablonu ortak locals ve bekleyen flash mesajlarıyla birlikte işler.
// status verilmezse 200 kullanılır.
func Render(c *fiber.Ctx, view, layout string, data fiber.Map, status ...int) error {
	if data == nil {
		data = fiber.Map{}
	}
	if _, ok := data[FlashErrorKeyView]; !ok {
		if msgs, err := flashmessages.GetFlashMessages(c); err == nil {
			SetFlashMessages(data, msgs)
		}
	}
	data["UserName"] = c.Locals("userName")
	data["CsrfToken"] = c.Locals(configs.CSRFContextKey)
	data["IsSystem"] = c.Locals("isSystem")

	code := http.StatusOK
	if len(status) > 0 {
		code = status[0]
	}
	c.Status(code)
	if err := c.Render(view, data, layout); err != nil {
		configslog.Log.Error("Şablon işlenemedi", zap.String("view", view), zap.Error(err))
		return err
	}
	return nil
}
