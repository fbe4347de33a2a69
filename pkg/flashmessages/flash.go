package flashmessages

import (
	"encoding/json"

	"kartvizit.link/configs/configslog"
	"kartvizit.link/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	FlashSuccessKey  = "flash_success"
	FlashErrorKey    = "flash_error"
	FlashWarningKey  = "flash_warning"
	flashFormDataKey = "flash_form_data"
)

// FlashMessages bir sonraki istekte gösterilecek mesajlardır.
type FlashMessages struct {
	Success string
	Error   string
	Warning string
}

// SetFlashMessage mesajı session'a yazar; ilk okumada silinir.
func SetFlashMessage(c *fiber.Ctx, key, message string) error {
	sess, err := utils.SessionStart(c)
	if err != nil {
		configslog.Log.Warn("Flash mesaj yazılamadı", zap.String("key", key), zap.Error(err))
		return err
	}
	sess.Set(key, message)
	return sess.Save()
}

// GetFlashMessages bekleyen mesajları okur ve session'dan temizler.
func GetFlashMessages(c *fiber.Ctx) (FlashMessages, error) {
	var msgs FlashMessages
	sess, err := utils.SessionStart(c)
	if err != nil {
		return msgs, err
	}
	pop := func(key string) string {
		v, _ := sess.Get(key).(string)
		if v != "" {
			sess.Delete(key)
		}
		return v
	}
	msgs.Success = pop(FlashSuccessKey)
	msgs.Error = pop(FlashErrorKey)
	msgs.Warning = pop(FlashWarningKey)
	return msgs, sess.Save()
}

// SetFlashFormData hata sonrası formu yeniden doldurmak için veriyi saklar.
func SetFlashFormData(c *fiber.Ctx, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	sess, err := utils.SessionStart(c)
	if err != nil {
		return err
	}
	sess.Set(flashFormDataKey, string(raw))
	return sess.Save()
}

// GetFlashFormData saklanan form verisini map olarak döndürür ve siler.
func GetFlashFormData(c *fiber.Ctx) map[string]any {
	sess, err := utils.SessionStart(c)
	if err != nil {
		return nil
	}
	raw, _ := sess.Get(flashFormDataKey).(string)
	if raw == "" {
		return nil
	}
	sess.Delete(flashFormDataKey)
	_ = sess.Save()

	var data map[string]any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil
	}
	return data
}
