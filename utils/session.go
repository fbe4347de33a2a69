package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// SessionStoreKey session store'un fiber locals içindeki anahtarıdır.
const SessionStoreKey = "session_store"

var ErrSessionStoreMissing = errors.New("session store bulunamadı")

// SessionStart isteğe ait session'ı açar. Store, router tarafından locals'a konur.
func SessionStart(c *fiber.Ctx) (*session.Session, error) {
	store, ok := c.Locals(SessionStoreKey).(*session.Store)
	if !ok || store == nil {
		return nil, ErrSessionStoreMissing
	}
	return store.Get(c)
}

// SessionID tarayıcı oturumunun kimliğini döndürür. Session yeni oluşturulduysa
// cookie'nin yazılması için kaydedilir.
func SessionID(c *fiber.Ctx) (string, error) {
	sess, err := SessionStart(c)
	if err != nil {
		return "", err
	}
	if sess.Fresh() {
		if err := sess.Save(); err != nil {
			return "", err
		}
	}
	return sess.ID(), nil
}
