package handlers

import (
	"errors"
	"net/http"

	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"
	"kartvizit.link/pkg/flashmessages"
	"kartvizit.link/pkg/queryparams"
	"kartvizit.link/pkg/renderer"
	"kartvizit.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CardHandler kartvizit listesi ve silme işlemleri (Dashboard).
type CardHandler struct {
	service services.ICardService
}

func NewCardHandler() *CardHandler {
	return &CardHandler{service: services.NewCardService()}
}

// ListCards tüm kartvizitleri listeler.
func (h *CardHandler) ListCards(c *fiber.Ctx) error {
	params := queryparams.DefaultListParams("created_at")
	if err := c.QueryParser(&params); err != nil {
		configslog.Log.Warn("Dashboard - ListCards: geçersiz sorgu parametreleri", zap.Error(err))
		params = queryparams.DefaultListParams("created_at")
	}
	params.Validate()

	renderData := fiber.Map{
		"Title":  "Kartvizitler",
		"Params": params,
	}

	result, err := h.service.ListCards(c.UserContext(), params)
	if err != nil {
		configslog.Log.Error("Dashboard - ListCards Error", zap.Error(err))
		renderData[renderer.FlashErrorKeyView] = "Kartvizitler listelenirken hata oluştu."
		result = queryparams.NewPaginatedResult([]models.Card{}, 0, params)
	}
	renderData["Result"] = result

	return renderer.Render(c, "dashboard/cards/list", "layouts/dashboard_layout", renderData, http.StatusOK)
}

// DeleteCard kartviziti siler.
func (h *CardHandler) DeleteCard(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/dashboard/cards", fiber.StatusSeeOther)
	}

	if err := h.service.Delete(c.UserContext(), uint(id)); err != nil {
		msg := "Silme hatası: " + err.Error()
		if !errors.Is(err, services.ErrCardNotFound) && !errors.Is(err, services.ErrCardForbidden) {
			configslog.Log.Error("Dashboard - DeleteCard Error", zap.Int("id", id), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, msg)
	} else {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Kartvizit başarıyla silindi.")
	}
	return c.Redirect("/dashboard/cards", fiber.StatusSeeOther)
}
