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

// PanelCardHandler kullanıcının kendi kartvizitleri için handler. Kartlar
// yalnızca görüntülenir; oluşturma ve düzenleme yöneticiye aittir.
type PanelCardHandler struct {
	service services.ICardService
}

func NewPanelCardHandler() *PanelCardHandler {
	return &PanelCardHandler{service: services.NewCardService()}
}

// ListCards kullanıcının e-postasına kayıtlı kartvizitleri listeler.
func (h *PanelCardHandler) ListCards(c *fiber.Ctx) error {
	params := queryparams.DefaultListParams("created_at")
	if err := c.QueryParser(&params); err != nil {
		configslog.Log.Warn("Panel ListCards: Query parse error", zap.Error(err))
		params = queryparams.DefaultListParams("created_at")
	}
	params.Validate()

	renderData := fiber.Map{
		"Title":  "Kartvizitlerim",
		"Params": params,
	}
	result, err := h.service.ListCards(c.UserContext(), params)
	if err != nil {
		renderData[renderer.FlashErrorKeyView] = "Kartvizitler listelenirken bir hata oluştu."
		result = queryparams.NewPaginatedResult([]models.Card{}, 0, params)
		configslog.Log.Error("Panel - ListCards Error", zap.Any("userID", c.Locals("userID")), zap.Error(err))
	}
	renderData["Result"] = result
	return renderer.Render(c, "panel/cards/list", "layouts/panel_layout", renderData, http.StatusOK)
}

// ShowCard kartvizitin tüm bölümlerini gösterir.
func (h *PanelCardHandler) ShowCard(c *fiber.Ctx) error {
	slug := c.Params("slug")
	card, err := h.service.Fetch(c.UserContext(), slug)
	if err != nil {
		errMsg := "Kartvizit bulunamadı veya bu kartviziti görüntüleme yetkiniz yok."
		if !errors.Is(err, services.ErrCardNotFound) && !errors.Is(err, services.ErrCardForbidden) {
			errMsg = "Kartvizit bilgileri alınırken bir hata oluştu."
			configslog.Log.Error("Panel - ShowCard Error", zap.String("slug", slug), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, errMsg)
		return c.Redirect("/panel/cards", fiber.StatusSeeOther)
	}

	return renderer.Render(c, "panel/cards/show", "layouts/panel_layout", fiber.Map{
		"Title": card.BusinessName,
		"Card":  card,
	})
}
