package handlers

import (
	"errors"
	"regexp"

	"kartvizit.link/configs/configslog"
	"kartvizit.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

const maxSlugLength = 80

// LinkHandler herkese açık kartvizit sayfasını sunar.
type LinkHandler struct {
	cardService services.ICardService
}

func NewLinkHandler() *LinkHandler {
	return &LinkHandler{cardService: services.NewCardService()}
}

// HandleLink :slug parametresine karşılık gelen yayındaki kartviziti gösterir.
func (h *LinkHandler) HandleLink(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if len(slug) > maxSlugLength || !slugPattern.MatchString(slug) {
		configslog.SLog.Warnf("Geçersiz formatta kartvizit adresi denendi: %s", slug)
		return h.renderNotFound(c, "Geçersiz Link")
	}

	card, err := h.cardService.GetPublicCard(c.UserContext(), slug)
	if err != nil {
		if errors.Is(err, services.ErrCardNotFound) {
			return h.renderNotFound(c, "Kartvizit Bulunamadı")
		}
		configslog.Log.Error("HandleLink: GetPublicCard error", zap.String("slug", slug), zap.Error(err))
		return h.renderError(c, "Kartvizit yüklenirken bir sorun oluştu.")
	}

	return c.Render("public/card_view", fiber.Map{
		"Title": card.BusinessName,
		"Card":  card,
	}, "layouts/public_layout")
}

func (h *LinkHandler) renderNotFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{
		"Title":   "Bulunamadı",
		"Message": message,
	}, "layouts/error_layout")
}

func (h *LinkHandler) renderError(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusInternalServerError).Render("errors/500", fiber.Map{
		"Title":   "Sunucu Hatası",
		"Message": message,
	}, "layouts/error_layout")
}
