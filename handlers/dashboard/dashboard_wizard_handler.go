package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"kartvizit.link/configs"
	"kartvizit.link/configs/configslog"
	"kartvizit.link/forms"
	"kartvizit.link/models"
	"kartvizit.link/pkg/flashmessages"
	"kartvizit.link/pkg/renderer"
	"kartvizit.link/services"
	"kartvizit.link/utils"
	"kartvizit.link/wizard"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	cardsPath       = "/dashboard/cards"
	wizardPath      = "/dashboard/cards/wizard"
	fieldErrorsKey  = "fieldErrors"
	wizardLayout    = "layouts/dashboard_layout"
	wizardView      = "dashboard/cards/wizard"
	wizardRetryView = "dashboard/cards/retry"
)

// WizardHandler kartvizit oluşturma/düzenleme sihirbazının HTTP kabuğudur.
// Her tarayıcı oturumunun sihirbazı registry'de tutulur.
type WizardHandler struct {
	registry *wizard.Registry
	maxBytes int64
	now      func() time.Time
}

func NewWizardHandler(registry *wizard.Registry) *WizardHandler {
	return &WizardHandler{
		registry: registry,
		maxBytes: configs.App().UploadMaxBytes,
		now:      time.Now,
	}
}

func (h *WizardHandler) orchestrator(c *fiber.Ctx) (*wizard.Orchestrator, error) {
	sid, err := utils.SessionID(c)
	if err != nil {
		configslog.Log.Error("Wizard - oturum kimliği alınamadı", zap.Error(err))
		return nil, err
	}
	return h.registry.Get(sid), nil
}

// editURL düzenleme adresi; step adımın sıfır tabanlı sırasıdır.
func editURL(slug string, step int) string {
	return fmt.Sprintf("%s/edit/%s?step=%d", cardsPath, url.PathEscape(slug), step)
}

// navURL sihirbazın yönlendirme isteğini adrese çevirir.
func navURL(nav wizard.Nav) string {
	switch n := nav.(type) {
	case wizard.NavEdit:
		return editURL(n.Slug, n.Step)
	case wizard.NavStep:
		if n.Slug == "" {
			return wizardPath
		}
		return editURL(n.Slug, n.Step)
	default:
		return cardsPath
	}
}

// currentURL sihirbazın bulunduğu adımın adresi.
func currentURL(v wizard.View) string {
	switch {
	case v.State.Phase == wizard.PhaseExited:
		return cardsPath
	case v.Identity.IsZero():
		return wizardPath
	default:
		return editURL(v.Identity.Slug, v.State.Step)
	}
}

func (h *WizardHandler) back(c *fiber.Ctx, o *wizard.Orchestrator) error {
	return c.Redirect(currentURL(o.View()), fiber.StatusSeeOther)
}

// ShowCreate yeni kartvizit için sihirbazı sıfırlar.
func (h *WizardHandler) ShowCreate(c *fiber.Ctx) error {
	o, err := h.orchestrator(c)
	if err != nil {
		return fiber.ErrInternalServerError
	}
	o.Reset()
	return c.Redirect(wizardPath, fiber.StatusFound)
}

// ShowWizard henüz oluşturulmamış kartvizitin sihirbazını gösterir.
func (h *WizardHandler) ShowWizard(c *fiber.Ctx) error {
	o, err := h.orchestrator(c)
	if err != nil {
		return fiber.ErrInternalServerError
	}
	v := o.View()
	if v.State.Phase == wizard.PhaseExited || v.LoadErr != nil {
		o.Reset()
		v = o.View()
	}
	if !v.Identity.IsZero() {
		return c.Redirect(currentURL(v), fiber.StatusFound)
	}
	return h.render(c, v, "Yeni Kartvizit")
}

// ShowEdit kaydı yükler ya da aynı kayıtta istenen adıma geçer.
func (h *WizardHandler) ShowEdit(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return c.Redirect(cardsPath, fiber.StatusFound)
	}
	step := c.QueryInt("step", 0)

	o, err := h.orchestrator(c)
	if err != nil {
		return fiber.ErrInternalServerError
	}

	v := o.View()
	if v.Identity.Slug != slug || v.LoadErr != nil || v.State.Phase == wizard.PhaseExited {
		if err := o.Load(c.UserContext(), slug, step); err != nil {
			var fe *wizard.FetchError
			if errors.As(err, &fe) {
				return h.renderRetry(c, slug, fe)
			}
			h.flashError(c, err)
			return c.Redirect(cardsPath, fiber.StatusSeeOther)
		}
	} else if step != v.State.Step {
		if _, err := o.JumpTo(step); err != nil {
			h.flashError(c, err)
			return h.back(c, o)
		}
	}

	v = o.View()
	if want := editURL(slug, v.State.Step); step != v.State.Step {
		// Aralık dışı adım ilk adıma çekildi; adres gerçek adımı göstermeli.
		return c.Redirect(want, fiber.StatusFound)
	}
	title := "Kartviziti Düzenle"
	if info := v.Forms.Company.Values.BusinessName; info != "" {
		title = info + " - Düzenle"
	}
	return h.render(c, v, title)
}

func (h *WizardHandler) renderRetry(c *fiber.Ctx, slug string, fe *wizard.FetchError) error {
	status := http.StatusBadGateway
	switch {
	case errors.Is(fe, services.ErrCardNotFound):
		status = http.StatusNotFound
	case errors.Is(fe, services.ErrCardForbidden):
		status = http.StatusForbidden
	}
	data := fiber.Map{
		"Title":     "Kartvizit yüklenemedi",
		"Slug":      slug,
		"RetryURL":  editURL(slug, 0),
		"Retryable": status == http.StatusBadGateway,
	}
	data[renderer.FlashErrorKeyView] = describeError(fe).Message
	return renderer.Render(c, wizardRetryView, wizardLayout, data, status)
}

func (h *WizardHandler) render(c *fiber.Ctx, v wizard.View, title string) error {
	fieldErrors := map[string]string{}
	if data := flashmessages.GetFlashFormData(c); data != nil {
		if raw, ok := data[fieldErrorsKey].(map[string]any); ok {
			for k, msg := range raw {
				if s, ok := msg.(string); ok {
					fieldErrors[k] = s
				}
			}
		}
	}

	data := fiber.Map{
		"Title":              title,
		"View":               v,
		"Steps":              wizard.Steps,
		"StepNumber":         v.State.Step + 1,
		"StepCount":          wizard.StepCount,
		"CanJump":            !v.Identity.IsZero(),
		"FieldErrors":        fieldErrors,
		"EstablishmentYears": forms.EstablishmentYears(h.now()),
		"Currencies":         forms.CurrencyCodes(),
		"AccountTypes":       forms.AccountTypes,
		"GalleryRemaining":   v.Forms.Gallery.Remaining(),
		"ServiceEntries":     v.Forms.Services.Entries(),
		"ServiceDraft":       v.Forms.Services.Draft(),
		"ServiceEditID":      v.Forms.Services.EditID(),
		"SubmitDisabled":     v.Busy || (v.Current.Key == models.SectionServices && !v.Forms.Services.CanSubmit()),
	}
	if v.Notice != "" {
		data[renderer.FlashWarningKeyView] = v.Notice
	}
	return renderer.Render(c, wizardView, wizardLayout, data, http.StatusOK)
}

// Submit aktif adımı kaydeder.
func (h *WizardHandler) Submit(c *fiber.Ctx) error {
	o, err := h.orchestrator(c)
	if err != nil {
		return fiber.ErrInternalServerError
	}

	key := models.SectionKey(c.FormValue("step"))
	in, fileErrs, err := h.stepInput(c, key)
	if err != nil {
		h.flashError(c, err)
		return h.back(c, o)
	}
	if len(fileErrs) > 0 {
		h.flashError(c, fileErrs)
		return h.back(c, o)
	}

	nav, err := o.Submit(c.UserContext(), in)
	if err != nil {
		h.flashError(c, err)
		return h.back(c, o)
	}

	switch nav.(type) {
	case wizard.NavEdit:
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Kartvizit oluşturuldu.")
	case wizard.NavListing:
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Kartvizit kaydedildi.")
	default:
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Bölüm kaydedildi.")
	}
	return c.Redirect(navURL(nav), fiber.StatusSeeOther)
}

// Back önceki adıma döner.
func (h *WizardHandler) Back(c *fiber.Ctx) error {
	o, err := h.orchestrator(c)
	if err != nil {
		return fiber.ErrInternalServerError
	}
	nav, err := o.Back()
	if err != nil {
		h.flashError(c, err)
		return h.back(c, o)
	}
	return c.Redirect(navURL(nav), fiber.StatusSeeOther)
}

// Jump adım menüsünden doğrudan bir adıma geçer (sıfır tabanlı).
func (h *WizardHandler) Jump(c *fiber.Ctx) error {
	o, err := h.orchestrator(c)
	if err != nil {
		return fiber.ErrInternalServerError
	}
	step, err := c.ParamsInt("step")
	if err != nil {
		h.flashError(c, wizard.ErrStepOutOfRange)
		return h.back(c, o)
	}
	nav, err := o.JumpTo(step)
	if err != nil {
		h.flashError(c, err)
		return h.back(c, o)
	}
	return c.Redirect(navURL(nav), fiber.StatusSeeOther)
}

// Refresh kaydı sunucudan yeniden okur.
func (h *WizardHandler) Refresh(c *fiber.Ctx) error {
	o, err := h.orchestrator(c)
	if err != nil {
		return fiber.ErrInternalServerError
	}
	if err := o.Refresh(c.UserContext()); err != nil {
		h.flashError(c, err)
		return h.back(c, o)
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Kartvizit yenilendi.")
	return h.back(c, o)
}

// SaveServiceEntry düzenleyicideki ürün/hizmeti listeye yazar.
func (h *WizardHandler) SaveServiceEntry(c *fiber.Ctx) error {
	o, err := h.orchestrator(c)
	if err != nil {
		return fiber.ErrInternalServerError
	}
	var values forms.ServiceValues
	if err := c.BodyParser(&values); err != nil {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz form verisi.")
		return h.back(c, o)
	}
	image, err := h.formFile(c, "productImage", imageFile)
	if err != nil {
		h.flashError(c, forms.FieldErrors{"productImage": fileMessage(err)})
		return h.back(c, o)
	}

	err = o.EditServices(func(f *forms.ServicesForm) error {
		if errs := f.SaveEntry(values, image); len(errs) > 0 {
			return errs
		}
		return nil
	})
	if err != nil {
		h.flashError(c, err)
	}
	return h.back(c, o)
}

// EditServiceEntry listedeki kaydı düzenleyiciye alır.
func (h *WizardHandler) EditServiceEntry(c *fiber.Ctx) error {
	return h.editServices(c, func(f *forms.ServicesForm) error {
		return f.StartEdit(c.Params("id"))
	})
}

func (h *WizardHandler) RemoveServiceEntry(c *fiber.Ctx) error {
	return h.editServices(c, func(f *forms.ServicesForm) error {
		return f.RemoveEntry(c.Params("id"))
	})
}

func (h *WizardHandler) CancelServiceEdit(c *fiber.Ctx) error {
	return h.editServices(c, func(f *forms.ServicesForm) error {
		f.CancelEdit()
		return nil
	})
}

func (h *WizardHandler) editServices(c *fiber.Ctx, fn func(*forms.ServicesForm) error) error {
	o, err := h.orchestrator(c)
	if err != nil {
		return fiber.ErrInternalServerError
	}
	if err := o.EditServices(fn); err != nil {
		h.flashError(c, err)
	}
	return h.back(c, o)
}

// AddGalleryImages seçilen görselleri galeriye ekler. Sınırı aşan görseller atılır.
func (h *WizardHandler) AddGalleryImages(c *fiber.Ctx) error {
	o, err := h.orchestrator(c)
	if err != nil {
		return fiber.ErrInternalServerError
	}
	refs, err := h.formFiles(c, "images", imageFile)
	if err != nil {
		h.flashError(c, forms.FieldErrors{"images": fileMessage(err)})
		return h.back(c, o)
	}
	dropped := 0
	err = o.EditGallery(func(f *forms.GalleryForm) error {
		dropped = f.Add(refs...)
		return nil
	})
	if err != nil {
		h.flashError(c, err)
		return h.back(c, o)
	}
	if dropped > 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashWarningKey,
			fmt.Sprintf("Galeri en fazla %d görsel alabilir; %d görsel eklenmedi.", forms.MaxGalleryImages, dropped))
	}
	return h.back(c, o)
}

func (h *WizardHandler) RemoveGalleryImage(c *fiber.Ctx) error {
	o, err := h.orchestrator(c)
	if err != nil {
		return fiber.ErrInternalServerError
	}
	index, err := c.ParamsInt("index")
	if err != nil {
		return h.back(c, o)
	}
	err = o.EditGallery(func(f *forms.GalleryForm) error {
		if !f.Remove(index) {
			return forms.ErrEntryNotFound
		}
		return nil
	})
	if err != nil {
		h.flashError(c, err)
	}
	return h.back(c, o)
}

func (h *WizardHandler) flashError(c *fiber.Ctx, err error) {
	n := describeError(err)
	if n.Log {
		configslog.Log.Error("Wizard - beklenmeyen hata", zap.String("path", c.Path()), zap.Error(err))
	}
	if len(n.Fields) > 0 {
		_ = flashmessages.SetFlashFormData(c, fiber.Map{fieldErrorsKey: n.Fields})
	}
	_ = flashmessages.SetFlashMessage(c, n.Key, n.Message)
}
