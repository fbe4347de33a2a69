package handlers

import (
	"errors"

	"kartvizit.link/forms"
	"kartvizit.link/models"
	"kartvizit.link/pkg/upload"
	"kartvizit.link/wizard"

	"github.com/gofiber/fiber/v2"
)

var errInvalidForm = errors.New("geçersiz form verisi")

// fileCheck dosya alanının kabul ettiği türü denetler.
type fileCheck func(upload.FileHandle) error

var (
	imageFile    fileCheck = upload.CheckImage
	documentFile fileCheck = upload.CheckDocument
)

// stepInput isteği adımın girdisine çevirir. Reddedilen dosyalar alan
// hatası olarak döner; bu durumda gönderim yapılmamalıdır.
func (h *WizardHandler) stepInput(c *fiber.Ctx, key models.SectionKey) (forms.StepInput, forms.FieldErrors, error) {
	fileErrs := forms.FieldErrors{}
	file := func(field string, check fileCheck) upload.FileRef {
		ref, err := h.formFile(c, field, check)
		if err != nil {
			fileErrs[field] = fileMessage(err)
		}
		return ref
	}

	switch key {
	case models.SectionCompanyInfo:
		var in forms.CompanyInput
		if err := c.BodyParser(&in.Values); err != nil {
			return nil, nil, errInvalidForm
		}
		in.Logo = file("logoImage", imageFile)
		return in, fileErrs, nil
	case models.SectionSocialVideo:
		var in forms.SocialInput
		if err := c.BodyParser(&in.Values); err != nil {
			return nil, nil, errInvalidForm
		}
		return in, fileErrs, nil
	case models.SectionAboutInfo:
		var in forms.AboutInput
		if err := c.BodyParser(&in.Values); err != nil {
			return nil, nil, errInvalidForm
		}
		in.Document = file("documents", documentFile)
		return in, fileErrs, nil
	case models.SectionServices:
		return forms.ServicesInput{}, fileErrs, nil
	case models.SectionBankDetails:
		var in forms.BankInput
		if err := c.BodyParser(&in.Values); err != nil {
			return nil, nil, errInvalidForm
		}
		in.QR = forms.BankQRCodes{
			GooglePay: file("googlePayQRImage", imageFile),
			PhonePe:   file("phonePeQRImage", imageFile),
			Upi:       file("upiQRImage", imageFile),
		}
		return in, fileErrs, nil
	case models.SectionGallery:
		refs, err := h.formFiles(c, "images", imageFile)
		if err != nil {
			fileErrs["images"] = fileMessage(err)
		}
		return forms.GalleryInput{Add: refs}, fileErrs, nil
	case models.SectionExtraDetails:
		var in forms.ExtraInput
		if err := c.BodyParser(&in.Values); err != nil {
			return nil, nil, errInvalidForm
		}
		return in, fileErrs, nil
	default:
		return nil, nil, wizard.ErrStepMismatch
	}
}

// formFile alan boşsa nil döndürür; formdaki mevcut dosya korunur.
func (h *WizardHandler) formFile(c *fiber.Ctx, field string, check fileCheck) (upload.FileRef, error) {
	fh, err := c.FormFile(field)
	if err != nil || fh == nil {
		return nil, nil
	}
	f, err := upload.FromMultipart(fh, h.maxBytes)
	if err != nil {
		return nil, err
	}
	if err := check(f); err != nil {
		return nil, err
	}
	return upload.PendingFile(f), nil
}

// formFiles çoklu dosya alanını seçim sırasıyla okur. Tek bir dosya
// reddedilirse hiçbiri alınmaz.
func (h *WizardHandler) formFiles(c *fiber.Ctx, field string, check fileCheck) ([]upload.FileRef, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}
	var refs []upload.FileRef
	for _, fh := range form.File[field] {
		f, err := upload.FromMultipart(fh, h.maxBytes)
		if err != nil {
			return nil, err
		}
		if err := check(f); err != nil {
			return nil, err
		}
		refs = append(refs, upload.PendingFile(f))
	}
	return refs, nil
}

func fileMessage(err error) string {
	switch {
	case errors.Is(err, upload.ErrFileTooLarge):
		return "Dosya boyutu sınırı aşıyor."
	case errors.Is(err, upload.ErrUnsupportedType):
		return "Desteklenmeyen dosya türü."
	case errors.Is(err, upload.ErrEmptyFile):
		return "Dosya boş."
	default:
		return "Dosya okunamadı."
	}
}
