// Package forms kartvizit sihirbazının adım formlarını içerir. Her form kendi
// alan şemasını doğrular, kayıttan doldurulur ve ham (henüz yüklenmemiş
// dosyalar içerebilen) bir çıktı üretir.
package forms

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"kartvizit.link/models"
	"kartvizit.link/pkg/upload"
)

// FieldErrors alan adı -> hata mesajı.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return strings.Join(parts, "; ")
}

// Has alan için hata olup olmadığını söyler. Şablonlarda kullanılır.
func (e FieldErrors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

func (e FieldErrors) add(field, msg string) FieldErrors {
	if e == nil {
		e = FieldErrors{}
	}
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
	return e
}

func requireFile(errs FieldErrors, field string, ref upload.FileRef) FieldErrors {
	if upload.IsEmpty(ref) {
		return errs.add(field, "Bir dosya seçin.")
	}
	return errs
}

// StepForm tüm adım formlarının ortak davranışı.
type StepForm interface {
	Key() models.SectionKey
	// Hydrate formu kayıttaki bölüme sıfırlar; kaydedilmemiş düzenlemeler ve
	// bekleyen dosyalar atılır.
	Hydrate(card *models.Card)
	Validate() FieldErrors
	CanSubmit() bool
	Dirty() bool
}

// StepInput bir adımın gönderiminde gelen kullanıcı girdisidir.
type StepInput interface {
	Key() models.SectionKey
}

var ErrUnknownInput = errors.New("tanınmayan form girdisi")

// Set sihirbazın yedi formunu bir arada tutar.
type Set struct {
	Company  CompanyForm
	Social   SocialForm
	About    AboutForm
	Services ServicesForm
	Bank     BankForm
	Gallery  GalleryForm
	Extra    ExtraForm
}

func NewSet() *Set {
	return &Set{}
}

// Form anahtara karşılık gelen formu döndürür.
func (s *Set) Form(key models.SectionKey) StepForm {
	switch key {
	case models.SectionCompanyInfo:
		return &s.Company
	case models.SectionSocialVideo:
		return &s.Social
	case models.SectionAboutInfo:
		return &s.About
	case models.SectionServices:
		return &s.Services
	case models.SectionBankDetails:
		return &s.Bank
	case models.SectionGallery:
		return &s.Gallery
	case models.SectionExtraDetails:
		return &s.Extra
	default:
		return nil
	}
}

func (s *Set) HydrateAll(card *models.Card) {
	s.Company.Hydrate(card)
	s.Social.Hydrate(card)
	s.About.Hydrate(card)
	s.Services.Hydrate(card)
	s.Bank.Hydrate(card)
	s.Gallery.Hydrate(card)
	s.Extra.Hydrate(card)
}

// Apply girdiyi ilgili forma uygular.
func (s *Set) Apply(in StepInput) error {
	switch v := in.(type) {
	case CompanyInput:
		s.Company.Apply(v)
	case SocialInput:
		s.Social.Apply(v)
	case AboutInput:
		s.About.Apply(v)
	case ServicesInput:
		// Liste girdileri Services formunun kendi metodlarıyla değişir.
	case BankInput:
		s.Bank.Apply(v)
	case GalleryInput:
		s.Gallery.Add(v.Add...)
	case ExtraInput:
		s.Extra.Apply(v)
	default:
		return fmt.Errorf("%w: %T", ErrUnknownInput, in)
	}
	return nil
}

// Clone şablonlara verilmek üzere formların bağımsız bir kopyasını üretir.
func (s *Set) Clone() *Set {
	c := *s
	c.Services = s.Services.clone()
	c.Gallery = s.Gallery.clone()
	return &c
}
