package wizard

import (
	"fmt"

	"kartvizit.link/forms"
	"kartvizit.link/models"
)

// WizardError akış kurallarının ihlallerini anlatan sabit hatalardır.
type WizardError string

func (e WizardError) Error() string { return string(e) }

const (
	ErrSubmitInProgress WizardError = "bu adım zaten kaydediliyor"
	ErrIdentityUnbound  WizardError = "kartvizit henüz oluşturulmadı, önce ilk adımı kaydedin"
	ErrJumpNotAllowed   WizardError = "yeni kartvizitte adımlar sırayla doldurulmalıdır"
	ErrNoPreviousStep   WizardError = "ilk adımdan geri gidilemez"
	ErrStepOutOfRange   WizardError = "geçersiz adım"
	ErrStepMismatch     WizardError = "form aktif adıma ait değil"
	ErrStaleResult      WizardError = "sihirbaz bu arada değişti, sonuç uygulanmadı"
	ErrWizardClosed     WizardError = "sihirbaz tamamlandı"
	ErrNotEditing       WizardError = "yenilenecek bir kartvizit yok"
	ErrRefreshConflict  WizardError = "kartvizit başka bir yerde güncellendi; kaydedilmemiş değişiklikleriniz korundu"
)

// ValidationError formun yerel doğrulaması başarısız oldu; ağa hiçbir şey gitmedi.
type ValidationError struct {
	Step   models.SectionKey
	Fields forms.FieldErrors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s doğrulanamadı: %s", e.Step, e.Fields.Error())
}

// UploadError adımdaki dosyalardan biri yüklenemedi; gönderim tamamen iptal edildi.
type UploadError struct {
	Step models.SectionKey
	Err  error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("%s dosyaları yüklenemedi: %v", e.Step, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// PersistenceError oluşturma ya da güncelleme çağrısı başarısız oldu.
type PersistenceError struct {
	Step     models.SectionKey
	Creating bool
	Err      error
}

func (e *PersistenceError) Error() string {
	op := "güncellenemedi"
	if e.Creating {
		op = "oluşturulamadı"
	}
	return fmt.Sprintf("%s %s: %v", e.Step, op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// FetchError düzenlenecek kayıt yüklenemedi. Sihirbaz bu durumda hiçbir adıma girmez.
type FetchError struct {
	Slug string
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s kartviziti yüklenemedi: %v", e.Slug, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
