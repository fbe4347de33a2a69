package handlers

import (
	"errors"

	"kartvizit.link/forms"
	"kartvizit.link/pkg/flashmessages"
	"kartvizit.link/services"
	"kartvizit.link/wizard"
)

// notice bir hatanın kullanıcıya nasıl gösterileceğidir.
type notice struct {
	Key     string
	Message string
	Fields  forms.FieldErrors
	Log     bool
}

// describeError sihirbaz hatalarını flash mesajına çevirir. Dosya yükleme ve
// kayıt hataları da kullanıcıya gösterilir; form durumu korunur.
func describeError(err error) notice {
	var (
		ve     *wizard.ValidationError
		ue     *wizard.UploadError
		pe     *wizard.PersistenceError
		fe     *wizard.FetchError
		fields forms.FieldErrors
	)
	switch {
	case errors.As(err, &ve):
		return notice{Key: flashmessages.FlashErrorKey, Message: "Lütfen işaretli alanları düzeltin.", Fields: ve.Fields}
	case errors.As(err, &fields):
		return notice{Key: flashmessages.FlashErrorKey, Message: "Lütfen işaretli alanları düzeltin.", Fields: fields}
	case errors.As(err, &ue):
		return notice{Key: flashmessages.FlashErrorKey,
			Message: "Dosyalar yüklenemedi, bölüm kaydedilmedi. Lütfen tekrar deneyin."}
	case errors.As(err, &pe):
		prefix := "Bölüm kaydedilemedi: "
		if pe.Creating {
			prefix = "Kartvizit oluşturulamadı: "
		}
		return notice{Key: flashmessages.FlashErrorKey, Message: prefix + serviceMessage(pe.Err)}
	case errors.As(err, &fe):
		return notice{Key: flashmessages.FlashErrorKey, Message: "Kartvizit yüklenemedi: " + serviceMessage(fe.Err)}
	case errors.Is(err, errInvalidForm):
		return notice{Key: flashmessages.FlashErrorKey, Message: "Geçersiz form verisi."}
	case errors.Is(err, forms.ErrEntryNotFound):
		return notice{Key: flashmessages.FlashWarningKey, Message: "Kayıt bulunamadı, liste güncellenmiş olabilir."}
	case wizard.IsFlowError(err):
		return notice{Key: flashmessages.FlashWarningKey, Message: err.Error() + "."}
	default:
		return notice{Key: flashmessages.FlashErrorKey, Message: "Beklenmeyen bir hata oluştu.", Log: true}
	}
}

// serviceMessage servis hatalarını olduğu gibi, diğerlerini genel bir metinle gösterir.
func serviceMessage(err error) string {
	var se services.CardServiceError
	if errors.As(err, &se) {
		return se.Error()
	}
	return "sunucuya ulaşılamadı"
}
