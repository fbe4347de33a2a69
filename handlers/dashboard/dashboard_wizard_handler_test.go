package handlers

import (
	"errors"
	"fmt"
	"testing"

	"kartvizit.link/forms"
	"kartvizit.link/models"
	"kartvizit.link/pkg/flashmessages"
	"kartvizit.link/pkg/upload"
	"kartvizit.link/services"
	"kartvizit.link/wizard"

	"github.com/stretchr/testify/assert"
)

func TestNavURL(t *testing.T) {
	assert.Equal(t, "/dashboard/cards/edit/acme-x1y2z3?step=1", navURL(wizard.NavEdit{Slug: "acme-x1y2z3", Step: 1}))
	assert.Equal(t, "/dashboard/cards/edit/acme-x1y2z3?step=4", navURL(wizard.NavStep{Slug: "acme-x1y2z3", Step: 4}))
	assert.Equal(t, "/dashboard/cards/wizard", navURL(wizard.NavStep{Step: 0}))
	assert.Equal(t, "/dashboard/cards", navURL(wizard.NavListing{}))
}

func TestCurrentURL(t *testing.T) {
	v := wizard.View{State: wizard.State{Phase: wizard.PhaseIdle, Step: 0}}
	assert.Equal(t, wizardPath, currentURL(v))

	v.Identity = models.CardIdentity{ID: 7, Slug: "acme"}
	v.State.Step = 3
	assert.Equal(t, "/dashboard/cards/edit/acme?step=3", currentURL(v))

	v.State.Phase = wizard.PhaseExited
	assert.Equal(t, cardsPath, currentURL(v))
}

func TestDescribeError(t *testing.T) {
	fields := forms.FieldErrors{"email": "Geçerli bir e-posta adresi girin."}

	n := describeError(&wizard.ValidationError{Step: models.SectionCompanyInfo, Fields: fields})
	assert.Equal(t, flashmessages.FlashErrorKey, n.Key)
	assert.Equal(t, fields, n.Fields)

	n = describeError(forms.FieldErrors{"productImage": "Bir dosya seçin."})
	assert.True(t, n.Fields.Has("productImage"))

	n = describeError(&wizard.UploadError{Step: models.SectionGallery, Err: errors.New("s3 down")})
	assert.Equal(t, flashmessages.FlashErrorKey, n.Key)
	assert.NotContains(t, n.Message, "s3 down")

	n = describeError(&wizard.PersistenceError{Step: models.SectionCompanyInfo, Creating: true, Err: services.ErrCardForbidden})
	assert.Contains(t, n.Message, "oluşturulamadı")
	assert.Contains(t, n.Message, services.ErrCardForbidden.Error())

	n = describeError(&wizard.PersistenceError{Step: models.SectionBankDetails, Err: fmt.Errorf("dial tcp: refused")})
	assert.Contains(t, n.Message, "Bölüm kaydedilemedi")
	assert.NotContains(t, n.Message, "dial tcp")

	n = describeError(wizard.ErrRefreshConflict)
	assert.Equal(t, flashmessages.FlashWarningKey, n.Key)
	assert.False(t, n.Log)

	n = describeError(errors.New("boom"))
	assert.True(t, n.Log)
}

func TestFileMessage(t *testing.T) {
	assert.Equal(t, "Dosya boyutu sınırı aşıyor.", fileMessage(fmt.Errorf("%w: a.png", upload.ErrFileTooLarge)))
	assert.Equal(t, "Desteklenmeyen dosya türü.", fileMessage(fmt.Errorf("%w: text/plain", upload.ErrUnsupportedType)))
	assert.Equal(t, "Dosya okunamadı.", fileMessage(errors.New("eof")))
}
