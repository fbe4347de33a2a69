package forms

import (
	"kartvizit.link/models"
	"kartvizit.link/pkg/upload"
)

type AboutValues struct {
	EstablishmentYear int    `form:"establishmentYear" validate:"required,estyear"`
	NatureOfBusiness  string `form:"natureOfBusiness" validate:"required"`
	OtherBusiness     string `form:"otherBusiness"`
	GstinNo           string `form:"gstinNo"`
	AboutCompany      string `form:"aboutCompany" validate:"required"`
}

// AboutInput Document nil ise mevcut belge korunur.
type AboutInput struct {
	Values   AboutValues
	Document upload.FileRef
}

func (AboutInput) Key() models.SectionKey { return models.SectionAboutInfo }

type AboutDraft struct {
	Info     models.AboutInfo
	Document upload.FileRef
}

type AboutForm struct {
	Values   AboutValues
	Document upload.FileRef
	dirty    bool
}

func (f *AboutForm) Key() models.SectionKey { return models.SectionAboutInfo }

func (f *AboutForm) Hydrate(card *models.Card) {
	f.Values = AboutValues{}
	f.Document = nil
	f.dirty = false

	a := card.About()
	if a == nil {
		return
	}
	f.Values = AboutValues{
		EstablishmentYear: a.EstablishmentYear,
		NatureOfBusiness:  a.NatureOfBusiness,
		OtherBusiness:     a.OtherBusiness,
		GstinNo:           a.GstinNo,
		AboutCompany:      a.AboutCompany,
	}
	f.Document = upload.FromString(a.Documents)
}

func (f *AboutForm) Apply(in AboutInput) {
	if in.Values != f.Values {
		f.Values = in.Values
		f.dirty = true
	}
	if in.Document != nil {
		f.Document = in.Document
		f.dirty = true
	}
}

func (f *AboutForm) Validate() FieldErrors { return validateStruct(f.Values) }
func (f *AboutForm) CanSubmit() bool       { return len(f.Validate()) == 0 }
func (f *AboutForm) Dirty() bool           { return f.dirty }

func (f *AboutForm) Emit() AboutDraft {
	v := f.Values
	return AboutDraft{
		Info: models.AboutInfo{
			EstablishmentYear: v.EstablishmentYear,
			NatureOfBusiness:  v.NatureOfBusiness,
			OtherBusiness:     v.OtherBusiness,
			GstinNo:           v.GstinNo,
			AboutCompany:      v.AboutCompany,
		},
		Document: f.Document,
	}
}
