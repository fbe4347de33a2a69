package forms

import (
	"kartvizit.link/models"
	"kartvizit.link/pkg/upload"
)

type CompanyValues struct {
	BusinessName    string `form:"businessName" validate:"required"`
	Name            string `form:"name" validate:"required"`
	Designation     string `form:"designation" validate:"required"`
	Country         string `form:"country" validate:"required"`
	ContactNumber1  string `form:"contactNumber1" validate:"required,phone10"`
	WhatsappNumber1 string `form:"whatsappNumber1" validate:"required,phone10"`
	ContactNumber2  string `form:"contactNumber2" validate:"omitempty,phone10"`
	WhatsappNumber2 string `form:"whatsappNumber2" validate:"omitempty,phone10"`
	LandlineNumber  string `form:"landlineNumber"`
	Email           string `form:"email" validate:"required,email"`
	WebsiteURL      string `form:"websiteUrl"`
	GoogleMapLink   string `form:"googleMapLink" validate:"required,mapslink"`
	Address         string `form:"address" validate:"required"`
}

// CompanyInput ilk adımın gönderimi. Logo nil ise mevcut logo korunur.
type CompanyInput struct {
	Values CompanyValues
	Logo   upload.FileRef
}

func (CompanyInput) Key() models.SectionKey { return models.SectionCompanyInfo }

// CompanyDraft companyInfo formunun ham çıktısı; logo henüz yüklenmemiş olabilir.
type CompanyDraft struct {
	Info models.CompanyInfo
	Logo upload.FileRef
}

type CompanyForm struct {
	Values CompanyValues
	Logo   upload.FileRef
	dirty  bool
}

func (f *CompanyForm) Key() models.SectionKey { return models.SectionCompanyInfo }

func (f *CompanyForm) Hydrate(card *models.Card) {
	f.Values = CompanyValues{}
	f.Logo = nil
	f.dirty = false

	info := card.Company()
	if info == nil {
		return
	}
	f.Values = CompanyValues{
		BusinessName:    info.BusinessName,
		Name:            info.Name,
		Designation:     info.Designation,
		Country:         info.Country,
		ContactNumber1:  info.ContactNumber1,
		WhatsappNumber1: info.WhatsappNumber1,
		ContactNumber2:  info.ContactNumber2,
		WhatsappNumber2: info.WhatsappNumber2,
		LandlineNumber:  info.LandlineNumber,
		Email:           info.Email,
		WebsiteURL:      info.WebsiteURL,
		GoogleMapLink:   info.GoogleMapLink,
		Address:         info.Address,
	}
	f.Logo = upload.FromString(info.LogoImage)
}

func (f *CompanyForm) Apply(in CompanyInput) {
	if in.Values != f.Values {
		f.Values = in.Values
		f.dirty = true
	}
	if in.Logo != nil {
		f.Logo = in.Logo
		f.dirty = true
	}
}

func (f *CompanyForm) Validate() FieldErrors {
	errs := validateStruct(f.Values)
	return requireFile(errs, "logoImage", f.Logo)
}

func (f *CompanyForm) CanSubmit() bool { return len(f.Validate()) == 0 }
func (f *CompanyForm) Dirty() bool     { return f.dirty }

func (f *CompanyForm) Emit() CompanyDraft {
	v := f.Values
	return CompanyDraft{
		Info: models.CompanyInfo{
			BusinessName:    v.BusinessName,
			Name:            v.Name,
			Designation:     v.Designation,
			Country:         v.Country,
			ContactNumber1:  v.ContactNumber1,
			WhatsappNumber1: v.WhatsappNumber1,
			ContactNumber2:  v.ContactNumber2,
			WhatsappNumber2: v.WhatsappNumber2,
			LandlineNumber:  v.LandlineNumber,
			Email:           v.Email,
			WebsiteURL:      v.WebsiteURL,
			GoogleMapLink:   v.GoogleMapLink,
			Address:         v.Address,
		},
		Logo: f.Logo,
	}
}
