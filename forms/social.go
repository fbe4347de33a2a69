package forms

import "kartvizit.link/models"

// SocialValues tüm alanları isteğe bağlıdır; dolu olanlar platform kalıbına uymalıdır.
type SocialValues struct {
	Facebook   string `form:"facebook" validate:"omitempty,social=facebook"`
	Instagram  string `form:"instagram" validate:"omitempty,social=instagram"`
	Youtube    string `form:"youtube" validate:"omitempty,social=youtube"`
	Twitter    string `form:"twitter" validate:"omitempty,social=twitter"`
	Linkedin   string `form:"linkdin" validate:"omitempty,social=linkedin"`
	Pinterest  string `form:"pinterest" validate:"omitempty,social=pinterest"`
	OtherLink1 string `form:"otherLink1" validate:"omitempty,httpurl"`
	OtherLink2 string `form:"otherLink2" validate:"omitempty,httpurl"`
}

type SocialInput struct {
	Values SocialValues
}

func (SocialInput) Key() models.SectionKey { return models.SectionSocialVideo }

type SocialForm struct {
	Values SocialValues
	dirty  bool
}

func (f *SocialForm) Key() models.SectionKey { return models.SectionSocialVideo }

func (f *SocialForm) Hydrate(card *models.Card) {
	f.Values = SocialValues{}
	f.dirty = false
	if s := card.Social(); s != nil {
		f.Values = SocialValues(*s)
	}
}

func (f *SocialForm) Apply(in SocialInput) {
	if in.Values != f.Values {
		f.Values = in.Values
		f.dirty = true
	}
}

func (f *SocialForm) Validate() FieldErrors { return validateStruct(f.Values) }
func (f *SocialForm) CanSubmit() bool       { return len(f.Validate()) == 0 }
func (f *SocialForm) Dirty() bool           { return f.dirty }

func (f *SocialForm) Emit() models.SocialVideo {
	return models.SocialVideo(f.Values)
}
