package models

import (
	"gorm.io/datatypes"
)

// Card dijital kartvizitin ana kaydıdır. Her bölüm ayrı bir jsonb kolonunda
// tutulur ve bağımsız olarak boş, tamamlanmış ya da yarım olabilir.
type Card struct {
	BaseModel
	Slug          string `gorm:"type:varchar(80);uniqueIndex;not null" json:"slug"`
	CreatorUserID uint   `gorm:"index;not null" json:"-"`
	OwnerEmail    string `gorm:"type:varchar(150);index" json:"-"` // Kartı görebilecek kullanıcı (companyInfo.email)
	BusinessName  string `gorm:"type:varchar(150);index" json:"-"` // Listeleme/arama için companyInfo'dan kopya
	IsEnabled     bool   `gorm:"default:true;index" json:"isEnabled"`

	CompanyInfo  datatypes.JSONType[*CompanyInfo]  `gorm:"type:jsonb;not null;default:'null'" json:"companyInfo"`
	SocialVideo  datatypes.JSONType[*SocialVideo]  `gorm:"type:jsonb;not null;default:'null'" json:"socialVideo"`
	AboutInfo    datatypes.JSONType[*AboutInfo]    `gorm:"type:jsonb;not null;default:'null'" json:"aboutInfo"`
	Services     datatypes.JSONType[Services]      `gorm:"type:jsonb;not null;default:'null'" json:"services"`
	BankDetails  datatypes.JSONType[*BankDetails]  `gorm:"type:jsonb;not null;default:'null'" json:"bankDetails"`
	Gallery      datatypes.JSONType[*Gallery]      `gorm:"type:jsonb;not null;default:'null'" json:"gallery"`
	ExtraDetails datatypes.JSONType[*ExtraDetails] `gorm:"type:jsonb;not null;default:'null'" json:"extraDetails"`
}

// CardIdentity kaydın sunucu tarafından atanan kimliğidir. İlk bölüm başarıyla
// oluşturulana kadar yoktur.
type CardIdentity struct {
	ID   uint   `json:"id"`
	Slug string `json:"slug"`
}

// IsZero kimliğin henüz atanmadığını söyler.
func (i CardIdentity) IsZero() bool {
	return i.ID == 0
}

// Identity kartın kimliğini döndürür.
func (c *Card) Identity() CardIdentity {
	if c == nil {
		return CardIdentity{}
	}
	return CardIdentity{ID: c.ID, Slug: c.Slug}
}

// Company companyInfo bölümünü döndürür (yoksa nil).
func (c *Card) Company() *CompanyInfo {
	if c == nil {
		return nil
	}
	return c.CompanyInfo.Data()
}

func (c *Card) Social() *SocialVideo {
	if c == nil {
		return nil
	}
	return c.SocialVideo.Data()
}

func (c *Card) About() *AboutInfo {
	if c == nil {
		return nil
	}
	return c.AboutInfo.Data()
}

func (c *Card) ServiceList() Services {
	if c == nil {
		return nil
	}
	return c.Services.Data()
}

func (c *Card) Bank() *BankDetails {
	if c == nil {
		return nil
	}
	return c.BankDetails.Data()
}

func (c *Card) GalleryImages() []string {
	if c == nil || c.Gallery.Data() == nil {
		return nil
	}
	return c.Gallery.Data().Images
}

func (c *Card) Extra() *ExtraDetails {
	if c == nil {
		return nil
	}
	return c.ExtraDetails.Data()
}

// SetSection verilen bölümü ilgili kolona yazar.
func (c *Card) SetSection(s Section) {
	switch v := s.(type) {
	case CompanyInfo:
		c.CompanyInfo = datatypes.NewJSONType(&v)
		c.BusinessName = v.BusinessName
		c.OwnerEmail = v.Email
	case SocialVideo:
		c.SocialVideo = datatypes.NewJSONType(&v)
	case AboutInfo:
		c.AboutInfo = datatypes.NewJSONType(&v)
	case Services:
		c.Services = datatypes.NewJSONType(v)
	case BankDetails:
		c.BankDetails = datatypes.NewJSONType(&v)
	case Gallery:
		c.Gallery = datatypes.NewJSONType(&v)
	case ExtraDetails:
		c.ExtraDetails = datatypes.NewJSONType(&v)
	}
}
