package models

// SectionKey kartvizit bölümünün sabit anahtarıdır. Hem wizard adımını hem de
// sunucu tarafında güncellenecek kolonu belirler.
type SectionKey string

const (
	SectionCompanyInfo  SectionKey = "companyInfo"
	SectionSocialVideo  SectionKey = "socialVideo"
	SectionAboutInfo    SectionKey = "aboutInfo"
	SectionServices     SectionKey = "services"
	SectionBankDetails  SectionKey = "bankDetails"
	SectionGallery      SectionKey = "gallery"
	SectionExtraDetails SectionKey = "extraDetails"
)

// Section bağımsız olarak kaydedilebilen bir kartvizit bölümüdür.
type Section interface {
	SectionKey() SectionKey
}

// CompanyInfo ilk adımın verisidir; kaydı oluşturan tek bölümdür.
type CompanyInfo struct {
	BusinessName    string `json:"businessName"`
	Name            string `json:"name"`
	Designation     string `json:"designation"`
	Country         string `json:"country"`
	ContactNumber1  string `json:"contactNumber1"`
	WhatsappNumber1 string `json:"whatsappNumber1"`
	ContactNumber2  string `json:"contactNumber2,omitempty"`
	WhatsappNumber2 string `json:"whatsappNumber2,omitempty"`
	LandlineNumber  string `json:"landlineNumber,omitempty"`
	Email           string `json:"email"`
	WebsiteURL      string `json:"websiteUrl,omitempty"`
	GoogleMapLink   string `json:"googleMapLink"`
	Address         string `json:"address"`
	LogoImage       string `json:"logoImage"`
}

// SocialVideo sosyal medya bağlantıları.
type SocialVideo struct {
	Facebook   string `json:"facebook,omitempty"`
	Instagram  string `json:"instagram,omitempty"`
	Youtube    string `json:"youtube,omitempty"`
	Twitter    string `json:"twitter,omitempty"`
	Linkedin   string `json:"linkdin,omitempty"`
	Pinterest  string `json:"pinterest,omitempty"`
	OtherLink1 string `json:"otherLink1,omitempty"`
	OtherLink2 string `json:"otherLink2,omitempty"`
}

// AboutInfo firma hakkında bilgiler.
type AboutInfo struct {
	EstablishmentYear int    `json:"establishmentYear"`
	NatureOfBusiness  string `json:"natureOfBusiness"`
	OtherBusiness     string `json:"otherBusiness,omitempty"`
	GstinNo           string `json:"gstinNo,omitempty"`
	AboutCompany      string `json:"aboutCompany"`
	Documents         string `json:"documents,omitempty"`
}

// ServiceType ürün veya hizmet.
type ServiceType string

const (
	ServiceTypeProduct ServiceType = "product"
	ServiceTypeService ServiceType = "service"
)

// ServiceItem sunucuya gönderilen ürün/hizmet kaydıdır. İstemci tarafı liste
// id'leri burada yer almaz.
type ServiceItem struct {
	Type          ServiceType `json:"type"`
	ProductName   string      `json:"productName"`
	Currency      string      `json:"currency"`
	Price         string      `json:"price"`
	IsBestSelling bool        `json:"isBestSelling"`
	Description   string      `json:"description"`
	ProductImage  string      `json:"productImage"`
}

// Services sıralı ürün/hizmet listesi.
type Services []ServiceItem

// OnlineTransferDetails online ödeme bilgileri ve QR görselleri.
type OnlineTransferDetails struct {
	GooglePay        string `json:"googlePay"`
	Paytm            string `json:"paytm"`
	PhonePe          string `json:"phonePe"`
	UpiID            string `json:"upiId"`
	GooglePayQRImage string `json:"googlePayQRImage,omitempty"`
	PhonePeQRImage   string `json:"phonePeQRImage,omitempty"`
	UpiQRImage       string `json:"upiQRImage,omitempty"`
}

// BankDetails banka hesap bilgileri.
type BankDetails struct {
	BankName              string                `json:"bankName"`
	AccountNo             string                `json:"accountNo"`
	BranchName            string                `json:"branchName"`
	IfscCode              string                `json:"ifscCode"`
	AcHolderName          string                `json:"acHolderName"`
	AccountType           string                `json:"accountType"`
	IbanNumber            string                `json:"ibanNumber"`
	SwiftCode             string                `json:"swiftCode"`
	OnlineTransferDetails OnlineTransferDetails `json:"onlineTransferDetails"`
}

// Gallery görsel galerisi.
type Gallery struct {
	Images []string `json:"images"`
}

// ExtraDetails not ve ödeme tutarları.
type ExtraDetails struct {
	Note          string  `json:"note,omitempty"`
	PaidAmount    float64 `json:"paidAmount"`
	PendingAmount float64 `json:"pendingAmount"`
}

func (CompanyInfo) SectionKey() SectionKey  { return SectionCompanyInfo }
func (SocialVideo) SectionKey() SectionKey  { return SectionSocialVideo }
func (AboutInfo) SectionKey() SectionKey    { return SectionAboutInfo }
func (Services) SectionKey() SectionKey     { return SectionServices }
func (BankDetails) SectionKey() SectionKey  { return SectionBankDetails }
func (Gallery) SectionKey() SectionKey      { return SectionGallery }
func (ExtraDetails) SectionKey() SectionKey { return SectionExtraDetails }
