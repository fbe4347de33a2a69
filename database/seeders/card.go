package seeders

import (
	"context"
	"errors"

	"kartvizit.link/auth"
	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DemoCardSlug geliştirme ortamı için oluşturulan örnek kartın adresi.
const DemoCardSlug = "demo-kartvizit"

// systemPrincipal seed kayıtlarının oluşturanı. Kullanıcılar harici kimlik
// servisinde tutulduğu için 1 numaralı sistem kullanıcısı varsayılır.
var systemPrincipal = auth.Principal{UserID: 1, Name: "System", IsSystem: true}

// SeedDemoCard tüm bölümleri dolu örnek bir kartvizit oluşturur. Kart zaten
// varsa dokunulmaz.
func SeedDemoCard(db *gorm.DB) error {
	ctx := auth.WithPrincipal(context.Background(), systemPrincipal)

	var existing models.Card
	err := db.Unscoped().Where("slug = ?", DemoCardSlug).First(&existing).Error
	if err == nil {
		configslog.SLog.Debugf("Örnek kartvizit '%s' zaten mevcut, oluşturma atlanıyor.", DemoCardSlug)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		configslog.Log.Error("Örnek kartvizit kontrol edilirken veritabanı hatası", zap.Error(err))
		return err
	}

	card := models.Card{Slug: DemoCardSlug, CreatorUserID: systemPrincipal.UserID, IsEnabled: true}
	for _, s := range demoSections() {
		card.SetSection(s)
	}
	if err := db.WithContext(ctx).Create(&card).Error; err != nil {
		configslog.Log.Error("Örnek kartvizit oluşturulamadı", zap.Error(err))
		return err
	}
	configslog.SLog.Infof("Örnek kartvizit oluşturuldu (ID: %d, Slug: %s).", card.ID, card.Slug)
	return nil
}

func demoSections() []models.Section {
	return []models.Section{
		models.CompanyInfo{
			BusinessName:    "Demo Tasarım Stüdyosu",
			Name:            "Ayşe Yılmaz",
			Designation:     "Kurucu",
			Country:         "India",
			ContactNumber1:  "9876543210",
			WhatsappNumber1: "9876543210",
			Email:           "demo@kartvizit.link",
			WebsiteURL:      "https://kartvizit.link",
			GoogleMapLink:   "https://maps.app.goo.gl/demo",
			Address:         "MG Road 12, Bengaluru",
			LogoImage:       "/static/img/demo-logo.png",
		},
		models.SocialVideo{
			Instagram: "https://www.instagram.com/kartvizit.link",
			Linkedin:  "https://www.linkedin.com/company/kartvizit-link",
		},
		models.AboutInfo{
			EstablishmentYear: 2019,
			NatureOfBusiness:  "Grafik tasarım",
			AboutCompany:      "Küçük işletmeler için marka ve dijital kartvizit tasarımı.",
		},
		models.Services{
			{
				Type:          models.ServiceTypeService,
				ProductName:   "Logo tasarımı",
				Currency:      "INR",
				Price:         "15000",
				IsBestSelling: true,
				Description:   "Üç revizyonlu logo çalışması.",
				ProductImage:  "/static/img/demo-service.png",
			},
		},
		models.BankDetails{
			BankName:              "Demo Bank",
			AccountType:           "Current",
			OnlineTransferDetails: models.OnlineTransferDetails{UpiID: "demo@upi"},
		},
		models.Gallery{Images: []string{}},
		models.ExtraDetails{Note: "Örnek kayıt", PaidAmount: 0, PendingAmount: 0},
	}
}
