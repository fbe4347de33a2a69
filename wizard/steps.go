// Package wizard kartvizit oluşturma/düzenleme sihirbazının akışını yönetir:
// aktif adım, oluştur/güncelle kararı, dosya yüklemelerinin sıralanması ve
// adımlar arası gezinme.
package wizard

import (
	"fmt"

	"kartvizit.link/models"
)

// StepDefinition sihirbazdaki bir adımın sabit tanımıdır.
type StepDefinition struct {
	Key   models.SectionKey
	Title string
}

// Steps adımların sırası hem gösterim hem varsayılan gezinme sırasıdır.
var Steps = [...]StepDefinition{
	{Key: models.SectionCompanyInfo, Title: "Company Info"},
	{Key: models.SectionSocialVideo, Title: "Social Media"},
	{Key: models.SectionAboutInfo, Title: "About Info"},
	{Key: models.SectionServices, Title: "Services"},
	{Key: models.SectionBankDetails, Title: "Bank Details"},
	{Key: models.SectionGallery, Title: "Gallery"},
	{Key: models.SectionExtraDetails, Title: "Extra Details"},
}

// StepCount adım sayısı.
const StepCount = len(Steps)

// StepIndex anahtarın sıradaki yerini döndürür.
func StepIndex(key models.SectionKey) (int, bool) {
	for i, s := range Steps {
		if s.Key == key {
			return i, true
		}
	}
	return -1, false
}

// PositionLabel mobil görünümdeki "Step n of 7" etiketi.
func PositionLabel(i int) string {
	return fmt.Sprintf("Step %d of %d", i+1, StepCount)
}
