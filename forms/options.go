package forms

import (
	"sort"
	"sync"
	"time"

	"golang.org/x/text/currency"
)

// FirstEstablishmentYear kuruluş yılı listesinin en eski değeri.
const FirstEstablishmentYear = 1900

// MaxGalleryImages galeride tutulabilecek en fazla görsel sayısı.
const MaxGalleryImages = 20

// AccountTypes banka hesap türü seçenekleri.
var AccountTypes = []string{"Savings", "Current"}

// EstablishmentYears içinde bulunulan yıldan 1900'e kadar azalan yıl listesi.
func EstablishmentYears(now time.Time) []int {
	years := make([]int, 0, now.Year()-FirstEstablishmentYear+1)
	for y := now.Year(); y >= FirstEstablishmentYear; y-- {
		years = append(years, y)
	}
	return years
}

var (
	currencyOnce  sync.Once
	currencyCodes []string
)

// CurrencyCodes yürürlükteki ISO 4217 para birimi kodlarını alfabetik döndürür.
func CurrencyCodes() []string {
	currencyOnce.Do(func() {
		seen := make(map[string]struct{})
		for it := currency.Query(); it.Next(); {
			code := it.Unit().String()
			if _, ok := seen[code]; ok {
				continue
			}
			seen[code] = struct{}{}
			currencyCodes = append(currencyCodes, code)
		}
		sort.Strings(currencyCodes)
	})
	return currencyCodes
}
