package forms

import (
	"fmt"
	"math"
	"net/url"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/nyaruka/phonenumbers"
	"golang.org/x/text/currency"
)

// DefaultPhoneRegion ülke kodu yazılmamış numaraların yorumlandığı bölge.
const DefaultPhoneRegion = "IN"

const nationalDigits = 10

var mapsLinkPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^https://maps\.google\.com`),
	regexp.MustCompile(`^https://www\.google\.com/maps`),
	regexp.MustCompile(`^https://goo\.gl/maps`),
	regexp.MustCompile(`^https://maps\.app\.goo\.gl`),
	regexp.MustCompile(`^https://www\.google\.co\..*/maps`),
	regexp.MustCompile(`^https://maps\.google\.`),
}

var socialPatterns = map[string][]*regexp.Regexp{
	"facebook": {
		regexp.MustCompile(`^https://www\.facebook\.com/`),
		regexp.MustCompile(`^https://facebook\.com/`),
		regexp.MustCompile(`^https://m\.facebook\.com/`),
		regexp.MustCompile(`^https://fb\.me/`),
	},
	"instagram": {
		regexp.MustCompile(`^https://www\.instagram\.com/`),
		regexp.MustCompile(`^https://instagram\.com/`),
		regexp.MustCompile(`^https://instagr\.am/`),
	},
	"youtube": {
		regexp.MustCompile(`^https://www\.youtube\.com/`),
		regexp.MustCompile(`^https://youtube\.com/`),
		regexp.MustCompile(`^https://youtu\.be/`),
		regexp.MustCompile(`^https://m\.youtube\.com/`),
	},
	"twitter": {
		regexp.MustCompile(`^https://twitter\.com/`),
		regexp.MustCompile(`^https://www\.twitter\.com/`),
		regexp.MustCompile(`^https://x\.com/`),
		regexp.MustCompile(`^https://www\.x\.com/`),
	},
	"linkedin": {
		regexp.MustCompile(`^https://www\.linkedin\.com/`),
		regexp.MustCompile(`^https://linkedin\.com/`),
		regexp.MustCompile(`^https://in\.linkedin\.com/`),
	},
	"pinterest": {
		regexp.MustCompile(`^https://www\.pinterest\.com/`),
		regexp.MustCompile(`^https://pinterest\.com/`),
		regexp.MustCompile(`^https://pin\.it/`),
	},
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v, "phone10", func(fl validator.FieldLevel) bool {
		return IsValidPhone(fl.Field().String())
	})
	mustRegister(v, "mapslink", func(fl validator.FieldLevel) bool {
		return matchesAny(mapsLinkPatterns, fl.Field().String())
	})
	mustRegister(v, "social", func(fl validator.FieldLevel) bool {
		patterns, ok := socialPatterns[fl.Param()]
		return ok && matchesAny(patterns, fl.Field().String())
	})
	mustRegister(v, "httpurl", func(fl validator.FieldLevel) bool {
		return isHTTPURL(fl.Field().String())
	})
	mustRegister(v, "currency", func(fl validator.FieldLevel) bool {
		_, err := currency.ParseISO(fl.Field().String())
		return err == nil
	})
	mustRegister(v, "estyear", func(fl validator.FieldLevel) bool {
		y := int(fl.Field().Int())
		return y >= FirstEstablishmentYear && y <= time.Now().Year()
	})
	mustRegister(v, "amount", func(fl validator.FieldLevel) bool {
		f, err := strconv.ParseFloat(strings.TrimSpace(fl.Field().String()), 64)
		return err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) && f >= 0
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("forms: %s kuralı kaydedilemedi: %v", tag, err))
	}
}

// IsValidPhone numaranın geçerli olduğunu ve ülke kodundan sonra tam 10 hane
// içerdiğini kontrol eder.
func IsValidPhone(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	num, err := phonenumbers.Parse(raw, DefaultPhoneRegion)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return false
	}
	return len(phonenumbers.GetNationalSignificantNumber(num)) == nationalDigits
}

func matchesAny(patterns []*regexp.Regexp, s string) bool {
	for _, p := range patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

func isHTTPURL(s string) bool {
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return false
	}
	u, err := url.Parse(s)
	return err == nil && u.Host != ""
}

// validateStruct validator çıktısını alan adı -> mesaj haritasına çevirir.
func validateStruct(s any) FieldErrors {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return FieldErrors{"_form": err.Error()}
	}
	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		if _, exists := out[fe.Field()]; !exists {
			out[fe.Field()] = messageFor(fe)
		}
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Bu alan zorunludur."
	case "email":
		return "Geçerli bir e-posta adresi girin."
	case "phone10":
		return "Ülke kodundan sonra tam 10 haneli geçerli bir telefon numarası girin."
	case "mapslink":
		return "Geçerli bir Google Haritalar bağlantısı girin."
	case "social":
		return fmt.Sprintf("Geçerli bir %s bağlantısı girin.", platformLabel(fe.Param()))
	case "httpurl":
		return "Bağlantı http:// veya https:// ile başlamalıdır."
	case "currency":
		return "Geçerli bir para birimi seçin."
	case "estyear":
		return "Listeden geçerli bir yıl seçin."
	case "amount", "gte":
		return "Sıfır veya daha büyük bir sayı girin."
	case "oneof":
		return "Listeden geçerli bir değer seçin."
	default:
		return "Geçersiz değer."
	}
}

func platformLabel(platform string) string {
	switch platform {
	case "youtube":
		return "YouTube"
	case "linkedin":
		return "LinkedIn"
	case "twitter":
		return "Twitter/X"
	case "":
		return "sosyal medya"
	default:
		return strings.ToUpper(platform[:1]) + platform[1:]
	}
}
