package utils

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const randomAlphabet = "abcdefghijkmnpqrstuvwxyz23456789"

// GenerateSecureRandomString kriptografik olarak güvenli, küçük harf ve
// rakamlardan oluşan (karışabilecek karakterler hariç) bir string üretir.
func GenerateSecureRandomString(length int) (string, error) {
	if length <= 0 {
		return "", errors.New("uzunluk pozitif olmalı")
	}
	max := big.NewInt(int64(len(randomAlphabet)))
	var sb strings.Builder
	sb.Grow(length)
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		sb.WriteByte(randomAlphabet[n.Int64()])
	}
	return sb.String(), nil
}

var turkishReplacer = strings.NewReplacer(
	"ç", "c", "Ç", "c",
	"ğ", "g", "Ğ", "g",
	"ı", "i", "I", "i", "İ", "i",
	"ö", "o", "Ö", "o",
	"ş", "s", "Ş", "s",
	"ü", "u", "Ü", "u",
	"&", " and ",
)

// Slugify metni URL'de kullanılabilir hale getirir: Türkçe karakterler ve
// aksanlar sadeleştirilir, harf/rakam dışı her şey tek bir "-" olur.
func Slugify(s string, maxLen int) string {
	s = turkishReplacer.Replace(s)
	s = norm.NFKD.String(s)

	var sb strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.Is(unicode.Mn, r):
			continue
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			sb.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				sb.WriteByte('-')
				lastDash = true
			}
		}
	}
	out := strings.Trim(sb.String(), "-")
	if maxLen > 0 && len(out) > maxLen {
		out = strings.TrimRight(out[:maxLen], "-")
	}
	return out
}
