package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("geçersiz oturum anahtarı")
	ErrExpiredToken = errors.New("oturum süresi doldu")
)

// Claims kimlik servisinin imzaladığı token içeriği.
type Claims struct {
	UserID   uint   `json:"user_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	IsSystem bool   `json:"is_system"`
	jwt.RegisteredClaims
}

// Principal claim'lerden principal üretir.
func (c *Claims) Principal() Principal {
	return Principal{UserID: c.UserID, Email: c.Email, Name: c.Name, IsSystem: c.IsSystem}
}

// ParseToken HS256 ile imzalanmış token'ı doğrular.
func ParseToken(secret, tokenString string) (Principal, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Principal{}, ErrExpiredToken
		}
		return Principal{}, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return Principal{}, ErrInvalidToken
	}
	return claims.Principal(), nil
}

// GenerateToken token üretir. Üretimde token'ları kimlik servisi imzalar;
// bu fonksiyon testler ve yerel geliştirme içindir.
func GenerateToken(secret string, p Principal, expiry time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		UserID:   p.UserID,
		Name:     p.Name,
		Email:    p.Email,
		IsSystem: p.IsSystem,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
