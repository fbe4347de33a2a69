// Package auth isteği yapan kullanıcının salt okunur kimlik bilgisini taşır.
// Token'ları harici kimlik servisi imzalar; burada yalnızca doğrulanır.
package auth

import "context"

// Principal doğrulanmış kullanıcıdır. IsSystem yönetici (admin) rolünü belirtir.
type Principal struct {
	UserID   uint
	Email    string
	Name     string
	IsSystem bool
}

type principalKey struct{}

// WithPrincipal principal'ı context'e ekler.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext context'teki principal'ı döndürür.
func FromContext(ctx context.Context) (Principal, bool) {
	if ctx == nil {
		return Principal{}, false
	}
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok && p.UserID != 0
}
