package renderer

import (
	"html/template"
	"strings"

	"kartvizit.link/pkg/upload"
)

// TemplateFuncs html motoruna eklenen yardımcı fonksiyonlar.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"fileValue": upload.DisplayValue,
		"isPending": upload.IsPending,
		"hasFile":   func(ref upload.FileRef) bool { return !upload.IsEmpty(ref) },
		"isImage":   isImageURL,
	}
}

func isImageURL(s string) bool {
	s = strings.ToLower(s)
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}
	for _, ext := range []string{".png", ".jpg", ".jpeg", ".gif", ".webp"} {
		if strings.HasSuffix(s, ext) {
			return true
		}
	}
	return false
}
