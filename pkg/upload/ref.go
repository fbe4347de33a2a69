// Package upload kullanıcının seçtiği dosyaları kalıcı referanslara (URL) çevirir.
package upload

// FileRef bir dosya alanının değeridir: ya henüz yüklenmemiş bir dosya (Pending)
// ya da daha önce yüklenmiş bir referans (Persisted). nil boş alan demektir.
type FileRef interface {
	isFileRef()
}

// Pending bellekte bekleyen, yüklenmesi gereken dosyadır.
type Pending struct {
	File FileHandle
}

// Persisted daha önce yüklenmiş dosyanın kalıcı referansıdır.
type Persisted string

func (Pending) isFileRef()   {}
func (Persisted) isFileRef() {}

// PendingFile bir dosyayı FileRef'e sarar.
func PendingFile(f FileHandle) FileRef {
	if f == nil {
		return nil
	}
	return Pending{File: f}
}

// FromString kayıttan gelen string'i FileRef'e çevirir. Boş string nil olur.
func FromString(s string) FileRef {
	if s == "" {
		return nil
	}
	return Persisted(s)
}

// IsEmpty alanın boş olup olmadığını söyler.
func IsEmpty(ref FileRef) bool {
	switch v := ref.(type) {
	case nil:
		return true
	case Persisted:
		return v == ""
	case Pending:
		return v.File == nil
	default:
		return true
	}
}

// IsPending alanın yüklenmeyi bekleyen bir dosya olup olmadığını söyler.
func IsPending(ref FileRef) bool {
	p, ok := ref.(Pending)
	return ok && p.File != nil
}

// DisplayValue şablonlarda gösterilecek değeri döndürür: kalıcı referans ya da dosya adı.
func DisplayValue(ref FileRef) string {
	switch v := ref.(type) {
	case Persisted:
		return string(v)
	case Pending:
		if v.File != nil {
			return v.File.Name()
		}
	}
	return ""
}
