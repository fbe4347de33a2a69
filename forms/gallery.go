package forms

import (
	"kartvizit.link/models"
	"kartvizit.link/pkg/upload"
)

// GalleryInput gönderimle birlikte eklenen yeni dosyalar.
type GalleryInput struct {
	Add []upload.FileRef
}

func (GalleryInput) Key() models.SectionKey { return models.SectionGallery }

// GalleryForm en fazla MaxGalleryImages görsel toplar. Zorunlu alanı yoktur.
type GalleryForm struct {
	Images []upload.FileRef
	dirty  bool
}

func (f *GalleryForm) Key() models.SectionKey { return models.SectionGallery }

func (f *GalleryForm) Hydrate(card *models.Card) {
	f.Images = nil
	f.dirty = false
	for _, img := range card.GalleryImages() {
		if ref := upload.FromString(img); ref != nil {
			f.Images = append(f.Images, ref)
		}
	}
	f.truncate()
}

// Add dosyaları ekleme sırasına göre ekler; sınırı aşanlar sessizce atılır.
// Atılan dosya sayısını döndürür.
func (f *GalleryForm) Add(refs ...upload.FileRef) int {
	added := 0
	for _, r := range refs {
		if upload.IsEmpty(r) {
			continue
		}
		f.Images = append(f.Images, r)
		added++
	}
	if added > 0 {
		f.dirty = true
	}
	return f.truncate()
}

// Remove verilen sıradaki görseli çıkarır.
func (f *GalleryForm) Remove(index int) bool {
	if index < 0 || index >= len(f.Images) {
		return false
	}
	f.Images = append(f.Images[:index], f.Images[index+1:]...)
	f.dirty = true
	return true
}

func (f *GalleryForm) truncate() int {
	if len(f.Images) <= MaxGalleryImages {
		return 0
	}
	dropped := len(f.Images) - MaxGalleryImages
	f.Images = f.Images[:MaxGalleryImages]
	return dropped
}

func (f *GalleryForm) Remaining() int { return MaxGalleryImages - len(f.Images) }

func (f *GalleryForm) Validate() FieldErrors { return nil }
func (f *GalleryForm) CanSubmit() bool       { return true }
func (f *GalleryForm) Dirty() bool           { return f.dirty }

// Emit listenin yüklenmeye hazır bir kopyasını döndürür.
func (f *GalleryForm) Emit() []upload.FileRef {
	out := make([]upload.FileRef, len(f.Images))
	copy(out, f.Images)
	return out
}

func (f GalleryForm) clone() GalleryForm {
	f.Images = append([]upload.FileRef(nil), f.Images...)
	return f
}
