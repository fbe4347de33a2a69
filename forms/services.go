package forms

import (
	"errors"

	"kartvizit.link/models"
	"kartvizit.link/pkg/upload"

	"github.com/google/uuid"
)

var ErrEntryNotFound = errors.New("ürün/hizmet kaydı bulunamadı")

type ServiceValues struct {
	Type          string `form:"type" validate:"required,oneof=product service"`
	ProductName   string `form:"productName" validate:"required"`
	Currency      string `form:"currency" validate:"required,currency"`
	Price         string `form:"price" validate:"required"`
	IsBestSelling bool   `form:"isBestSelling"`
	Description   string `form:"description" validate:"required"`
}

// ServiceEntry çalışma listesindeki düzenlenebilir kayıttır. ID yalnızca bu
// listede anlamlıdır ve sunucuya gönderilmez.
type ServiceEntry struct {
	ID     string
	Values ServiceValues
	Image  upload.FileRef
}

// ServiceDraft gönderim DTO'su: liste kimliği içermez, görsel henüz
// yüklenmemiş olabilir.
type ServiceDraft struct {
	Item  models.ServiceItem
	Image upload.FileRef
}

// ServicesInput liste üzerinde yapılan değişiklikleri olduğu gibi gönderir.
type ServicesInput struct{}

func (ServicesInput) Key() models.SectionKey { return models.SectionServices }

// ServicesForm tek bir toplu gönderimden önce yerel olarak düzenlenen
// ürün/hizmet listesidir.
type ServicesForm struct {
	entries []ServiceEntry
	editID  string
	draft   ServiceEntry
	dirty   bool
}

func (f *ServicesForm) Key() models.SectionKey { return models.SectionServices }

func (f *ServicesForm) Hydrate(card *models.Card) {
	f.entries = nil
	f.editID = ""
	f.draft = ServiceEntry{}
	f.dirty = false
	for _, item := range card.ServiceList() {
		f.entries = append(f.entries, ServiceEntry{
			ID: uuid.NewString(),
			Values: ServiceValues{
				Type:          string(item.Type),
				ProductName:   item.ProductName,
				Currency:      item.Currency,
				Price:         item.Price,
				IsBestSelling: item.IsBestSelling,
				Description:   item.Description,
			},
			Image: upload.FromString(item.ProductImage),
		})
	}
}

// Entries çalışma listesinin bir kopyasını döndürür.
func (f *ServicesForm) Entries() []ServiceEntry {
	return append([]ServiceEntry(nil), f.entries...)
}

// EditID düzenlenmekte olan kaydın kimliği; yeni kayıt için boştur.
func (f *ServicesForm) EditID() string { return f.editID }

// Draft kayıt düzenleyicisindeki değerler.
func (f *ServicesForm) Draft() ServiceEntry { return f.draft }

// StartEdit listedeki kaydı düzenleyiciye yükler.
func (f *ServicesForm) StartEdit(id string) error {
	for _, e := range f.entries {
		if e.ID == id {
			f.editID = id
			f.draft = e
			return nil
		}
	}
	return ErrEntryNotFound
}

// CancelEdit düzenleyiciyi boşaltır; liste değişmez.
func (f *ServicesForm) CancelEdit() {
	f.editID = ""
	f.draft = ServiceEntry{}
}

// SaveEntry düzenleyicideki kaydı doğrular. Aktif bir düzenleme varsa kaydı
// yerinde değiştirir, yoksa yeni bir kimlikle listenin sonuna ekler. image nil
// ise düzenlenen kaydın mevcut görseli korunur.
func (f *ServicesForm) SaveEntry(values ServiceValues, image upload.FileRef) FieldErrors {
	entry := ServiceEntry{ID: f.editID, Values: values, Image: image}
	if entry.Image == nil && f.editID != "" {
		entry.Image = f.draft.Image
	}

	errs := validateStruct(entry.Values)
	errs = requireFile(errs, "productImage", entry.Image)
	if len(errs) > 0 {
		f.draft = entry
		return errs
	}

	if f.editID != "" {
		for i := range f.entries {
			if f.entries[i].ID == f.editID {
				f.entries[i] = entry
				f.dirty = true
				f.CancelEdit()
				return nil
			}
		}
		// Düzenlenen kayıt bu arada silinmişse yeni kayıt olarak eklenir.
	}
	entry.ID = uuid.NewString()
	f.entries = append(f.entries, entry)
	f.dirty = true
	f.CancelEdit()
	return nil
}

// RemoveEntry kaydı listeden çıkarır. Düzenlenen kayıt silinirse düzenleme iptal olur.
func (f *ServicesForm) RemoveEntry(id string) error {
	for i, e := range f.entries {
		if e.ID == id {
			f.entries = append(f.entries[:i:i], f.entries[i+1:]...)
			if f.editID == id {
				f.CancelEdit()
			}
			f.dirty = true
			return nil
		}
	}
	return ErrEntryNotFound
}

// Validate boş liste gönderimi engeller.
func (f *ServicesForm) Validate() FieldErrors {
	if len(f.entries) == 0 {
		return FieldErrors{"services": "En az bir ürün veya hizmet ekleyin."}
	}
	return nil
}

func (f *ServicesForm) CanSubmit() bool { return len(f.Validate()) == 0 }
func (f *ServicesForm) Dirty() bool     { return f.dirty }

// Emit listeyi sıra korunarak gönderim DTO'larına çevirir.
func (f *ServicesForm) Emit() []ServiceDraft {
	out := make([]ServiceDraft, len(f.entries))
	for i, e := range f.entries {
		out[i] = toDraft(e)
	}
	return out
}

func toDraft(e ServiceEntry) ServiceDraft {
	v := e.Values
	return ServiceDraft{
		Item: models.ServiceItem{
			Type:          models.ServiceType(v.Type),
			ProductName:   v.ProductName,
			Currency:      v.Currency,
			Price:         v.Price,
			IsBestSelling: v.IsBestSelling,
			Description:   v.Description,
		},
		Image: e.Image,
	}
}

func (f ServicesForm) clone() ServicesForm {
	f.entries = append([]ServiceEntry(nil), f.entries...)
	return f
}
