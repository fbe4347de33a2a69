package forms

import (
	"testing"

	"kartvizit.link/models"
	"kartvizit.link/pkg/upload"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serviceValues(name string) ServiceValues {
	return ServiceValues{
		Type:        "product",
		ProductName: name,
		Currency:    "INR",
		Price:       "100",
		Description: name + " açıklaması",
	}
}

func img(ref string) upload.FileRef { return upload.Persisted(ref) }

func names(entries []ServiceEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Values.ProductName
	}
	return out
}

func seedABC(t *testing.T) *ServicesForm {
	t.Helper()
	var f ServicesForm
	for _, n := range []string{"A", "B", "C"} {
		require.Empty(t, f.SaveEntry(serviceValues(n), img("https://cdn/"+n)))
	}
	return &f
}

func TestServicesEditReplacesInPlace(t *testing.T) {
	f := seedABC(t)
	before := f.Entries()

	require.NoError(t, f.StartEdit(before[1].ID))
	assert.Equal(t, before[1].ID, f.EditID())
	assert.Equal(t, "B", f.Draft().Values.ProductName)

	require.Empty(t, f.SaveEntry(serviceValues("B2"), nil))

	after := f.Entries()
	assert.Equal(t, []string{"A", "B2", "C"}, names(after))
	assert.Equal(t, before[0].ID, after[0].ID)
	assert.Equal(t, before[1].ID, after[1].ID)
	assert.Equal(t, before[2].ID, after[2].ID)
	assert.Equal(t, img("https://cdn/B"), after[1].Image, "görsel seçilmezse mevcut görsel korunur")
	assert.Empty(t, f.EditID())
}

func TestServicesSaveWithoutEditAppends(t *testing.T) {
	f := seedABC(t)
	require.Empty(t, f.SaveEntry(serviceValues("D"), img("https://cdn/D")))

	entries := f.Entries()
	assert.Equal(t, []string{"A", "B", "C", "D"}, names(entries))

	seen := map[string]bool{}
	for _, e := range entries {
		assert.NotEmpty(t, e.ID)
		assert.False(t, seen[e.ID], "id tekrar etmemeli")
		seen[e.ID] = true
	}
}

func TestServicesSaveEntryValidation(t *testing.T) {
	var f ServicesForm
	v := serviceValues("X")
	v.Currency = "XXZ"
	v.Type = "gift"

	errs := f.SaveEntry(v, nil)
	assert.True(t, errs.Has("currency"))
	assert.True(t, errs.Has("type"))
	assert.True(t, errs.Has("productImage"))
	assert.Empty(t, f.Entries())
	assert.Equal(t, "X", f.Draft().Values.ProductName, "hatalı taslak düzenleyicide kalır")
}

func TestServicesRemoveAndCancel(t *testing.T) {
	f := seedABC(t)
	entries := f.Entries()

	require.NoError(t, f.StartEdit(entries[0].ID))
	f.CancelEdit()
	assert.Empty(t, f.EditID())
	assert.Equal(t, []string{"A", "B", "C"}, names(f.Entries()))

	require.NoError(t, f.StartEdit(entries[1].ID))
	require.NoError(t, f.RemoveEntry(entries[1].ID))
	assert.Empty(t, f.EditID(), "düzenlenen kayıt silinince düzenleme biter")
	assert.Equal(t, []string{"A", "C"}, names(f.Entries()))

	assert.ErrorIs(t, f.RemoveEntry("missing"), ErrEntryNotFound)
	assert.ErrorIs(t, f.StartEdit("missing"), ErrEntryNotFound)
}

func TestServicesEmptyListBlocksSubmit(t *testing.T) {
	var f ServicesForm
	assert.False(t, f.CanSubmit())
	assert.True(t, f.Validate().Has("services"))

	f = *seedABC(t)
	assert.True(t, f.CanSubmit())
}

func TestServicesEmitStripsIDs(t *testing.T) {
	f := seedABC(t)
	drafts := f.Emit()
	require.Len(t, drafts, 3)
	assert.Equal(t, models.ServiceItem{
		Type:        models.ServiceTypeProduct,
		ProductName: "A",
		Currency:    "INR",
		Price:       "100",
		Description: "A açıklaması",
	}, drafts[0].Item)
	assert.Equal(t, img("https://cdn/A"), drafts[0].Image)
}

func TestServicesHydrateAssignsFreshIDs(t *testing.T) {
	card := &models.Card{}
	card.SetSection(models.Services{
		{Type: models.ServiceTypeService, ProductName: "Kurulum", Currency: "INR", Price: "5", Description: "d", ProductImage: "https://cdn/k"},
	})

	var f ServicesForm
	f.Hydrate(card)
	entries := f.Entries()
	require.Len(t, entries, 1)
	assert.NotEmpty(t, entries[0].ID)
	assert.Equal(t, "service", entries[0].Values.Type)
	assert.Equal(t, img("https://cdn/k"), entries[0].Image)
	assert.False(t, f.Dirty())
}
