package forms

import (
	"math"
	"strconv"
	"strings"

	"kartvizit.link/models"
)

// ExtraValues tutarlar metin olarak alınır, boş bırakılabilir.
type ExtraValues struct {
	Note          string `form:"note"`
	PaidAmount    string `form:"paidAmount" validate:"omitempty,amount"`
	PendingAmount string `form:"pendingAmount" validate:"omitempty,amount"`
}

type ExtraInput struct {
	Values ExtraValues
}

func (ExtraInput) Key() models.SectionKey { return models.SectionExtraDetails }

type ExtraForm struct {
	Values ExtraValues
	dirty  bool
}

func (f *ExtraForm) Key() models.SectionKey { return models.SectionExtraDetails }

func (f *ExtraForm) Hydrate(card *models.Card) {
	f.Values = ExtraValues{}
	f.dirty = false
	if e := card.Extra(); e != nil {
		f.Values = ExtraValues{
			Note:          e.Note,
			PaidAmount:    formatAmount(e.PaidAmount),
			PendingAmount: formatAmount(e.PendingAmount),
		}
	}
}

func (f *ExtraForm) Apply(in ExtraInput) {
	if in.Values != f.Values {
		f.Values = in.Values
		f.dirty = true
	}
}

func (f *ExtraForm) Validate() FieldErrors { return validateStruct(f.Values) }
func (f *ExtraForm) CanSubmit() bool       { return len(f.Validate()) == 0 }
func (f *ExtraForm) Dirty() bool           { return f.dirty }

// Emit doğrulanmış formda çağrılmalıdır; çözümlenemeyen tutar 0 olur.
func (f *ExtraForm) Emit() models.ExtraDetails {
	return models.ExtraDetails{
		Note:          f.Values.Note,
		PaidAmount:    parseAmount(f.Values.PaidAmount),
		PendingAmount: parseAmount(f.Values.PendingAmount),
	}
}

func parseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0
	}
	return v
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
