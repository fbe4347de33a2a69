package forms

import (
	"kartvizit.link/models"
	"kartvizit.link/pkg/upload"
)

type BankValues struct {
	BankName     string `form:"bankName"`
	AccountNo    string `form:"accountNo"`
	BranchName   string `form:"branchName"`
	IfscCode     string `form:"ifscCode"`
	AcHolderName string `form:"acHolderName"`
	AccountType  string `form:"accountType" validate:"omitempty,oneof=Savings Current"`
	IbanNumber   string `form:"ibanNumber"`
	SwiftCode    string `form:"swiftCode"`
	GooglePay    string `form:"googlePay"`
	Paytm        string `form:"paytm"`
	PhonePe      string `form:"phonePe"`
	UpiID        string `form:"upiId"`
}

// BankQRCodes online ödeme QR görselleri. Hepsi isteğe bağlıdır.
type BankQRCodes struct {
	GooglePay upload.FileRef
	PhonePe   upload.FileRef
	Upi       upload.FileRef
}

// BankInput nil QR alanları mevcut değeri korur.
type BankInput struct {
	Values BankValues
	QR     BankQRCodes
}

func (BankInput) Key() models.SectionKey { return models.SectionBankDetails }

type BankDraft struct {
	Details models.BankDetails
	QR      BankQRCodes
}

type BankForm struct {
	Values BankValues
	QR     BankQRCodes
	dirty  bool
}

func (f *BankForm) Key() models.SectionKey { return models.SectionBankDetails }

func (f *BankForm) Hydrate(card *models.Card) {
	f.Values = BankValues{}
	f.QR = BankQRCodes{}
	f.dirty = false

	b := card.Bank()
	if b == nil {
		return
	}
	o := b.OnlineTransferDetails
	f.Values = BankValues{
		BankName:     b.BankName,
		AccountNo:    b.AccountNo,
		BranchName:   b.BranchName,
		IfscCode:     b.IfscCode,
		AcHolderName: b.AcHolderName,
		AccountType:  b.AccountType,
		IbanNumber:   b.IbanNumber,
		SwiftCode:    b.SwiftCode,
		GooglePay:    o.GooglePay,
		Paytm:        o.Paytm,
		PhonePe:      o.PhonePe,
		UpiID:        o.UpiID,
	}
	f.QR = BankQRCodes{
		GooglePay: upload.FromString(o.GooglePayQRImage),
		PhonePe:   upload.FromString(o.PhonePeQRImage),
		Upi:       upload.FromString(o.UpiQRImage),
	}
}

func (f *BankForm) Apply(in BankInput) {
	if in.Values != f.Values {
		f.Values = in.Values
		f.dirty = true
	}
	for _, pair := range []struct {
		dst *upload.FileRef
		src upload.FileRef
	}{
		{&f.QR.GooglePay, in.QR.GooglePay},
		{&f.QR.PhonePe, in.QR.PhonePe},
		{&f.QR.Upi, in.QR.Upi},
	} {
		if pair.src != nil {
			*pair.dst = pair.src
			f.dirty = true
		}
	}
}

func (f *BankForm) Validate() FieldErrors { return validateStruct(f.Values) }
func (f *BankForm) CanSubmit() bool       { return len(f.Validate()) == 0 }
func (f *BankForm) Dirty() bool           { return f.dirty }

func (f *BankForm) Emit() BankDraft {
	v := f.Values
	return BankDraft{
		Details: models.BankDetails{
			BankName:     v.BankName,
			AccountNo:    v.AccountNo,
			BranchName:   v.BranchName,
			IfscCode:     v.IfscCode,
			AcHolderName: v.AcHolderName,
			AccountType:  v.AccountType,
			IbanNumber:   v.IbanNumber,
			SwiftCode:    v.SwiftCode,
			OnlineTransferDetails: models.OnlineTransferDetails{
				GooglePay: v.GooglePay,
				Paytm:     v.Paytm,
				PhonePe:   v.PhonePe,
				UpiID:     v.UpiID,
			},
		},
		QR: f.QR,
	}
}
