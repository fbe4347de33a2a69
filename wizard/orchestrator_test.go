package wizard

import (
	"context"
	"errors"
	"testing"
	"time"

	"kartvizit.link/forms"
	"kartvizit.link/models"
	"kartvizit.link/pkg/upload"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) Fetch(ctx context.Context, slug string) (*models.Card, error) {
	args := m.Called(ctx, slug)
	card, _ := args.Get(0).(*models.Card)
	return card, args.Error(1)
}

func (m *mockGateway) Create(ctx context.Context, section models.Section) (models.CardIdentity, error) {
	args := m.Called(ctx, section)
	return args.Get(0).(models.CardIdentity), args.Error(1)
}

func (m *mockGateway) Update(ctx context.Context, id uint, section models.Section) error {
	args := m.Called(ctx, id, section)
	return args.Error(0)
}

type mockUploader struct {
	mock.Mock
}

func (m *mockUploader) Upload(ctx context.Context, f upload.FileHandle) (string, error) {
	args := m.Called(ctx, f)
	return args.String(0), args.Error(1)
}

func newTestOrchestrator() (*Orchestrator, *mockGateway, *mockUploader) {
	gw := &mockGateway{}
	up := &mockUploader{}
	return NewOrchestrator(gw, upload.NewNormalizer(up, 4)), gw, up
}

func pendingFile(name string) upload.FileRef {
	return upload.PendingFile(upload.NewMemoryFile(name, "image/png", []byte(name)))
}

func companyInput(logo upload.FileRef) forms.CompanyInput {
	return forms.CompanyInput{
		Values: forms.CompanyValues{
			BusinessName:    "Acme Traders",
			Name:            "Ayşe Yılmaz",
			Designation:     "Owner",
			Country:         "India",
			ContactNumber1:  "9876543210",
			WhatsappNumber1: "+91 98765 43210",
			Email:           "owner@acme.example",
			GoogleMapLink:   "https://maps.google.com/?q=acme",
			Address:         "MG Road 1",
		},
		Logo: logo,
	}
}

func existingCard(id uint, slug string) *models.Card {
	card := &models.Card{Slug: slug}
	card.ID = id
	card.SetSection(models.CompanyInfo{BusinessName: "Acme Traders", Email: "owner@acme.example", LogoImage: "https://cdn/logo.png"})
	card.SetSection(models.SocialVideo{Facebook: "https://facebook.com/acme"})
	return card
}

var ident = models.CardIdentity{ID: 42, Slug: "acme-traders-x7k2p9"}

func TestSubmitCompanyInfoUploadsLogoThenCreates(t *testing.T) {
	o, gw, up := newTestOrchestrator()
	ctx := context.Background()

	up.On("Upload", mock.Anything, mock.Anything).Return("https://cdn/logo.png", nil).Once()
	gw.On("Create", mock.Anything, mock.MatchedBy(func(s models.Section) bool {
		ci, ok := s.(models.CompanyInfo)
		return ok && ci.LogoImage == "https://cdn/logo.png" && ci.BusinessName == "Acme Traders"
	})).Return(ident, nil).Once()

	nav, err := o.Submit(ctx, companyInput(pendingFile("logo.png")))
	require.NoError(t, err)

	assert.Equal(t, NavEdit{Slug: ident.Slug, Step: 1}, nav)
	assert.Equal(t, State{Phase: PhaseIdle, Step: 1}, o.State())
	assert.Equal(t, ident, o.Identity())
	up.AssertNumberOfCalls(t, "Upload", 1)
	gw.AssertNumberOfCalls(t, "Create", 1)
	gw.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestLaterStepsUpdateWithBoundIdentity(t *testing.T) {
	o, gw, up := newTestOrchestrator()
	ctx := context.Background()

	up.On("Upload", mock.Anything, mock.Anything).Return("https://cdn/logo.png", nil)
	gw.On("Create", mock.Anything, mock.Anything).Return(ident, nil).Once()
	gw.On("Update", mock.Anything, ident.ID, models.SocialVideo{Instagram: "https://instagram.com/acme"}).Return(nil).Once()

	_, err := o.Submit(ctx, companyInput(pendingFile("logo.png")))
	require.NoError(t, err)

	nav, err := o.Submit(ctx, forms.SocialInput{Values: forms.SocialValues{Instagram: "https://instagram.com/acme"}})
	require.NoError(t, err)
	assert.Equal(t, NavStep{Slug: ident.Slug, Step: 2}, nav)

	gw.AssertNumberOfCalls(t, "Create", 1)
	gw.AssertNumberOfCalls(t, "Update", 1)
}

func TestUploadFailureSendsNoPayload(t *testing.T) {
	o, gw, up := newTestOrchestrator()
	up.On("Upload", mock.Anything, mock.Anything).Return("", errors.New("s3 kapalı"))

	nav, err := o.Submit(context.Background(), companyInput(pendingFile("logo.png")))
	assert.Nil(t, nav)

	var upErr *UploadError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, models.SectionCompanyInfo, upErr.Step)
	assert.Equal(t, State{Phase: PhaseIdle, Step: 0}, o.State())
	assert.True(t, o.Identity().IsZero())
	gw.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	gw.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestGalleryUploadFailureAbortsWholeStep(t *testing.T) {
	o, gw, up := newTestOrchestrator()
	ctx := context.Background()
	gw.On("Fetch", mock.Anything, ident.Slug).Return(existingCard(ident.ID, ident.Slug), nil)
	require.NoError(t, o.Load(ctx, ident.Slug, 5))

	good := upload.NewMemoryFile("ok.png", "image/png", []byte("ok"))
	bad := upload.NewMemoryFile("bad.png", "image/png", []byte("bad"))
	up.On("Upload", mock.Anything, good).Return("https://cdn/ok.png", nil)
	up.On("Upload", mock.Anything, bad).Return("", errors.New("zaman aşımı"))

	_, err := o.Submit(ctx, forms.GalleryInput{Add: []upload.FileRef{upload.PendingFile(good), upload.PendingFile(bad)}})
	var upErr *UploadError
	require.ErrorAs(t, err, &upErr)
	gw.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, 5, o.State().Step)
}

func TestPersistenceFailureKeepsStepAndIdentityUnbound(t *testing.T) {
	o, gw, _ := newTestOrchestrator()
	gw.On("Create", mock.Anything, mock.Anything).Return(models.CardIdentity{}, errors.New("db kapalı"))

	in := companyInput(upload.Persisted("https://cdn/logo.png"))
	_, err := o.Submit(context.Background(), in)

	var pErr *PersistenceError
	require.ErrorAs(t, err, &pErr)
	assert.True(t, pErr.Creating)
	assert.Equal(t, State{Phase: PhaseIdle, Step: 0}, o.State())
	assert.True(t, o.Identity().IsZero())
	assert.Equal(t, "Acme Traders", o.View().Forms.Company.Values.BusinessName, "form verisi korunur")
}

func TestValidationErrorNeverReachesNetwork(t *testing.T) {
	o, gw, up := newTestOrchestrator()
	in := companyInput(nil)
	in.Values.GoogleMapLink = "https://example.com"

	_, err := o.Submit(context.Background(), in)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.True(t, vErr.Fields.Has("googleMapLink"))
	assert.True(t, vErr.Fields.Has("logoImage"))
	up.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
	gw.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLoadWithStepParamResumesWithoutCreate(t *testing.T) {
	o, gw, _ := newTestOrchestrator()
	gw.On("Fetch", mock.Anything, ident.Slug).Return(existingCard(ident.ID, ident.Slug), nil)

	require.NoError(t, o.Load(context.Background(), ident.Slug, 4))
	assert.Equal(t, State{Phase: PhaseIdle, Step: 4}, o.State())
	assert.Equal(t, ident, o.Identity())
	assert.Equal(t, "https://facebook.com/acme", o.View().Forms.Social.Values.Facebook)
	gw.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLoadClampsOutOfRangeStep(t *testing.T) {
	o, gw, _ := newTestOrchestrator()
	gw.On("Fetch", mock.Anything, ident.Slug).Return(existingCard(ident.ID, ident.Slug), nil)

	require.NoError(t, o.Load(context.Background(), ident.Slug, 99))
	assert.Equal(t, 0, o.State().Step)
}

func TestFetchErrorBlocksWizard(t *testing.T) {
	o, gw, _ := newTestOrchestrator()
	gw.On("Fetch", mock.Anything, "missing").Return(nil, errors.New("bulunamadı"))

	err := o.Load(context.Background(), "missing", 2)
	var fErr *FetchError
	require.ErrorAs(t, err, &fErr)
	assert.Equal(t, "missing", fErr.Slug)

	_, err = o.Submit(context.Background(), companyInput(upload.Persisted("x")))
	assert.ErrorAs(t, err, &fErr, "kayıt yüklenemeden yeni kayıt oluşturulmaz")
	_, err = o.Back()
	assert.ErrorAs(t, err, &fErr)
	assert.Error(t, o.View().LoadErr)
	gw.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestJumpRequiresIdentity(t *testing.T) {
	o, gw, _ := newTestOrchestrator()

	_, err := o.JumpTo(3)
	assert.ErrorIs(t, err, ErrJumpNotAllowed)
	_, err = o.JumpTo(7)
	assert.ErrorIs(t, err, ErrStepOutOfRange)

	gw.On("Fetch", mock.Anything, ident.Slug).Return(existingCard(ident.ID, ident.Slug), nil)
	require.NoError(t, o.Load(context.Background(), ident.Slug, 0))

	nav, err := o.JumpTo(5)
	require.NoError(t, err)
	assert.Equal(t, NavStep{Slug: ident.Slug, Step: 5}, nav)
	assert.Equal(t, 5, o.State().Step)
}

func TestBackMovesWithoutNetwork(t *testing.T) {
	o, gw, _ := newTestOrchestrator()
	_, err := o.Back()
	assert.ErrorIs(t, err, ErrNoPreviousStep)

	gw.On("Fetch", mock.Anything, ident.Slug).Return(existingCard(ident.ID, ident.Slug), nil)
	require.NoError(t, o.Load(context.Background(), ident.Slug, 3))

	nav, err := o.Back()
	require.NoError(t, err)
	assert.Equal(t, NavStep{Slug: ident.Slug, Step: 2}, nav)
	gw.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestTransitionClearsPendingFiles(t *testing.T) {
	o, gw, _ := newTestOrchestrator()
	gw.On("Fetch", mock.Anything, ident.Slug).Return(existingCard(ident.ID, ident.Slug), nil)
	require.NoError(t, o.Load(context.Background(), ident.Slug, 5))

	require.NoError(t, o.EditGallery(func(g *forms.GalleryForm) error {
		g.Add(pendingFile("a.png"))
		return nil
	}))
	assert.Len(t, o.View().Forms.Gallery.Images, 1)

	_, err := o.Back()
	require.NoError(t, err)
	_, err = o.JumpTo(5)
	require.NoError(t, err)
	assert.Empty(t, o.View().Forms.Gallery.Images)
}

func TestServicesSubmitUploadsEachImageInOrder(t *testing.T) {
	o, gw, up := newTestOrchestrator()
	ctx := context.Background()
	gw.On("Fetch", mock.Anything, ident.Slug).Return(existingCard(ident.ID, ident.Slug), nil)
	require.NoError(t, o.Load(ctx, ident.Slug, 3))

	_, err := o.Submit(ctx, forms.ServicesInput{})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr, "boş liste gönderilemez")

	fileB := upload.NewMemoryFile("b.png", "image/png", []byte("b"))
	up.On("Upload", mock.Anything, fileB).Return("https://cdn/b.png", nil).Once()

	require.NoError(t, o.EditServices(func(f *forms.ServicesForm) error {
		v := forms.ServiceValues{Type: "product", ProductName: "A", Currency: "INR", Price: "1", Description: "a"}
		if errs := f.SaveEntry(v, upload.Persisted("https://cdn/a.png")); len(errs) > 0 {
			return errs
		}
		v.ProductName, v.Type = "B", "service"
		if errs := f.SaveEntry(v, upload.PendingFile(fileB)); len(errs) > 0 {
			return errs
		}
		return nil
	}))

	gw.On("Update", mock.Anything, ident.ID, mock.MatchedBy(func(s models.Section) bool {
		list, ok := s.(models.Services)
		return ok && len(list) == 2 &&
			list[0].ProductName == "A" && list[0].ProductImage == "https://cdn/a.png" &&
			list[1].ProductName == "B" && list[1].ProductImage == "https://cdn/b.png"
	})).Return(nil).Once()

	nav, err := o.Submit(ctx, forms.ServicesInput{})
	require.NoError(t, err)
	assert.Equal(t, NavStep{Slug: ident.Slug, Step: 4}, nav)
	up.AssertNumberOfCalls(t, "Upload", 1)
}

func TestBankSubmitMergesQRCodesIntoOnlineTransfer(t *testing.T) {
	o, gw, up := newTestOrchestrator()
	ctx := context.Background()
	gw.On("Fetch", mock.Anything, ident.Slug).Return(existingCard(ident.ID, ident.Slug), nil)
	require.NoError(t, o.Load(ctx, ident.Slug, 4))

	phonePe := upload.NewMemoryFile("phonepe.png", "image/png", []byte("qr"))
	up.On("Upload", mock.Anything, phonePe).Return("https://cdn/phonepe.png", nil).Once()

	gw.On("Update", mock.Anything, ident.ID, mock.MatchedBy(func(s models.Section) bool {
		bank, ok := s.(models.BankDetails)
		if !ok {
			return false
		}
		otd := bank.OnlineTransferDetails
		return bank.BankName == "SBI" && otd.UpiID == "acme@upi" &&
			otd.GooglePayQRImage == "https://cdn/gpay.png" &&
			otd.PhonePeQRImage == "https://cdn/phonepe.png" &&
			otd.UpiQRImage == ""
	})).Return(nil).Once()

	nav, err := o.Submit(ctx, forms.BankInput{
		Values: forms.BankValues{BankName: "SBI", AccountType: "Savings", UpiID: "acme@upi"},
		QR: forms.BankQRCodes{
			GooglePay: upload.Persisted("https://cdn/gpay.png"),
			PhonePe:   upload.PendingFile(phonePe),
		},
	})
	require.NoError(t, err)
	assert.Equal(t, NavStep{Slug: ident.Slug, Step: 5}, nav)
	up.AssertNumberOfCalls(t, "Upload", 1)
	gw.AssertExpectations(t)
}

func TestEditServicesOnlyOnServicesStep(t *testing.T) {
	o, _, _ := newTestOrchestrator()
	err := o.EditServices(func(*forms.ServicesForm) error { return nil })
	assert.ErrorIs(t, err, ErrStepMismatch)
	err = o.EditGallery(func(*forms.GalleryForm) error { return nil })
	assert.ErrorIs(t, err, ErrStepMismatch)
}

func TestSubmitRejectsInputForOtherStep(t *testing.T) {
	o, gw, _ := newTestOrchestrator()
	_, err := o.Submit(context.Background(), forms.SocialInput{})
	assert.ErrorIs(t, err, ErrStepMismatch)
	gw.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestTerminalStepExitsToListing(t *testing.T) {
	o, gw, _ := newTestOrchestrator()
	ctx := context.Background()
	gw.On("Fetch", mock.Anything, ident.Slug).Return(existingCard(ident.ID, ident.Slug), nil)
	gw.On("Update", mock.Anything, ident.ID, models.ExtraDetails{Note: "ok", PaidAmount: 10}).Return(nil).Once()
	require.NoError(t, o.Load(ctx, ident.Slug, 6))

	nav, err := o.Submit(ctx, forms.ExtraInput{Values: forms.ExtraValues{Note: "ok", PaidAmount: "10"}})
	require.NoError(t, err)
	assert.Equal(t, NavListing{}, nav)
	assert.Equal(t, PhaseExited, o.State().Phase)

	_, err = o.Submit(ctx, forms.ExtraInput{})
	assert.ErrorIs(t, err, ErrWizardClosed)
}

func TestConcurrentSubmitIsRejected(t *testing.T) {
	o, gw, _ := newTestOrchestrator()
	started := make(chan struct{})
	release := make(chan struct{})
	gw.On("Create", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		close(started)
		<-release
	}).Return(ident, nil).Once()

	in := companyInput(upload.Persisted("https://cdn/logo.png"))
	done := make(chan error, 1)
	go func() {
		_, err := o.Submit(context.Background(), in)
		done <- err
	}()
	<-started

	assert.Equal(t, PhaseSubmitting, o.State().Phase)
	assert.True(t, o.View().Busy)
	_, err := o.Submit(context.Background(), in)
	assert.ErrorIs(t, err, ErrSubmitInProgress)
	_, err = o.Back()
	assert.ErrorIs(t, err, ErrSubmitInProgress)

	close(release)
	require.NoError(t, <-done)
	gw.AssertNumberOfCalls(t, "Create", 1)
}

func TestStaleResultIsDiscardedAfterReset(t *testing.T) {
	o, gw, _ := newTestOrchestrator()
	started := make(chan struct{})
	release := make(chan struct{})
	gw.On("Create", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		close(started)
		<-release
	}).Return(ident, nil).Once()

	done := make(chan error, 1)
	go func() {
		_, err := o.Submit(context.Background(), companyInput(upload.Persisted("https://cdn/logo.png")))
		done <- err
	}()
	<-started
	o.Reset()
	close(release)

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrStaleResult)
	case <-time.After(2 * time.Second):
		t.Fatal("submit bitmedi")
	}
	assert.True(t, o.Identity().IsZero())
	assert.Equal(t, State{Phase: PhaseIdle, Step: 0}, o.State())
}

func TestRefreshKeepsDirtyActiveForm(t *testing.T) {
	o, gw, _ := newTestOrchestrator()
	ctx := context.Background()
	gw.On("Fetch", mock.Anything, ident.Slug).Return(existingCard(ident.ID, ident.Slug), nil).Once()
	require.NoError(t, o.Load(ctx, ident.Slug, 1))

	_, err := o.Submit(ctx, forms.SocialInput{Values: forms.SocialValues{Facebook: "https://example.com/acme"}})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)

	updated := existingCard(ident.ID, ident.Slug)
	updated.SetSection(models.SocialVideo{Facebook: "https://facebook.com/acme-new"})
	updated.SetSection(models.CompanyInfo{BusinessName: "Acme Yeni", LogoImage: "https://cdn/logo.png"})
	gw.On("Fetch", mock.Anything, ident.Slug).Return(updated, nil).Once()

	err = o.Refresh(ctx)
	assert.ErrorIs(t, err, ErrRefreshConflict)
	v := o.View()
	assert.Equal(t, "https://example.com/acme", v.Forms.Social.Values.Facebook, "yerel değişiklik korunur")
	assert.Equal(t, "Acme Yeni", v.Forms.Company.Values.BusinessName, "aktif olmayan formlar yenilenir")
	assert.NotEmpty(t, v.Notice)
}

func TestRefreshRehydratesCleanForm(t *testing.T) {
	o, gw, _ := newTestOrchestrator()
	ctx := context.Background()
	gw.On("Fetch", mock.Anything, ident.Slug).Return(existingCard(ident.ID, ident.Slug), nil).Once()
	require.NoError(t, o.Load(ctx, ident.Slug, 1))

	updated := existingCard(ident.ID, ident.Slug)
	updated.SetSection(models.SocialVideo{Facebook: "https://facebook.com/acme-new"})
	gw.On("Fetch", mock.Anything, ident.Slug).Return(updated, nil).Once()

	require.NoError(t, o.Refresh(ctx))
	assert.Equal(t, "https://facebook.com/acme-new", o.View().Forms.Social.Values.Facebook)

	fresh, _, _ := newTestOrchestrator()
	assert.ErrorIs(t, fresh.Refresh(ctx), ErrNotEditing)
}

func TestPositionLabelAndStepTable(t *testing.T) {
	assert.Equal(t, 7, StepCount)
	assert.Equal(t, "Step 1 of 7", PositionLabel(0))
	assert.Equal(t, "Step 7 of 7", PositionLabel(6))

	i, ok := StepIndex(models.SectionGallery)
	assert.True(t, ok)
	assert.Equal(t, 5, i)
	_, ok = StepIndex("nope")
	assert.False(t, ok)
}
