package wizard

import (
	"context"
	"errors"
	"sync"

	"kartvizit.link/configs/configslog"
	"kartvizit.link/forms"
	"kartvizit.link/models"
	"kartvizit.link/pkg/upload"

	"go.uber.org/zap"
)

// CardGateway sihirbazın kullandığı kayıt servisidir. Yetki bilgisi ctx
// içindeki principal'dan okunur.
type CardGateway interface {
	Fetch(ctx context.Context, slug string) (*models.Card, error)
	// Create yalnızca companyInfo bölümüyle çağrılabilir.
	Create(ctx context.Context, section models.Section) (models.CardIdentity, error)
	Update(ctx context.Context, id uint, section models.Section) error
}

// FileNormalizer bekleyen dosyaları kalıcı referanslara çevirir.
type FileNormalizer interface {
	One(ctx context.Context, ref upload.FileRef) (string, error)
	Many(ctx context.Context, refs []upload.FileRef) ([]string, error)
}

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
	PhaseAdvancing
	PhaseExited
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSubmitting:
		return "submitting"
	case PhaseAdvancing:
		return "advancing"
	case PhaseExited:
		return "exited"
	default:
		return "unknown"
	}
}

// State sihirbazın anlık durumu. Step, PhaseIdle ve PhaseSubmitting için anlamlıdır.
type State struct {
	Phase Phase
	Step  int
}

// View şablonlara verilen, sihirbazdan bağımsız anlık görüntüdür.
type View struct {
	State    State
	Current  StepDefinition
	Position string
	Identity models.CardIdentity
	Loading  bool
	Busy     bool
	LoadErr  error
	Notice   string
	Forms    *forms.Set
}

// Orchestrator tek bir tarayıcı oturumunun sihirbazıdır. Kayıt kimliği ve son
// alınan kayıt görüntüsü yalnızca burada tutulur; formlar bunları okur.
type Orchestrator struct {
	mu         sync.Mutex
	gateway    CardGateway
	normalizer FileNormalizer

	state      State
	identity   models.CardIdentity
	snapshot   *models.Card
	forms      *forms.Set
	generation uint64
	loading    bool
	loadErr    error
	notice     string
}

func NewOrchestrator(gateway CardGateway, normalizer FileNormalizer) *Orchestrator {
	o := &Orchestrator{gateway: gateway, normalizer: normalizer}
	o.resetLocked()
	return o
}

func (o *Orchestrator) resetLocked() {
	o.generation++
	o.state = State{Phase: PhaseIdle}
	o.identity = models.CardIdentity{}
	o.snapshot = &models.Card{}
	o.forms = forms.NewSet()
	o.forms.HydrateAll(o.snapshot)
	o.loading = false
	o.loadErr = nil
	o.notice = ""
}

// Reset yeni bir kartvizit için sihirbazı baştan başlatır. Sürmekte olan bir
// gönderimin sonucu uygulanmaz.
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.resetLocked()
}

// Load slug verilmişse kaydı getirir ve step adımından başlar; aralık dışı adım
// ilk adıma çekilir. Slug boşsa boş bir kayıtla ilk adımdan başlanır.
func (o *Orchestrator) Load(ctx context.Context, slug string, step int) error {
	o.mu.Lock()
	o.resetLocked()
	if slug == "" {
		o.mu.Unlock()
		return nil
	}
	o.loading = true
	gen := o.generation
	o.mu.Unlock()

	card, err := o.gateway.Fetch(ctx, slug)

	o.mu.Lock()
	defer o.mu.Unlock()
	if gen != o.generation {
		return ErrStaleResult
	}
	o.loading = false
	if err != nil {
		o.loadErr = &FetchError{Slug: slug, Err: err}
		configslog.Log.Warn("Wizard - kartvizit yüklenemedi", zap.String("slug", slug), zap.Error(err))
		return o.loadErr
	}
	if step < 0 || step >= StepCount {
		step = 0
	}
	o.snapshot = card
	o.identity = card.Identity()
	o.forms.HydrateAll(card)
	o.state = State{Phase: PhaseIdle, Step: step}
	return nil
}

// Refresh kaydı yeniden getirir. Aktif form düzenlenmemişse yeni veriyle
// doldurulur; düzenlenmişse değişiklikler korunur ve ErrRefreshConflict döner.
func (o *Orchestrator) Refresh(ctx context.Context) error {
	o.mu.Lock()
	if o.identity.IsZero() {
		o.mu.Unlock()
		return ErrNotEditing
	}
	if o.state.Phase == PhaseSubmitting {
		o.mu.Unlock()
		return ErrSubmitInProgress
	}
	slug := o.identity.Slug
	o.loading = true
	o.generation++
	gen := o.generation
	o.mu.Unlock()

	card, err := o.gateway.Fetch(ctx, slug)

	o.mu.Lock()
	defer o.mu.Unlock()
	if gen != o.generation {
		return ErrStaleResult
	}
	o.loading = false
	if err != nil {
		return &FetchError{Slug: slug, Err: err}
	}
	o.snapshot = card
	o.identity = card.Identity()

	active := Steps[o.state.Step].Key
	conflict := false
	for _, s := range Steps {
		f := o.forms.Form(s.Key)
		if s.Key == active && f.Dirty() {
			conflict = true
			continue
		}
		f.Hydrate(card)
	}
	if conflict {
		o.notice = ErrRefreshConflict.Error()
		return ErrRefreshConflict
	}
	o.notice = ""
	return nil
}

// Submit aktif adımın girdisini forma uygular, doğrular, dosyaları yükler ve
// kaydı oluşturur ya da günceller. Başarıda bir sonraki adıma geçilir.
func (o *Orchestrator) Submit(ctx context.Context, in forms.StepInput) (Nav, error) {
	o.mu.Lock()
	if err := o.guardIdleLocked(); err != nil {
		o.mu.Unlock()
		return nil, err
	}
	i := o.state.Step
	key := Steps[i].Key
	if in.Key() != key {
		o.mu.Unlock()
		return nil, ErrStepMismatch
	}
	if err := o.forms.Apply(in); err != nil {
		o.mu.Unlock()
		return nil, err
	}
	if errs := o.forms.Form(key).Validate(); len(errs) > 0 {
		o.mu.Unlock()
		return nil, &ValidationError{Step: key, Fields: errs}
	}
	creating := o.identity.IsZero()
	if creating && i != 0 {
		o.mu.Unlock()
		return nil, ErrIdentityUnbound
	}
	normalize := o.prepareLocked(key)
	id := o.identity.ID
	o.state.Phase = PhaseSubmitting
	o.generation++
	gen := o.generation
	o.mu.Unlock()

	section, err := normalize(ctx)
	if err != nil {
		o.mu.Lock()
		defer o.mu.Unlock()
		if gen != o.generation {
			return nil, ErrStaleResult
		}
		o.state.Phase = PhaseIdle
		configslog.Log.Warn("Wizard - dosya yükleme başarısız", zap.String("step", string(key)), zap.Error(err))
		return nil, &UploadError{Step: key, Err: err}
	}

	var ident models.CardIdentity
	if creating {
		ident, err = o.gateway.Create(ctx, section)
	} else {
		err = o.gateway.Update(ctx, id, section)
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if gen != o.generation {
		return nil, ErrStaleResult
	}
	if err != nil {
		o.state.Phase = PhaseIdle
		configslog.Log.Warn("Wizard - kayıt başarısız",
			zap.String("step", string(key)), zap.Bool("creating", creating), zap.Error(err))
		return nil, &PersistenceError{Step: key, Creating: creating, Err: err}
	}

	o.state.Phase = PhaseAdvancing
	if creating {
		o.identity = ident
		o.snapshot.ID = ident.ID
		o.snapshot.Slug = ident.Slug
	}
	o.snapshot.SetSection(section)
	return o.advanceLocked(i, creating), nil
}

func (o *Orchestrator) advanceLocked(i int, created bool) Nav {
	o.forms.Form(Steps[i].Key).Hydrate(o.snapshot)
	o.notice = ""
	next := i + 1
	if next >= StepCount {
		o.state = State{Phase: PhaseExited, Step: i}
		return NavListing{}
	}
	o.state = State{Phase: PhaseIdle, Step: next}
	o.forms.Form(Steps[next].Key).Hydrate(o.snapshot)
	if created {
		return NavEdit{Slug: o.identity.Slug, Step: next}
	}
	return NavStep{Slug: o.identity.Slug, Step: next}
}

// prepareLocked aktif adımın ham çıktısını kopyalar ve dosyaları yükleyip
// bölümü üreten işi döndürür. İş kilit dışında çalışır.
func (o *Orchestrator) prepareLocked(key models.SectionKey) func(context.Context) (models.Section, error) {
	n := o.normalizer
	switch key {
	case models.SectionCompanyInfo:
		draft := o.forms.Company.Emit()
		return func(ctx context.Context) (models.Section, error) {
			logo, err := n.One(ctx, draft.Logo)
			if err != nil {
				return nil, err
			}
			draft.Info.LogoImage = logo
			return draft.Info, nil
		}
	case models.SectionSocialVideo:
		social := o.forms.Social.Emit()
		return func(context.Context) (models.Section, error) {
			return social, nil
		}
	case models.SectionAboutInfo:
		draft := o.forms.About.Emit()
		return func(ctx context.Context) (models.Section, error) {
			doc, err := n.One(ctx, draft.Document)
			if err != nil {
				return nil, err
			}
			draft.Info.Documents = doc
			return draft.Info, nil
		}
	case models.SectionServices:
		drafts := o.forms.Services.Emit()
		return func(ctx context.Context) (models.Section, error) {
			refs := make([]upload.FileRef, len(drafts))
			for i, d := range drafts {
				refs[i] = d.Image
			}
			urls, err := n.Many(ctx, refs)
			if err != nil {
				return nil, err
			}
			out := make(models.Services, len(drafts))
			for i, d := range drafts {
				out[i] = d.Item
				out[i].ProductImage = urls[i]
			}
			return out, nil
		}
	case models.SectionBankDetails:
		draft := o.forms.Bank.Emit()
		return func(ctx context.Context) (models.Section, error) {
			urls, err := n.Many(ctx, []upload.FileRef{draft.QR.GooglePay, draft.QR.PhonePe, draft.QR.Upi})
			if err != nil {
				return nil, err
			}
			otd := &draft.Details.OnlineTransferDetails
			otd.GooglePayQRImage, otd.PhonePeQRImage, otd.UpiQRImage = urls[0], urls[1], urls[2]
			return draft.Details, nil
		}
	case models.SectionGallery:
		images := o.forms.Gallery.Emit()
		return func(ctx context.Context) (models.Section, error) {
			urls, err := n.Many(ctx, images)
			if err != nil {
				return nil, err
			}
			kept := make([]string, 0, len(urls))
			for _, u := range urls {
				if u != "" {
					kept = append(kept, u)
				}
			}
			return models.Gallery{Images: kept}, nil
		}
	case models.SectionExtraDetails:
		extra := o.forms.Extra.Emit()
		return func(context.Context) (models.Section, error) {
			return extra, nil
		}
	default:
		return func(context.Context) (models.Section, error) {
			return nil, ErrStepOutOfRange
		}
	}
}

// Back bir önceki adıma döner; ağ çağrısı yapılmaz. Aktif adımdaki
// kaydedilmemiş değişiklikler ve bekleyen dosyalar atılır.
func (o *Orchestrator) Back() (Nav, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.guardIdleLocked(); err != nil {
		return nil, err
	}
	if o.state.Step == 0 {
		return nil, ErrNoPreviousStep
	}
	return o.moveLocked(o.state.Step - 1), nil
}

// JumpTo kayıt oluşturulmuşsa istenen adıma doğrudan geçer.
func (o *Orchestrator) JumpTo(step int) (Nav, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.guardIdleLocked(); err != nil {
		return nil, err
	}
	if step < 0 || step >= StepCount {
		return nil, ErrStepOutOfRange
	}
	if step == o.state.Step {
		return NavStep{Slug: o.identity.Slug, Step: step}, nil
	}
	if o.identity.IsZero() {
		return nil, ErrJumpNotAllowed
	}
	return o.moveLocked(step), nil
}

func (o *Orchestrator) moveLocked(step int) Nav {
	o.forms.Form(Steps[o.state.Step].Key).Hydrate(o.snapshot)
	o.generation++
	o.notice = ""
	o.state = State{Phase: PhaseIdle, Step: step}
	o.forms.Form(Steps[step].Key).Hydrate(o.snapshot)
	return NavStep{Slug: o.identity.Slug, Step: step}
}

func (o *Orchestrator) guardIdleLocked() error {
	if o.loadErr != nil {
		return o.loadErr
	}
	switch o.state.Phase {
	case PhaseSubmitting, PhaseAdvancing:
		return ErrSubmitInProgress
	case PhaseExited:
		return ErrWizardClosed
	}
	return nil
}

// EditServices aktif adım services ise çalışma listesinde değişiklik yapar.
func (o *Orchestrator) EditServices(fn func(*forms.ServicesForm) error) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.guardStepLocked(models.SectionServices); err != nil {
		return err
	}
	return fn(&o.forms.Services)
}

// EditGallery aktif adım gallery ise galeriyi değiştirir.
func (o *Orchestrator) EditGallery(fn func(*forms.GalleryForm) error) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.guardStepLocked(models.SectionGallery); err != nil {
		return err
	}
	return fn(&o.forms.Gallery)
}

func (o *Orchestrator) guardStepLocked(key models.SectionKey) error {
	if err := o.guardIdleLocked(); err != nil {
		return err
	}
	if Steps[o.state.Step].Key != key {
		return ErrStepMismatch
	}
	return nil
}

// State anlık durumu döndürür.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Identity bağlanmış kayıt kimliğini döndürür.
func (o *Orchestrator) Identity() models.CardIdentity {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.identity
}

// View şablon için tutarlı bir kopya üretir.
func (o *Orchestrator) View() View {
	o.mu.Lock()
	defer o.mu.Unlock()
	return View{
		State:    o.state,
		Current:  Steps[o.state.Step],
		Position: PositionLabel(o.state.Step),
		Identity: o.identity,
		Loading:  o.loading,
		Busy:     o.loading || o.state.Phase == PhaseSubmitting,
		LoadErr:  o.loadErr,
		Notice:   o.notice,
		Forms:    o.forms.Clone(),
	}
}

// IsFlowError hatanın kullanıcı akışından (geçersiz gezinme, eşzamanlı
// gönderim) kaynaklandığını söyler.
func IsFlowError(err error) bool {
	var we WizardError
	return errors.As(err, &we)
}
