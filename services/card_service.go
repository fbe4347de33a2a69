package services

import (
	"context"
	"errors"
	"fmt"

	"kartvizit.link/auth"
	"kartvizit.link/configs/configsdatabase"
	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"
	"kartvizit.link/pkg/queryparams"
	"kartvizit.link/repositories"
	"kartvizit.link/utils"
	"kartvizit.link/wizard"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CardServiceError özel servis hataları
type CardServiceError string

func (e CardServiceError) Error() string { return string(e) }

const (
	ErrCardNotFound           CardServiceError = "kartvizit bulunamadı"
	ErrCardCreationFailed     CardServiceError = "kartvizit oluşturulamadı"
	ErrCardUpdateFailed       CardServiceError = "kartvizit güncellenemedi"
	ErrCardDeletionFailed     CardServiceError = "kartvizit silinemedi"
	ErrCardForbidden          CardServiceError = "bu işlem için yetkiniz yok"
	ErrCardUnauthenticated    CardServiceError = "oturum bulunamadı"
	ErrCrdInvalidInput        CardServiceError = "geçersiz girdi verisi"
	ErrCardCreateNeedsCompany CardServiceError = "kartvizit yalnızca firma bilgileriyle oluşturulabilir"
	ErrCardSlugFailed         CardServiceError = "kartvizit için adres üretilemedi"
)

const (
	slugBaseMaxLen   = 48
	slugSuffixLen    = 6
	maxSlugAttempts  = 5
	fallbackSlugBase = "kartvizit"
)

// ICardService kartvizit işlemleri için arayüz. Sihirbazın kullandığı
// wizard.CardGateway'i de karşılar.
type ICardService interface {
	wizard.CardGateway
	Delete(ctx context.Context, id uint) error
	ListCards(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	CountCards(ctx context.Context) (int64, error)
	// GetPublicCard yayında olan kartı herkese açık sayfa için getirir.
	GetPublicCard(ctx context.Context, slug string) (*models.Card, error)
}

// CardService ICardService arayüzünü uygular.
type CardService struct {
	repo repositories.ICardRepository
	db   *gorm.DB
}

func NewCardService() ICardService {
	return &CardService{
		repo: repositories.NewCardRepository(),
		db:   configsdatabase.GetDB(),
	}
}

func principal(ctx context.Context) (auth.Principal, error) {
	p, ok := auth.FromContext(ctx)
	if !ok {
		return auth.Principal{}, ErrCardUnauthenticated
	}
	return p, nil
}

func requireSystem(ctx context.Context) (auth.Principal, error) {
	p, err := principal(ctx)
	if err != nil {
		return p, err
	}
	if !p.IsSystem {
		configslog.Log.Warn("Yetkisiz kartvizit değişiklik denemesi", zap.Uint("userID", p.UserID))
		return p, ErrCardForbidden
	}
	return p, nil
}

func canView(p auth.Principal, card *models.Card) bool {
	return p.IsSystem || (p.Email != "" && card.OwnerEmail == p.Email)
}

// Fetch düzenleme için kartı getirir. Sistem kullanıcıları her kartı, diğer
// kullanıcılar yalnızca kendi e-postalarına kayıtlı kartları görebilir.
func (s *CardService) Fetch(ctx context.Context, slug string) (*models.Card, error) {
	p, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	card, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, err
	}
	if !canView(p, card) {
		configslog.Log.Warn("Yetkisiz kartvizit erişim denemesi",
			zap.String("slug", slug), zap.Uint("userID", p.UserID))
		return nil, ErrCardForbidden
	}
	return card, nil
}

// Create ilk bölümden yeni bir kartvizit oluşturur ve benzersiz bir slug atar.
func (s *CardService) Create(ctx context.Context, section models.Section) (models.CardIdentity, error) {
	p, err := requireSystem(ctx)
	if err != nil {
		return models.CardIdentity{}, err
	}
	info, ok := section.(models.CompanyInfo)
	if !ok {
		return models.CardIdentity{}, ErrCardCreateNeedsCompany
	}
	if info.BusinessName == "" {
		return models.CardIdentity{}, fmt.Errorf("%w: firma adı boş", ErrCrdInvalidInput)
	}

	var created models.Card
	txErr := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repoTx := repositories.NewCardRepositoryTx(tx)

		slug, err := s.uniqueSlug(ctx, repoTx, info.BusinessName)
		if err != nil {
			return err
		}

		card := models.Card{
			Slug:          slug,
			CreatorUserID: p.UserID,
			IsEnabled:     true,
		}
		card.SetSection(info)
		if err := repoTx.CreateCard(ctx, &card); err != nil {
			configslog.Log.Error("Kartvizit oluşturulamadı", zap.String("slug", slug), zap.Error(err))
			return ErrCardCreationFailed
		}
		created = card
		return nil
	})
	if txErr != nil {
		return models.CardIdentity{}, txErr
	}

	configslog.SLog.Infof("Kartvizit oluşturuldu: CardID %d, Slug: %s", created.ID, created.Slug)
	return created.Identity(), nil
}

func (s *CardService) uniqueSlug(ctx context.Context, repo repositories.ICardRepository, businessName string) (string, error) {
	base := utils.Slugify(businessName, slugBaseMaxLen)
	if base == "" {
		base = fallbackSlugBase
	}
	for i := 0; i < maxSlugAttempts; i++ {
		suffix, err := utils.GenerateSecureRandomString(slugSuffixLen)
		if err != nil {
			return "", ErrCardSlugFailed
		}
		candidate := base + "-" + suffix
		exists, err := repo.SlugExists(ctx, candidate)
		if err != nil {
			configslog.Log.Error("Slug benzersizlik kontrolü hatası", zap.Error(err))
			return "", ErrCardSlugFailed
		}
		if !exists {
			return candidate, nil
		}
		configslog.Log.Warn("Slug çakışması, yeniden deneniyor...", zap.String("slug", candidate))
	}
	return "", ErrCardSlugFailed
}

// Update tek bir bölümü günceller.
func (s *CardService) Update(ctx context.Context, id uint, section models.Section) error {
	if _, err := requireSystem(ctx); err != nil {
		return err
	}
	if id == 0 || section == nil {
		return ErrCrdInvalidInput
	}
	if err := s.repo.UpdateSection(ctx, id, section); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return ErrCardNotFound
		case errors.Is(err, repositories.ErrUnknownSection):
			return fmt.Errorf("%w: %v", ErrCrdInvalidInput, err)
		}
		configslog.Log.Error("Kartvizit bölümü güncellenemedi",
			zap.Uint("id", id), zap.String("section", string(section.SectionKey())), zap.Error(err))
		return ErrCardUpdateFailed
	}
	return nil
}

func (s *CardService) Delete(ctx context.Context, id uint) error {
	if _, err := requireSystem(ctx); err != nil {
		return err
	}
	if err := s.repo.DeleteCard(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCardNotFound
		}
		configslog.Log.Error("Kartvizit silinemedi", zap.Uint("id", id), zap.Error(err))
		return ErrCardDeletionFailed
	}
	configslog.SLog.Infof("Kartvizit silindi: CardID %d", id)
	return nil
}

// ListCards sistem kullanıcılarına tüm kartları, diğerlerine kendi kartlarını listeler.
func (s *CardService) ListCards(ctx context.Context, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	p, err := principal(ctx)
	if err != nil {
		return nil, err
	}
	owner := ""
	if !p.IsSystem {
		if p.Email == "" {
			return queryparams.NewPaginatedResult([]models.Card{}, 0, params), nil
		}
		owner = p.Email
	}
	cards, total, err := s.repo.GetAllCards(ctx, params, owner)
	if err != nil {
		configslog.Log.Error("Kartvizitler listelenemedi", zap.Uint("userID", p.UserID), zap.Error(err))
		return nil, err
	}
	return queryparams.NewPaginatedResult(cards, total, params), nil
}

func (s *CardService) CountCards(ctx context.Context) (int64, error) {
	p, err := principal(ctx)
	if err != nil {
		return 0, err
	}
	if p.IsSystem {
		return s.repo.CountCards(ctx, "")
	}
	if p.Email == "" {
		return 0, nil
	}
	return s.repo.CountCards(ctx, p.Email)
}

func (s *CardService) GetPublicCard(ctx context.Context, slug string) (*models.Card, error) {
	if slug == "" {
		return nil, ErrCardNotFound
	}
	card, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCardNotFound
		}
		configslog.Log.Error("GetPublicCard: repo error", zap.String("slug", slug), zap.Error(err))
		return nil, err
	}
	if !card.IsEnabled {
		return nil, ErrCardNotFound
	}
	return card, nil
}

var _ ICardService = (*CardService)(nil)
