package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"kartvizit.link/configs/configsdatabase"
	"kartvizit.link/configs/configslog"
	"kartvizit.link/models"
	"kartvizit.link/pkg/queryparams"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrUnknownSection = errors.New("bilinmeyen kartvizit bölümü")

// ICardRepository kartvizit veritabanı işlemleri için arayüz.
type ICardRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Card, error)
	FindBySlug(ctx context.Context, slug string) (*models.Card, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	CreateCard(ctx context.Context, card *models.Card) error
	UpdateSection(ctx context.Context, id uint, section models.Section) error
	DeleteCard(ctx context.Context, id uint) error
	// GetAllCards ownerEmail boşsa tüm kartları listeler.
	GetAllCards(ctx context.Context, params queryparams.ListParams, ownerEmail string) ([]models.Card, int64, error)
	CountCards(ctx context.Context, ownerEmail string) (int64, error)
}

type CardRepository struct {
	base IBaseRepository[models.Card]
	db   *gorm.DB
}

func NewCardRepository() ICardRepository {
	return NewCardRepositoryTx(configsdatabase.GetDB())
}

// NewCardRepositoryTx verilen bağlantı ya da transaction üzerinde çalışan repo döndürür.
func NewCardRepositoryTx(db *gorm.DB) ICardRepository {
	base := NewBaseRepository[models.Card](db)
	base.SetAllowedSortColumns([]string{"id", "created_at", "updated_at", "business_name", "slug"})
	return &CardRepository{base: base, db: db}
}

func (r *CardRepository) FindByID(ctx context.Context, id uint) (*models.Card, error) {
	return r.base.FindByID(ctx, id)
}

func (r *CardRepository) FindBySlug(ctx context.Context, slug string) (*models.Card, error) {
	var card models.Card
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&card).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		configslog.Log.Error("CardRepository.FindBySlug: DB error", zap.String("slug", slug), zap.Error(err))
		return nil, err
	}
	return &card, nil
}

// SlugExists silinmiş kayıtlar dahil slug'ın kullanılıp kullanılmadığını söyler.
func (r *CardRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Unscoped().Model(&models.Card{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *CardRepository) CreateCard(ctx context.Context, card *models.Card) error {
	return r.base.Create(ctx, card)
}

// UpdateSection yalnızca bölümün kolonlarını günceller; diğer bölümlere dokunmaz.
func (r *CardRepository) UpdateSection(ctx context.Context, id uint, section models.Section) error {
	data, err := sectionColumns(section)
	if err != nil {
		return err
	}
	return r.base.Update(ctx, id, data)
}

func sectionColumns(section models.Section) (map[string]interface{}, error) {
	if section == nil {
		return nil, ErrUnknownSection
	}
	var c models.Card
	c.SetSection(section)
	switch section.SectionKey() {
	case models.SectionCompanyInfo:
		return map[string]interface{}{
			"company_info":  c.CompanyInfo,
			"business_name": c.BusinessName,
			"owner_email":   c.OwnerEmail,
		}, nil
	case models.SectionSocialVideo:
		return map[string]interface{}{"social_video": c.SocialVideo}, nil
	case models.SectionAboutInfo:
		return map[string]interface{}{"about_info": c.AboutInfo}, nil
	case models.SectionServices:
		return map[string]interface{}{"services": c.Services}, nil
	case models.SectionBankDetails:
		return map[string]interface{}{"bank_details": c.BankDetails}, nil
	case models.SectionGallery:
		return map[string]interface{}{"gallery": c.Gallery}, nil
	case models.SectionExtraDetails:
		return map[string]interface{}{"extra_details": c.ExtraDetails}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownSection, section.SectionKey())
	}
}

func (r *CardRepository) DeleteCard(ctx context.Context, id uint) error {
	return r.base.Delete(ctx, id)
}

func (r *CardRepository) GetAllCards(ctx context.Context, params queryparams.ListParams, ownerEmail string) ([]models.Card, int64, error) {
	var results []models.Card
	var totalCount int64

	query := r.scoped(ctx, ownerEmail)
	if params.Name != "" {
		like := "%" + strings.ToLower(params.Name) + "%"
		query = query.Where("LOWER(business_name) LIKE ? OR LOWER(slug) LIKE ?", like, like)
	}

	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}
	if totalCount == 0 {
		return results, 0, nil
	}

	sortBy := params.SortBy
	if !r.base.IsSortAllowed(sortBy) {
		sortBy = "created_at"
	}
	orderBy := strings.ToLower(params.OrderBy)
	if orderBy != "asc" && orderBy != "desc" {
		orderBy = queryparams.DefaultOrderBy
	}

	err := query.Order(sortBy + " " + orderBy + ", id " + orderBy).
		Limit(params.PerPage).
		Offset(params.CalculateOffset()).
		Find(&results).Error
	return results, totalCount, err
}

func (r *CardRepository) CountCards(ctx context.Context, ownerEmail string) (int64, error) {
	if ownerEmail == "" {
		return r.base.GetCount(ctx)
	}
	var count int64
	err := r.scoped(ctx, ownerEmail).Count(&count).Error
	return count, err
}

func (r *CardRepository) scoped(ctx context.Context, ownerEmail string) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.Card{})
	if ownerEmail != "" {
		query = query.Where("owner_email = ?", ownerEmail)
	}
	return query
}

var _ ICardRepository = (*CardRepository)(nil)
