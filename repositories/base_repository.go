package repositories

import (
	"context"
	"errors"

	"kartvizit.link/auth"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("kayıt bulunamadı")

// IBaseRepository tüm tablolar için ortak CRUD işlemleri.
type IBaseRepository[T any] interface {
	FindByID(ctx context.Context, id uint) (*T, error)
	Create(ctx context.Context, entity *T) error
	Update(ctx context.Context, id uint, data map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
	GetCount(ctx context.Context) (int64, error)
	SetAllowedSortColumns(columns []string)
	IsSortAllowed(column string) bool
}

type BaseRepository[T any] struct {
	db                 *gorm.DB
	allowedSortColumns map[string]struct{}
}

func NewBaseRepository[T any](db *gorm.DB) IBaseRepository[T] {
	return &BaseRepository[T]{db: db, allowedSortColumns: map[string]struct{}{}}
}

func (r *BaseRepository[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	var entity T
	err := r.db.WithContext(ctx).First(&entity, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entity, nil
}

func (r *BaseRepository[T]) Create(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Create(entity).Error
}

// Update verilen kolonları günceller. updated_by context'teki principal'dan yazılır.
func (r *BaseRepository[T]) Update(ctx context.Context, id uint, data map[string]interface{}) error {
	if p, ok := auth.FromContext(ctx); ok {
		data["updated_by"] = p.UserID
	}
	var entity T
	result := r.db.WithContext(ctx).Model(&entity).Where("id = ?", id).Updates(data)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete kaydı soft delete ile siler; deleted_by context'teki principal'dan yazılır.
func (r *BaseRepository[T]) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entity T
		if p, ok := auth.FromContext(ctx); ok {
			if err := tx.Model(&entity).Where("id = ?", id).Update("deleted_by", p.UserID).Error; err != nil {
				return err
			}
		}
		result := tx.Delete(&entity, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *BaseRepository[T]) GetCount(ctx context.Context) (int64, error) {
	var count int64
	var entity T
	err := r.db.WithContext(ctx).Model(&entity).Count(&count).Error
	return count, err
}

func (r *BaseRepository[T]) SetAllowedSortColumns(columns []string) {
	r.allowedSortColumns = make(map[string]struct{}, len(columns))
	for _, c := range columns {
		r.allowedSortColumns[c] = struct{}{}
	}
}

func (r *BaseRepository[T]) IsSortAllowed(column string) bool {
	_, ok := r.allowedSortColumns[column]
	return ok
}
