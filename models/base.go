package models

import (
	"time"

	"kartvizit.link/auth"

	"gorm.io/gorm"
)

// BaseModel tüm tablolarda ortak olan alanları içerir. CreatedBy/UpdatedBy
// değerleri context'teki principal'dan hook'larla doldurulur.
type BaseModel struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	CreatedBy uint           `gorm:"index" json:"-"`
	UpdatedBy uint           `json:"-"`
	DeletedBy *uint          `json:"-"`
}

func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if p, ok := auth.FromContext(tx.Statement.Context); ok {
		b.CreatedBy = p.UserID
		b.UpdatedBy = p.UserID
	}
	return nil
}

func (b *BaseModel) BeforeUpdate(tx *gorm.DB) error {
	if p, ok := auth.FromContext(tx.Statement.Context); ok {
		b.UpdatedBy = p.UserID
	}
	return nil
}
