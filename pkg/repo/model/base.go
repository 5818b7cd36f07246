package model

import (
	"time"

	"gorm.io/gorm"

	"github.com/scienceol/osfarm/pkg/common/uuid"
)

type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (b *BaseModel) BeforeCreate(*gorm.DB) error {
	if b.ID.IsNil() {
		b.ID = uuid.NewV7()
	}
	now := time.Now().UTC()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
	return nil
}

func (b *BaseModel) BeforeUpdate(*gorm.DB) error {
	b.UpdatedAt = time.Now().UTC()
	return nil
}

func (b BaseModel) GetID() uuid.UUID {
	return b.ID
}
