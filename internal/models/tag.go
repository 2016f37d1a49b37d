package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tag - нормализованная метка в нижнем регистре, общая для объявлений
type Tag struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"size:64;uniqueIndex;not null"`
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
