package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Message struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	SenderID    uuid.UUID `gorm:"type:uuid;not null;index"`
	RecipientID uuid.UUID `gorm:"type:uuid;not null;index"`
	Body        string    `gorm:"size:140;not null"`
	CreatedAt   time.Time `gorm:"index"`

	// Связи
	Sender    User `gorm:"foreignKey:SenderID"`
	Recipient User `gorm:"foreignKey:RecipientID"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
