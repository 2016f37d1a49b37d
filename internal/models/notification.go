package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const NotificationUnreadMessageCount = "unread_message_count"

// Notification хранит последний payload для пары (user, name)
type Notification struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name      string         `gorm:"size:128;not null;index"`
	Timestamp float64        `gorm:"index"`
	Payload   datatypes.JSON `json:"payload"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

// UnixTimestamp переводит время в unix-секунды с дробной частью
func UnixTimestamp(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}
