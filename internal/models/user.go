package models

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username          string    `gorm:"size:64;uniqueIndex;not null"`
	Email             string    `gorm:"size:120;uniqueIndex;not null"`
	PasswordHash      string    `gorm:"size:128;not null"`
	Major             string    `gorm:"size:64;default:''"`
	AboutMe           string    `gorm:"size:140"`
	LastSeenAt        time.Time
	LastMessageReadAt *time.Time
	CreatedAt         time.Time
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// AvatarURL возвращает gravatar identicon по email пользователя
func (u *User) AvatarURL(size int) string {
	sum := md5.Sum([]byte(strings.ToLower(u.Email)))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?d=identicon&s=%d", hex.EncodeToString(sum[:]), size)
}
