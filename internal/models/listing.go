package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultDesiredSize = 2

type Listing struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title       string    `gorm:"size:64;not null"`
	Body        string    `gorm:"size:1024;not null"`
	DesiredSize int       `gorm:"default:2"`
	IsComplete  bool      `gorm:"default:false;index"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time `gorm:"index"`

	// Связи
	Owner      User   `gorm:"foreignKey:OwnerID"`
	Tags       []Tag  `gorm:"many2many:listing_tags"`
	Members    []User `gorm:"many2many:listing_members"`
	Interested []User `gorm:"many2many:listing_interested"`
}

func (l *Listing) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TagNames реализует tagfilter.Tagged
func (l Listing) TagNames() []string {
	names := make([]string, len(l.Tags))
	for i, t := range l.Tags {
		names[i] = t.Name
	}
	return names
}

func (l *Listing) HasMember(userID uuid.UUID) bool {
	for _, m := range l.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}

func (l *Listing) IsInterested(userID uuid.UUID) bool {
	for _, u := range l.Interested {
		if u.ID == userID {
			return true
		}
	}
	return false
}

// Join-модели. Добавление и удаление идут только через них,
// повторная вставка той же пары ничего не меняет.

type ListingTagLink struct {
	ListingID uuid.UUID `gorm:"type:uuid;primaryKey"`
	TagID     uuid.UUID `gorm:"type:uuid;primaryKey;index"`
}

func (ListingTagLink) TableName() string { return "listing_tags" }

type ListingMember struct {
	ListingID uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey;index"`
}

func (ListingMember) TableName() string { return "listing_members" }

type ListingInterest struct {
	ListingID uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey;index"`
}

func (ListingInterest) TableName() string { return "listing_interested" }
