package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/thereayou/colabnow/internal/models"
	"gorm.io/gorm/clause"
)

// GetOrCreateTags вставляет отсутствующие теги (конфликт по name игнорируется)
// и возвращает все запрошенные теги в порядке names
func (d *Database) GetOrCreateTags(ctx context.Context, names []string) ([]models.Tag, error) {
	if len(names) == 0 {
		return nil, nil
	}

	fresh := make([]models.Tag, len(names))
	for i, name := range names {
		fresh[i] = models.Tag{Name: name}
	}

	db := d.db.WithContext(ctx)
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&fresh).Error
	if err != nil {
		return nil, err
	}

	var stored []models.Tag
	if err := db.Where("name IN ?", names).Find(&stored).Error; err != nil {
		return nil, err
	}

	byName := make(map[string]models.Tag, len(stored))
	for _, t := range stored {
		byName[t.Name] = t
	}
	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		if t, ok := byName[name]; ok {
			tags = append(tags, t)
		}
	}
	return tags, nil
}

func (d *Database) FindTagByName(ctx context.Context, name string) (*models.Tag, error) {
	var tag models.Tag
	if err := d.db.WithContext(ctx).Where("name = ?", name).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// GetTagListingIDs возвращает posting list тега
func (d *Database) GetTagListingIDs(ctx context.Context, tagID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := d.db.WithContext(ctx).
		Model(&models.ListingTagLink{}).
		Where("tag_id = ?", tagID).
		Pluck("listing_id", &ids).Error
	return ids, err
}

func (d *Database) LinkListingTags(ctx context.Context, listingID uuid.UUID, tags []models.Tag) error {
	if len(tags) == 0 {
		return nil
	}
	links := make([]models.ListingTagLink, len(tags))
	for i, t := range tags {
		links[i] = models.ListingTagLink{ListingID: listingID, TagID: t.ID}
	}
	return d.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error
}
