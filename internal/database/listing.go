package database

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/thereayou/colabnow/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateListing сохраняет объявление без ассоциаций; теги и владельца
// добавляет вызывающий в той же транзакции
func (d *Database) CreateListing(ctx context.Context, listing *models.Listing) error {
	return d.db.WithContext(ctx).Omit(clause.Associations).Create(listing).Error
}

func (d *Database) GetListing(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	var listing models.Listing
	err := d.db.WithContext(ctx).
		Preload("Owner").
		Preload("Tags", orderByName).
		Preload("Members", orderByUsername).
		Preload("Interested", orderByUsername).
		First(&listing, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

// ListOpenListings - лента по умолчанию: незавершённые, новые первыми
func (d *Database) ListOpenListings(ctx context.Context, page Page) ([]models.Listing, int64, error) {
	q := d.db.WithContext(ctx).Model(&models.Listing{}).Where("listings.is_complete = ?", false)
	return d.paginateListings(q, page)
}

// ListOpenListingsWithTags пересекает posting lists запрошенных тегов:
// остаются объявления, у которых есть все names
func (d *Database) ListOpenListingsWithTags(ctx context.Context, names []string, page Page) ([]models.Listing, int64, error) {
	db := d.db.WithContext(ctx)

	matching := db.Model(&models.ListingTagLink{}).
		Select("listing_tags.listing_id").
		Joins("JOIN tags ON tags.id = listing_tags.tag_id").
		Where("tags.name IN ?", names).
		Group("listing_tags.listing_id").
		Having("COUNT(DISTINCT listing_tags.tag_id) = ?", len(names))

	q := db.Model(&models.Listing{}).
		Where("listings.is_complete = ?", false).
		Where("listings.id IN (?)", matching)
	return d.paginateListings(q, page)
}

// SearchListingsByTitle ищет подстроку в заголовке с учётом collation хранилища
func (d *Database) SearchListingsByTitle(ctx context.Context, substr string, page Page) ([]models.Listing, int64, error) {
	pattern := "%" + escapeLike(substr) + "%"
	q := d.db.WithContext(ctx).Model(&models.Listing{}).Where("listings.title LIKE ? ESCAPE '\\'", pattern)
	return d.paginateListings(q, page)
}

// ListOwnedListings возвращает все объявления пользователя, включая завершённые
func (d *Database) ListOwnedListings(ctx context.Context, ownerID uuid.UUID) ([]models.Listing, error) {
	var listings []models.Listing
	err := d.db.WithContext(ctx).
		Preload("Owner").
		Preload("Tags", orderByName).
		Where("owner_id = ?", ownerID).
		Order("listings.created_at DESC").
		Find(&listings).Error
	return listings, err
}

func (d *Database) ListMemberListings(ctx context.Context, userID uuid.UUID) ([]models.Listing, error) {
	var listings []models.Listing
	err := d.db.WithContext(ctx).
		Preload("Owner").
		Preload("Tags", orderByName).
		Joins("JOIN listing_members ON listing_members.listing_id = listings.id").
		Where("listing_members.user_id = ?", userID).
		Order("listings.created_at DESC").
		Find(&listings).Error
	return listings, err
}

func (d *Database) SetListingComplete(ctx context.Context, id uuid.UUID) error {
	return d.db.WithContext(ctx).Model(&models.Listing{}).Where("id = ?", id).Update("is_complete", true).Error
}

// DeleteListing отвязывает теги, участников и заинтересованных, затем удаляет запись.
// Сами теги остаются.
func (d *Database) DeleteListing(ctx context.Context, id uuid.UUID) error {
	return d.Transaction(ctx, func(tx *Database) error {
		db := tx.db.WithContext(ctx)
		if err := db.Where("listing_id = ?", id).Delete(&models.ListingTagLink{}).Error; err != nil {
			return err
		}
		if err := db.Where("listing_id = ?", id).Delete(&models.ListingMember{}).Error; err != nil {
			return err
		}
		if err := db.Where("listing_id = ?", id).Delete(&models.ListingInterest{}).Error; err != nil {
			return err
		}
		res := db.Where("id = ?", id).Delete(&models.Listing{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (d *Database) AddMember(ctx context.Context, listingID, userID uuid.UUID) error {
	return d.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.ListingMember{ListingID: listingID, UserID: userID}).Error
}

func (d *Database) RemoveMember(ctx context.Context, listingID, userID uuid.UUID) error {
	return d.db.WithContext(ctx).
		Where("listing_id = ? AND user_id = ?", listingID, userID).
		Delete(&models.ListingMember{}).Error
}

func (d *Database) AddInterest(ctx context.Context, listingID, userID uuid.UUID) error {
	return d.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.ListingInterest{ListingID: listingID, UserID: userID}).Error
}

func (d *Database) RemoveInterest(ctx context.Context, listingID, userID uuid.UUID) error {
	return d.db.WithContext(ctx).
		Where("listing_id = ? AND user_id = ?", listingID, userID).
		Delete(&models.ListingInterest{}).Error
}

func (d *Database) paginateListings(q *gorm.DB, page Page) ([]models.Listing, int64, error) {
	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var listings []models.Listing
	err := q.
		Preload("Owner").
		Preload("Tags", orderByName).
		Preload("Members", orderByUsername).
		Order("listings.created_at DESC").
		Offset(page.Offset()).
		Limit(page.limit()).
		Find(&listings).Error
	if err != nil {
		return nil, 0, err
	}
	return listings, total, nil
}

func orderByName(db *gorm.DB) *gorm.DB {
	return db.Order("tags.name ASC")
}

func orderByUsername(db *gorm.DB) *gorm.DB {
	return db.Order("users.username ASC")
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
