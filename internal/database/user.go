package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/colabnow/internal/models"
)

func (d *Database) SaveUser(ctx context.Context, user *models.User) error {
	return d.db.WithContext(ctx).Create(user).Error
}

// UpdateUserFields пишет только переданные колонки, остальные не трогает
func (d *Database) UpdateUserFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return d.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(fields).Error
}

func (d *Database) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user := models.User{}
	if err := d.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *Database) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := models.User{}
	if err := d.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *Database) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user := models.User{}
	if err := d.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *Database) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

func (d *Database) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (d *Database) UpdateLastSeen(ctx context.Context, id uuid.UUID) error {
	return d.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("last_seen_at", time.Now().UTC()).Error
}

func (d *Database) SetLastMessageReadAt(ctx context.Context, id uuid.UUID, at time.Time) error {
	return d.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("last_message_read_at", at).Error
}
