package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/colabnow/internal/models"
	"gorm.io/gorm"
)

func (d *Database) SaveMessage(ctx context.Context, message *models.Message) error {
	return d.db.WithContext(ctx).Omit("Sender", "Recipient").Create(message).Error
}

// NeverRead - точка отсчёта для пользователя, который ещё не открывал входящие
var NeverRead = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// CountUnreadMessages считает входящие новее last_message_read_at получателя.
// Время прочтения читается тем же запросом, а не берётся из загруженной ранее строки
func (d *Database) CountUnreadMessages(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("recipient_id = ?", recipientID).
		Where("created_at > COALESCE((SELECT users.last_message_read_at FROM users WHERE users.id = ?), ?)", recipientID, NeverRead).
		Count(&count).Error
	return count, err
}

// GetReceivedMessages возвращает входящие, новые первыми
func (d *Database) GetReceivedMessages(ctx context.Context, recipientID uuid.UUID, page Page) ([]models.Message, int64, error) {
	q := d.db.WithContext(ctx).Model(&models.Message{}).Where("recipient_id = ?", recipientID)

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var messages []models.Message
	err := q.
		Preload("Sender").
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.limit()).
		Find(&messages).Error
	if err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}
