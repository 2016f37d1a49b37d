package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/thereayou/colabnow/internal/models"
)

// ReplaceNotification удаляет прежние уведомления с этим именем и создаёт новое
func (d *Database) ReplaceNotification(ctx context.Context, n *models.Notification) error {
	return d.Transaction(ctx, func(tx *Database) error {
		db := tx.db.WithContext(ctx)
		if err := db.Where("user_id = ? AND name = ?", n.UserID, n.Name).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		return db.Create(n).Error
	})
}

// GetNotificationsSince - уведомления строго новее since, по возрастанию времени
func (d *Database) GetNotificationsSince(ctx context.Context, userID uuid.UUID, since float64) ([]models.Notification, error) {
	var notifications []models.Notification
	err := d.db.WithContext(ctx).
		Where("notifications.user_id = ? AND notifications.timestamp > ?", userID, since).
		Order("notifications.timestamp ASC").
		Find(&notifications).Error
	return notifications, err
}
