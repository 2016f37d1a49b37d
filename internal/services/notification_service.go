package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/colabnow/internal/database"
	"github.com/thereayou/colabnow/internal/logger"
	"github.com/thereayou/colabnow/internal/models"
	"github.com/thereayou/colabnow/internal/websocket"
	"gorm.io/datatypes"
)

// NotificationEvent - уведомление в том виде, в котором его получает клиент
type NotificationEvent struct {
	Name      string          `json:"name"`
	Data      json.RawMessage `json:"data"`
	Timestamp float64         `json:"timestamp"`
}

func NewNotificationEvent(n models.Notification) NotificationEvent {
	data := json.RawMessage(n.Payload)
	if len(data) == 0 {
		data = json.RawMessage("null")
	}
	return NotificationEvent{Name: n.Name, Data: data, Timestamp: n.Timestamp}
}

type NotificationService struct {
	db        *database.Database
	publisher Publisher
}

func NewNotificationService(db *database.Database, publisher Publisher) *NotificationService {
	return &NotificationService{db: db, publisher: publisher}
}

// Since возвращает уведомления строго новее since по возрастанию времени
func (s *NotificationService) Since(ctx context.Context, actorID uuid.UUID, since float64) ([]NotificationEvent, error) {
	notifications, err := s.db.GetNotificationsSince(ctx, actorID, since)
	if err != nil {
		return nil, fmt.Errorf("get notifications: %w", err)
	}
	events := make([]NotificationEvent, len(notifications))
	for i, n := range notifications {
		events[i] = NewNotificationEvent(n)
	}
	return events, nil
}

func (s *NotificationService) push(n models.Notification) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(n.UserID, websocket.TypeNotification, NewNotificationEvent(n)); err != nil {
		logger.WithError(err).Warn("notification push failed", "user_id", n.UserID, "name", n.Name)
	}
}

// replaceNotification работает на переданной базе, чтобы её можно было вызвать внутри транзакции
func replaceNotification(ctx context.Context, db *database.Database, userID uuid.UUID, name string, data interface{}) (*models.Notification, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode notification payload: %w", err)
	}
	n := &models.Notification{
		UserID:    userID,
		Name:      name,
		Timestamp: models.UnixTimestamp(time.Now()),
		Payload:   datatypes.JSON(payload),
	}
	if err := db.ReplaceNotification(ctx, n); err != nil {
		return nil, fmt.Errorf("replace notification: %w", err)
	}
	return n, nil
}
