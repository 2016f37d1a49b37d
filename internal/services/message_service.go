package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/colabnow/internal/apperrors"
	"github.com/thereayou/colabnow/internal/database"
	"github.com/thereayou/colabnow/internal/models"
)

type SendMessageInput struct {
	Body string `validate:"required,notblank,max=140"`
}

type MessageService struct {
	db            *database.Database
	notifications *NotificationService
	perPage       int
}

func NewMessageService(db *database.Database, notifications *NotificationService, perPage int) *MessageService {
	return &MessageService{db: db, notifications: notifications, perPage: perPage}
}

// Send сохраняет сообщение и обновляет счётчик непрочитанных получателя в одной транзакции
func (s *MessageService) Send(ctx context.Context, senderID uuid.UUID, recipientUsername string, in SendMessageInput) (*models.Message, error) {
	in.Body = strings.TrimSpace(in.Body)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	recipient, err := s.db.FindUserByUsername(ctx, recipientUsername)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find recipient: %w", err)
	}

	message := &models.Message{
		SenderID:    senderID,
		RecipientID: recipient.ID,
		Body:        in.Body,
	}

	var n *models.Notification
	err = s.db.Transaction(ctx, func(tx *database.Database) error {
		if err := tx.SaveMessage(ctx, message); err != nil {
			return err
		}
		count, err := tx.CountUnreadMessages(ctx, recipient.ID)
		if err != nil {
			return err
		}
		n, err = replaceNotification(ctx, tx, recipient.ID, models.NotificationUnreadMessageCount, count)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}

	s.notifications.push(*n)
	message.Recipient = *recipient
	return message, nil
}

// Inbox отмечает входящие прочитанными и возвращает их, новые первыми
func (s *MessageService) Inbox(ctx context.Context, actorID uuid.UUID, page int) (PageResult[models.Message], error) {
	var n *models.Notification
	err := s.db.Transaction(ctx, func(tx *database.Database) error {
		if err := tx.SetLastMessageReadAt(ctx, actorID, time.Now().UTC()); err != nil {
			return err
		}
		var err error
		n, err = replaceNotification(ctx, tx, actorID, models.NotificationUnreadMessageCount, 0)
		return err
	})
	if err != nil {
		return PageResult[models.Message]{}, fmt.Errorf("mark messages read: %w", err)
	}
	s.notifications.push(*n)

	p := pageOf(page, s.perPage)
	messages, total, err := s.db.GetReceivedMessages(ctx, actorID, p)
	if err != nil {
		return PageResult[models.Message]{}, fmt.Errorf("get messages: %w", err)
	}
	return newPageResult(messages, p, total), nil
}

func (s *MessageService) UnreadCount(ctx context.Context, actorID uuid.UUID) (int64, error) {
	if _, err := s.db.GetUser(ctx, actorID); err != nil {
		if isNotFound(err) {
			return 0, apperrors.ErrUserNotFound
		}
		return 0, fmt.Errorf("get user: %w", err)
	}
	count, err := s.db.CountUnreadMessages(ctx, actorID)
	if err != nil {
		return 0, fmt.Errorf("count unread: %w", err)
	}
	return count, nil
}
