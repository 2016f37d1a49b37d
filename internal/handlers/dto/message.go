package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/colabnow/internal/models"
)

type SendMessageRequest struct {
	Body string `json:"body" binding:"required,notblank,max=140"`
}

// MessageResponse структура для исходящих сообщений
type MessageResponse struct {
	ID        uuid.UUID `json:"id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	Sender    UserInfo  `json:"sender"`
	Recipient *UserInfo `json:"recipient,omitempty"`
}

func NewMessageResponse(m models.Message) MessageResponse {
	resp := MessageResponse{
		ID:        m.ID,
		Body:      m.Body,
		CreatedAt: m.CreatedAt,
		Sender:    NewUserInfo(m.Sender),
	}
	if m.Recipient.ID != uuid.Nil {
		r := NewUserInfo(m.Recipient)
		resp.Recipient = &r
	}
	return resp
}

type UnreadResponse struct {
	Count int64 `json:"count"`
}
