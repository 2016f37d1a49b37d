package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thereayou/colabnow/internal/handlers/dto"
	"github.com/thereayou/colabnow/internal/middleware"
	"github.com/thereayou/colabnow/internal/services"
)

type MessageHandler struct {
	messages *services.MessageService
}

func NewMessageHandler(messages *services.MessageService) *MessageHandler {
	return &MessageHandler{messages: messages}
}

// Send отправляет личное сообщение пользователю из пути
func (h *MessageHandler) Send(c *gin.Context) {
	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	msg, err := h.messages.Send(c.Request.Context(), middleware.CurrentUserID(c), c.Param("username"), services.SendMessageInput{
		Body: req.Body,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":         msg.ID,
		"body":       msg.Body,
		"created_at": msg.CreatedAt,
		"recipient":  dto.NewUserInfo(msg.Recipient),
	})
}

// Inbox возвращает входящие и сбрасывает счётчик непрочитанных
func (h *MessageHandler) Inbox(c *gin.Context) {
	page, err := h.messages.Inbox(c.Request.Context(), middleware.CurrentUserID(c), pageParam(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPage(page, dto.NewMessageResponse))
}

func (h *MessageHandler) Unread(c *gin.Context) {
	count, err := h.messages.UnreadCount(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UnreadResponse{Count: count})
}
