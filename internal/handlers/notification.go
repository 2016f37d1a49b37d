package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/thereayou/colabnow/internal/apperrors"
	"github.com/thereayou/colabnow/internal/middleware"
	"github.com/thereayou/colabnow/internal/services"
)

type NotificationHandler struct {
	notifications *services.NotificationService
}

func NewNotificationHandler(notifications *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// Poll отдаёт уведомления новее ?since= по возрастанию времени
func (h *NotificationHandler) Poll(c *gin.Context) {
	since := 0.0
	if raw := c.Query("since"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			respondError(c, apperrors.ValidationError(map[string]string{"since": "float"}))
			return
		}
		since = parsed
	}

	events, err := h.notifications.Since(c.Request.Context(), middleware.CurrentUserID(c), since)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}
