package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/thereayou/colabnow/internal/apperrors"
	"github.com/thereayou/colabnow/internal/logger"
	"github.com/thereayou/colabnow/pkg/auth"
)

const (
	UserIDKey = "userID"
	TokenKey  = "token"
)

// Authenticator проверяет токен и возвращает id пользователя
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (uuid.UUID, error)
}

// AuthMiddleware проверяет JWT токен
func AuthMiddleware(authenticator Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractTokenFromHeader(c.Request)
		if err != nil {
			abort(c, apperrors.ErrUnauthorized)
			return
		}
		authenticate(c, authenticator, token)
	}
}

// WSAuthMiddleware специальный middleware для WebSocket: браузер не может
// передать заголовок, поэтому токен берётся из query
func WSAuthMiddleware(authenticator Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader != "" {
				parts := strings.SplitN(authHeader, " ", 2)
				if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
					token = parts[1]
				}
			}
		}

		if token == "" {
			abort(c, apperrors.ErrUnauthorized)
			return
		}
		authenticate(c, authenticator, token)
	}
}

func authenticate(c *gin.Context, authenticator Authenticator, token string) {
	userID, err := authenticator.Authenticate(c.Request.Context(), token)
	if err != nil {
		abort(c, err)
		return
	}

	c.Set(UserIDKey, userID)
	c.Set(TokenKey, token)
	c.Next()
}

// CurrentUserID возвращает id, сохранённый AuthMiddleware
func CurrentUserID(c *gin.Context) uuid.UUID {
	return c.MustGet(UserIDKey).(uuid.UUID)
}

// CurrentToken возвращает проверенный токен запроса
func CurrentToken(c *gin.Context) string {
	return c.GetString(TokenKey)
}

// Toucher обновляет время последней активности
type Toucher interface {
	Touch(ctx context.Context, userID uuid.UUID) error
}

// LastSeen отмечает активность пользователя на каждом авторизованном запросе
func LastSeen(toucher Toucher) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, ok := c.Get(UserIDKey); ok {
			if err := toucher.Touch(c.Request.Context(), userID.(uuid.UUID)); err != nil {
				logger.Warn("failed to update last seen", "user_id", userID, "error", err)
			}
		}
		c.Next()
	}
}

func abort(c *gin.Context, err error) {
	appErr := apperrors.From(err)
	if appErr.HTTPCode >= 500 {
		logger.Error("authentication failed", "error", err)
	}
	c.AbortWithStatusJSON(appErr.HTTPCode, gin.H{"error": appErr})
}
