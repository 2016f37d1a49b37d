package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/thereayou/colabnow/internal/apperrors"
)

type stubAuthenticator struct {
	tokens map[string]uuid.UUID
	err    error
}

func (s stubAuthenticator) Authenticate(_ context.Context, token string) (uuid.UUID, error) {
	if s.err != nil {
		return uuid.Nil, s.err
	}
	id, ok := s.tokens[token]
	if !ok {
		return uuid.Nil, apperrors.ErrUnauthorized
	}
	return id, nil
}

type countingToucher struct {
	touched []uuid.UUID
}

func (t *countingToucher) Touch(_ context.Context, id uuid.UUID) error {
	t.touched = append(t.touched, id)
	return nil
}

func newRouter(a Authenticator, toucher Toucher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthMiddleware(a), LastSeen(toucher), func(c *gin.Context) {
		c.String(http.StatusOK, CurrentUserID(c).String())
	})
	r.GET("/ws", WSAuthMiddleware(a), func(c *gin.Context) {
		c.String(http.StatusOK, CurrentUserID(c).String())
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	userID := uuid.New()
	toucher := &countingToucher{}
	r := newRouter(stubAuthenticator{tokens: map[string]uuid.UUID{"good": userID}}, toucher)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good", http.StatusUnauthorized},
		{"unknown token", "Bearer bad", http.StatusUnauthorized},
		{"valid token", "Bearer good", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, userID.String(), w.Body.String())
			} else {
				assert.Contains(t, w.Body.String(), string(apperrors.CodeUnauthorized))
			}
		})
	}

	assert.Equal(t, []uuid.UUID{userID}, toucher.touched)
}

func TestWSAuthMiddlewareReadsQuery(t *testing.T) {
	userID := uuid.New()
	r := newRouter(stubAuthenticator{tokens: map[string]uuid.UUID{"good": userID}}, &countingToucher{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ws?token=good", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID.String(), w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ws", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareStoreFailure(t *testing.T) {
	r := newRouter(stubAuthenticator{err: errors.New("redis down")}, &countingToucher{})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer good")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "redis down")
}
