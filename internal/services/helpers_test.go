package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/thereayou/colabnow/internal/cache"
	"github.com/thereayou/colabnow/internal/database"
	"github.com/thereayou/colabnow/internal/database/dbtest"
	"github.com/thereayou/colabnow/internal/models"
	"github.com/thereayou/colabnow/internal/websocket"
	"github.com/thereayou/colabnow/pkg/auth"
)

type published struct {
	UserID uuid.UUID
	Type   websocket.MessageType
	Data   interface{}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []published
}

func (p *recordingPublisher) Publish(userID uuid.UUID, msgType websocket.MessageType, data interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, published{UserID: userID, Type: msgType, Data: data})
	return nil
}

func (p *recordingPublisher) For(userID uuid.UUID) []published {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []published
	for _, e := range p.events {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out
}

type fixture struct {
	ctx           context.Context
	db            *database.Database
	auth          *AuthService
	users         *UserService
	listings      *ListingService
	messages      *MessageService
	notifications *NotificationService
	publisher     *recordingPublisher
}

const testPerPage = 3

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := dbtest.New(t)
	pub := &recordingPublisher{}
	notifications := NewNotificationService(db, pub)

	return &fixture{
		ctx:           context.Background(),
		db:            db,
		auth:          NewAuthService(db, auth.NewJWTManager("test-secret", time.Hour), cache.NewMemoryBlacklist()),
		users:         NewUserService(db, testPerPage),
		listings:      NewListingService(db, testPerPage),
		messages:      NewMessageService(db, notifications, testPerPage),
		notifications: notifications,
		publisher:     pub,
	}
}

// user создаёт пользователя напрямую, без bcrypt
func (f *fixture) user(t *testing.T, username string) *models.User {
	t.Helper()
	u := &models.User{
		Username:     username,
		Email:        username + "@example.edu",
		PasswordHash: "x",
	}
	require.NoError(t, f.db.SaveUser(f.ctx, u))
	return u
}

func (f *fixture) listing(t *testing.T, owner *models.User, title, tags string) *models.Listing {
	t.Helper()
	view, err := f.listings.Create(f.ctx, owner.ID, CreateListingInput{
		Title: title,
		Body:  "body of " + title,
		Tags:  tags,
	})
	require.NoError(t, err)
	return view.Listing
}

func titles(listings []models.Listing) []string {
	out := make([]string, len(listings))
	for i, l := range listings {
		out[i] = l.Title
	}
	return out
}

func usernames(users []models.User) []string {
	out := make([]string, len(users))
	for i, u := range users {
		out[i] = u.Username
	}
	return out
}
