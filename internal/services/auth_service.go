package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/colabnow/internal/apperrors"
	"github.com/thereayou/colabnow/internal/cache"
	"github.com/thereayou/colabnow/internal/database"
	"github.com/thereayou/colabnow/internal/logger"
	"github.com/thereayou/colabnow/internal/models"
	"github.com/thereayou/colabnow/pkg/auth"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Username  string `validate:"required,notblank,max=64"`
	Email     string `validate:"required,email,max=120"`
	Major     string `validate:"max=64"`
	Password  string `validate:"required,min=8,max=72"`
	Password2 string `validate:"required,eqfield=Password"`
}

type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type AuthResult struct {
	User      *models.User
	Token     string
	ExpiresAt time.Time
}

type AuthService struct {
	db        *database.Database
	jwt       *auth.JWTManager
	blacklist cache.TokenBlacklist
}

func NewAuthService(db *database.Database, jwtManager *auth.JWTManager, blacklist cache.TokenBlacklist) *AuthService {
	return &AuthService{db: db, jwt: jwtManager, blacklist: blacklist}
}

// Register создаёт пользователя и сразу выдаёт токен.
// Занятые username и email проверяются до записи.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	in.Major = strings.TrimSpace(in.Major)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	taken, err := s.db.UsernameExists(ctx, in.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if taken {
		return nil, apperrors.ErrUsernameTaken
	}
	taken, err = s.db.EmailExists(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, apperrors.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:     in.Username,
		Email:        in.Email,
		Major:        in.Major,
		PasswordHash: string(hash),
		LastSeenAt:   time.Now().UTC(),
	}
	if err := s.db.SaveUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.duplicateError(ctx, in.Username)
		}
		return nil, fmt.Errorf("save user: %w", err)
	}
	logger.Info("user registered", "user_id", user.ID)

	return s.issue(user)
}

// duplicateError определяет, какое уникальное поле заняли параллельно
func (s *AuthService) duplicateError(ctx context.Context, username string) error {
	if taken, err := s.db.UsernameExists(ctx, username); err == nil && taken {
		return apperrors.ErrUsernameTaken
	}
	return apperrors.ErrEmailTaken
}

// Login выдаёт JWT и обновляет last_seen
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	in.Email = strings.TrimSpace(in.Email)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	user, err := s.db.FindUserByEmail(ctx, in.Email)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := s.db.UpdateLastSeen(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("update last seen: %w", err)
	}

	return s.issue(user)
}

// Logout ставит токен в черный список до истечения
func (s *AuthService) Logout(ctx context.Context, token string) error {
	exp, err := s.jwt.Expiry(token)
	if err != nil {
		return apperrors.ErrUnauthorized
	}
	return s.blacklist.Add(ctx, token, time.Until(exp))
}

// Authenticate проверяет подпись, срок и черный список, возвращает id пользователя
func (s *AuthService) Authenticate(ctx context.Context, token string) (uuid.UUID, error) {
	revoked, err := s.blacklist.Contains(ctx, token)
	if err != nil {
		return uuid.Nil, fmt.Errorf("check blacklist: %w", err)
	}
	if revoked {
		return uuid.Nil, apperrors.ErrUnauthorized
	}

	userID, err := s.jwt.UserID(token)
	if err != nil {
		return uuid.Nil, apperrors.ErrUnauthorized
	}
	return userID, nil
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	token, err := s.jwt.Generate(user.ID)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	exp, err := s.jwt.Expiry(token)
	if err != nil {
		return nil, fmt.Errorf("read token expiry: %w", err)
	}
	return &AuthResult{User: user, Token: token, ExpiresAt: exp}, nil
}
