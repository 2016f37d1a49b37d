package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/colabnow/internal/models"
)

const (
	avatarSmall = 36
	avatarLarge = 128
)

type UserInfo struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	AvatarURL string    `json:"avatar_url,omitempty"`
}

func NewUserInfo(u models.User) UserInfo {
	return UserInfo{ID: u.ID, Username: u.Username, AvatarURL: u.AvatarURL(avatarSmall)}
}

func NewUserInfos(users []models.User) []UserInfo {
	out := make([]UserInfo, len(users))
	for i, u := range users {
		out[i] = NewUserInfo(u)
	}
	return out
}

type UserResponse struct {
	ID         uuid.UUID `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email,omitempty"`
	Major      string    `json:"major"`
	AboutMe    string    `json:"about_me"`
	AvatarURL  string    `json:"avatar_url"`
	LastSeenAt time.Time `json:"last_seen_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewUserResponse - публичный профиль, email не раскрывается
func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		Major:      u.Major,
		AboutMe:    u.AboutMe,
		AvatarURL:  u.AvatarURL(avatarLarge),
		LastSeenAt: u.LastSeenAt,
		CreatedAt:  u.CreatedAt,
	}
}

func NewMeResponse(u *models.User) UserResponse {
	resp := NewUserResponse(u)
	resp.Email = u.Email
	return resp
}

// UpdateProfileRequest - отсутствующие поля не меняются
type UpdateProfileRequest struct {
	Username *string `json:"username" binding:"omitempty,notblank,max=64"`
	AboutMe  *string `json:"about_me" binding:"omitempty,max=140"`
	Major    *string `json:"major" binding:"omitempty,max=64"`
}

type ProfileResponse struct {
	User     UserResponse          `json:"user"`
	Tags     string                `json:"tags"`
	Listings Page[ListingResponse] `json:"listings"`
}
