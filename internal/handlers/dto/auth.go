package dto

import "time"

type RegisterRequest struct {
	Username  string `json:"username" binding:"required,notblank,max=64"`
	Email     string `json:"email" binding:"required,email,max=120"`
	Major     string `json:"major" binding:"max=64"`
	Password  string `json:"password" binding:"required,min=8,max=72"`
	Password2 string `json:"password2" binding:"required"`
}

type AuthResponse struct {
	Uid            string    `json:"uid"`
	Username       string    `json:"username"`
	Token          string    `json:"token"`
	TokenExpiresAt time.Time `json:"tokenExpiresAt"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
