package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thereayou/colabnow/internal/handlers/dto"
	"github.com/thereayou/colabnow/internal/middleware"
	"github.com/thereayou/colabnow/internal/services"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	res, err := h.auth.Register(c.Request.Context(), services.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Major:     req.Major,
		Password:  req.Password,
		Password2: req.Password2,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newAuthResponse(res))
}

// Login выдаёт JWT и обновляет last_seen
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	res, err := h.auth.Login(c.Request.Context(), services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newAuthResponse(res))
}

// Logout ставит токен в черный список до истечения
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context(), middleware.CurrentToken(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func newAuthResponse(res *services.AuthResult) dto.AuthResponse {
	return dto.AuthResponse{
		Uid:            res.User.ID.String(),
		Username:       res.User.Username,
		Token:          res.Token,
		TokenExpiresAt: res.ExpiresAt,
	}
}
