package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/thereayou/colabnow/internal/handlers/dto"
	"github.com/thereayou/colabnow/internal/middleware"
	"github.com/thereayou/colabnow/internal/services"
	"github.com/thereayou/colabnow/internal/tagfilter"
)

type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// GetMe возвращает информацию о текущем пользователе
func (h *UserHandler) GetMe(c *gin.Context) {
	user, err := h.users.Get(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewMeResponse(user))
}

// UpdateMe обновляет только переданные поля
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), middleware.CurrentUserID(c), services.UpdateProfileInput{
		Username: req.Username,
		AboutMe:  req.AboutMe,
		Major:    req.Major,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewMeResponse(user))
}

// GetProfile - профиль и объявления пользователя, ?tags= сужает список
func (h *UserHandler) GetProfile(c *gin.Context) {
	profile, err := h.users.Profile(c.Request.Context(), c.Param("username"), pageParam(c), c.Query("tags"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ProfileResponse{
		User:     dto.NewUserResponse(profile.User),
		Tags:     tagfilter.Format(profile.Tags),
		Listings: dto.NewPage(profile.Listings, dto.NewListingResponse),
	})
}

func (h *UserHandler) GetMemberships(c *gin.Context) {
	listings, err := h.users.Memberships(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": dto.NewListingResponses(listings)})
}
