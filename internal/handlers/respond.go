package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/thereayou/colabnow/internal/apperrors"
	"github.com/thereayou/colabnow/internal/logger"
	"github.com/thereayou/colabnow/internal/validation"
)

// respondError отдаёт AppError клиенту, внутренние ошибки логируются и скрываются
func respondError(c *gin.Context, err error) {
	appErr := apperrors.From(err)
	if appErr.HTTPCode >= 500 {
		logger.WithError(err).Error("request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
		)
	}
	c.AbortWithStatusJSON(appErr.HTTPCode, gin.H{"error": appErr})
}

// respondBindError - ошибка разбора тела или query
func respondBindError(c *gin.Context, err error) {
	respondError(c, apperrors.ValidationError(validation.Describe(err)))
}

func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func listingIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, apperrors.ErrListingNotFound)
		return uuid.Nil, false
	}
	return id, true
}
