package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/thereayou/colabnow/internal/handlers/dto"
	"github.com/thereayou/colabnow/internal/middleware"
	"github.com/thereayou/colabnow/internal/models"
	"github.com/thereayou/colabnow/internal/services"
)

type ListingHandler struct {
	listings *services.ListingService
}

func NewListingHandler(listings *services.ListingService) *ListingHandler {
	return &ListingHandler{listings: listings}
}

// List - лента объявлений. ?tags= фильтрует по тегам, ?q= по заголовку
func (h *ListingHandler) List(c *gin.Context) {
	var query dto.ListingQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}
	if query.Page == 0 {
		query.Page = 1
	}

	ctx := c.Request.Context()
	var (
		page services.PageResult[models.Listing]
		err  error
	)
	if query.Q != "" {
		page, err = h.listings.SearchByTitle(ctx, query.Q, query.Page)
	} else {
		page, err = h.listings.SearchByTags(ctx, query.Tags, query.Page)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPage(page, dto.NewListingResponse))
}

// Create создает объявление, владелец сразу становится участником
func (h *ListingHandler) Create(c *gin.Context) {
	var req dto.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	view, err := h.listings.Create(c.Request.Context(), middleware.CurrentUserID(c), services.CreateListingInput{
		Title:       req.Title,
		Body:        req.Body,
		Tags:        req.Tags,
		DesiredSize: req.DesiredSize,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewListingViewResponse(view))
}

func (h *ListingHandler) Get(c *gin.Context) {
	id, ok := listingIDParam(c)
	if !ok {
		return
	}
	view, err := h.listings.View(c.Request.Context(), middleware.CurrentUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListingViewResponse(view))
}

// Delete доступен только владельцу
func (h *ListingHandler) Delete(c *gin.Context) {
	id, ok := listingIDParam(c)
	if !ok {
		return
	}
	if err := h.listings.Delete(c.Request.Context(), middleware.CurrentUserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ListingHandler) Join(c *gin.Context) {
	h.mutate(c, h.listings.Join)
}

func (h *ListingHandler) Leave(c *gin.Context) {
	h.mutate(c, h.listings.Leave)
}

func (h *ListingHandler) Complete(c *gin.Context) {
	h.mutate(c, h.listings.Complete)
}

func (h *ListingHandler) AddInterest(c *gin.Context) {
	h.mutate(c, func(ctx context.Context, actorID, id uuid.UUID) (*services.ListingView, error) {
		return h.listings.SetInterest(ctx, actorID, id, true)
	})
}

func (h *ListingHandler) RemoveInterest(c *gin.Context) {
	h.mutate(c, func(ctx context.Context, actorID, id uuid.UUID) (*services.ListingView, error) {
		return h.listings.SetInterest(ctx, actorID, id, false)
	})
}

type listingAction func(ctx context.Context, actorID, id uuid.UUID) (*services.ListingView, error)

// mutate выполняет действие над объявлением и возвращает его новое состояние
func (h *ListingHandler) mutate(c *gin.Context, action listingAction) {
	id, ok := listingIDParam(c)
	if !ok {
		return
	}
	view, err := action(c.Request.Context(), middleware.CurrentUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListingViewResponse(view))
}
