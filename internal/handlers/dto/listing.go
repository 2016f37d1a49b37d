package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/thereayou/colabnow/internal/models"
	"github.com/thereayou/colabnow/internal/services"
	"github.com/thereayou/colabnow/internal/tagfilter"
)

type CreateListingRequest struct {
	Title       string `json:"title" binding:"required,notblank,max=64"`
	Body        string `json:"body" binding:"required,notblank,max=1024"`
	Tags        string `json:"tags" binding:"max=512,hashtags"`
	DesiredSize int    `json:"desired_size" binding:"omitempty,min=1,max=100"`
}

type ListingQuery struct {
	Page int    `form:"page" binding:"omitempty,min=1"`
	Tags string `form:"tags" binding:"max=512,hashtags"`
	Q    string `form:"q" binding:"max=64"`
}

type ListingResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Body        string     `json:"body"`
	DesiredSize int        `json:"desired_size"`
	IsComplete  bool       `json:"is_complete"`
	Owner       UserInfo   `json:"owner"`
	Tags        []string   `json:"tags"`
	TagLine     string     `json:"tag_line"`
	Members     []UserInfo `json:"members"`
	Interested  []UserInfo `json:"interested,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func NewListingResponse(l models.Listing) ListingResponse {
	tags := l.TagNames()
	return ListingResponse{
		ID:          l.ID,
		Title:       l.Title,
		Body:        l.Body,
		DesiredSize: l.DesiredSize,
		IsComplete:  l.IsComplete,
		Owner:       NewUserInfo(l.Owner),
		Tags:        tags,
		TagLine:     tagfilter.Format(tags),
		Members:     NewUserInfos(l.Members),
		Interested:  NewUserInfos(l.Interested),
		CreatedAt:   l.CreatedAt,
	}
}

type Permissions struct {
	IsOwner     bool `json:"is_owner"`
	IsMember    bool `json:"is_member"`
	CanJoin     bool `json:"can_join"`
	CanLeave    bool `json:"can_leave"`
	CanComplete bool `json:"can_complete"`
	CanDelete   bool `json:"can_delete"`
}

type ListingViewResponse struct {
	ListingResponse
	Permissions Permissions `json:"permissions"`
}

func NewListingViewResponse(v *services.ListingView) ListingViewResponse {
	return ListingViewResponse{
		ListingResponse: NewListingResponse(*v.Listing),
		Permissions: Permissions{
			IsOwner:     v.IsOwner,
			IsMember:    v.IsMember,
			CanJoin:     v.CanJoin,
			CanLeave:    v.CanLeave,
			CanComplete: v.CanComplete,
			CanDelete:   v.IsOwner,
		},
	}
}

func NewListingResponses(listings []models.Listing) []ListingResponse {
	out := make([]ListingResponse, len(listings))
	for i, l := range listings {
		out[i] = NewListingResponse(l)
	}
	return out
}
