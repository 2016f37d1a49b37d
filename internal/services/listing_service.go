package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/thereayou/colabnow/internal/apperrors"
	"github.com/thereayou/colabnow/internal/database"
	"github.com/thereayou/colabnow/internal/logger"
	"github.com/thereayou/colabnow/internal/models"
	"github.com/thereayou/colabnow/internal/tagfilter"
)

// совпадает с размером колонки tags.name
const maxTagLength = 64

type CreateListingInput struct {
	Title       string `validate:"required,notblank,max=64"`
	Body        string `validate:"required,notblank,max=1024"`
	Tags        string `validate:"max=512,hashtags"`
	DesiredSize int    `validate:"omitempty,min=1,max=100"`
}

// ListingView - объявление и то, что текущий пользователь может с ним сделать
type ListingView struct {
	Listing     *models.Listing
	IsOwner     bool
	IsMember    bool
	CanJoin     bool
	CanLeave    bool
	CanComplete bool
}

type ListingService struct {
	db      *database.Database
	perPage int
}

func NewListingService(db *database.Database, perPage int) *ListingService {
	return &ListingService{db: db, perPage: perPage}
}

// Create сохраняет объявление, его теги и членство владельца в одной транзакции
func (s *ListingService) Create(ctx context.Context, actorID uuid.UUID, in CreateListingInput) (*ListingView, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Body = strings.TrimSpace(in.Body)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if in.DesiredSize == 0 {
		in.DesiredSize = models.DefaultDesiredSize
	}

	names := tagfilter.Parse(in.Tags)
	for _, name := range names {
		if utf8.RuneCountInString(name) > maxTagLength {
			return nil, apperrors.ValidationError(map[string]string{"tags": fmt.Sprintf("max=%d", maxTagLength)})
		}
	}

	listing := &models.Listing{
		Title:       in.Title,
		Body:        in.Body,
		DesiredSize: in.DesiredSize,
		OwnerID:     actorID,
	}

	err := s.db.Transaction(ctx, func(tx *database.Database) error {
		if err := tx.CreateListing(ctx, listing); err != nil {
			return err
		}
		tags, err := tx.GetOrCreateTags(ctx, names)
		if err != nil {
			return err
		}
		if err := tx.LinkListingTags(ctx, listing.ID, tags); err != nil {
			return err
		}
		return tx.AddMember(ctx, listing.ID, actorID)
	})
	if err != nil {
		return nil, fmt.Errorf("create listing: %w", err)
	}
	logger.With("listing_id", listing.ID, "owner_id", actorID).Info("listing created", "tags", len(names))

	return s.View(ctx, actorID, listing.ID)
}

// Browse - незавершённые объявления, новые первыми
func (s *ListingService) Browse(ctx context.Context, page int) (PageResult[models.Listing], error) {
	p := pageOf(page, s.perPage)
	listings, total, err := s.db.ListOpenListings(ctx, p)
	if err != nil {
		return PageResult[models.Listing]{}, fmt.Errorf("browse listings: %w", err)
	}
	return newPageResult(listings, p, total), nil
}

// SearchByTags оставляет объявления со всеми тегами из raw.
// Пустой фильтр равносилен Browse.
func (s *ListingService) SearchByTags(ctx context.Context, raw string, page int) (PageResult[models.Listing], error) {
	names := tagfilter.Parse(raw)
	if len(names) == 0 {
		return s.Browse(ctx, page)
	}

	p := pageOf(page, s.perPage)
	listings, total, err := s.db.ListOpenListingsWithTags(ctx, names, p)
	if err != nil {
		return PageResult[models.Listing]{}, fmt.Errorf("search listings by tags: %w", err)
	}
	return newPageResult(listings, p, total), nil
}

func (s *ListingService) SearchByTitle(ctx context.Context, q string, page int) (PageResult[models.Listing], error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return s.Browse(ctx, page)
	}

	p := pageOf(page, s.perPage)
	listings, total, err := s.db.SearchListingsByTitle(ctx, q, p)
	if err != nil {
		return PageResult[models.Listing]{}, fmt.Errorf("search listings by title: %w", err)
	}
	return newPageResult(listings, p, total), nil
}

func (s *ListingService) get(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	listing, err := s.db.GetListing(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrListingNotFound
		}
		return nil, fmt.Errorf("get listing: %w", err)
	}
	return listing, nil
}

func (s *ListingService) View(ctx context.Context, actorID, id uuid.UUID) (*ListingView, error) {
	listing, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return newListingView(listing, actorID), nil
}

func newListingView(listing *models.Listing, actorID uuid.UUID) *ListingView {
	v := &ListingView{
		Listing:  listing,
		IsOwner:  listing.OwnerID == actorID,
		IsMember: listing.HasMember(actorID),
	}
	v.CanJoin = !v.IsOwner && !v.IsMember
	v.CanLeave = v.IsMember && !v.IsOwner
	v.CanComplete = v.IsOwner && !listing.IsComplete
	return v
}

// ownedBy загружает объявление и проверяет, что actorID - его владелец
func (s *ListingService) ownedBy(ctx context.Context, actorID, id uuid.UUID) (*models.Listing, error) {
	listing, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing.OwnerID != actorID {
		return nil, apperrors.ErrNotListingOwner
	}
	return listing, nil
}

// Complete помечает объявление завершённым; повторный вызов ничего не меняет
func (s *ListingService) Complete(ctx context.Context, actorID, id uuid.UUID) (*ListingView, error) {
	listing, err := s.ownedBy(ctx, actorID, id)
	if err != nil {
		return nil, err
	}
	if !listing.IsComplete {
		if err := s.db.SetListingComplete(ctx, id); err != nil {
			return nil, fmt.Errorf("complete listing: %w", err)
		}
		listing.IsComplete = true
	}
	return newListingView(listing, actorID), nil
}

// Delete удаляет объявление вместе со связями; теги остаются
func (s *ListingService) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	if _, err := s.ownedBy(ctx, actorID, id); err != nil {
		return err
	}
	if err := s.db.DeleteListing(ctx, id); err != nil {
		if isNotFound(err) {
			return apperrors.ErrListingNotFound
		}
		return fmt.Errorf("delete listing: %w", err)
	}
	logger.With("listing_id", id, "owner_id", actorID).Info("listing deleted")
	return nil
}

// Join добавляет участника. Владелец и участники уже в составе, для них это no-op.
func (s *ListingService) Join(ctx context.Context, actorID, id uuid.UUID) (*ListingView, error) {
	listing, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing.OwnerID == actorID || listing.HasMember(actorID) {
		return newListingView(listing, actorID), nil
	}
	if err := s.db.AddMember(ctx, id, actorID); err != nil {
		return nil, fmt.Errorf("join listing: %w", err)
	}
	return s.View(ctx, actorID, id)
}

// Leave убирает участника; владелец покинуть объявление не может
func (s *ListingService) Leave(ctx context.Context, actorID, id uuid.UUID) (*ListingView, error) {
	listing, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing.OwnerID == actorID {
		return nil, apperrors.ErrOwnerCannotLeave
	}
	if !listing.HasMember(actorID) {
		return newListingView(listing, actorID), nil
	}
	if err := s.db.RemoveMember(ctx, id, actorID); err != nil {
		return nil, fmt.Errorf("leave listing: %w", err)
	}
	return s.View(ctx, actorID, id)
}

func (s *ListingService) SetInterest(ctx context.Context, actorID, id uuid.UUID, interested bool) (*ListingView, error) {
	listing, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing.IsInterested(actorID) == interested {
		return newListingView(listing, actorID), nil
	}

	if interested {
		err = s.db.AddInterest(ctx, id, actorID)
	} else {
		err = s.db.RemoveInterest(ctx, id, actorID)
	}
	if err != nil {
		return nil, fmt.Errorf("set interest: %w", err)
	}
	return s.View(ctx, actorID, id)
}
