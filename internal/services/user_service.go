package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/thereayou/colabnow/internal/apperrors"
	"github.com/thereayou/colabnow/internal/database"
	"github.com/thereayou/colabnow/internal/models"
	"github.com/thereayou/colabnow/internal/tagfilter"
	"gorm.io/gorm"
)

// UpdateProfileInput - nil поля не меняются
type UpdateProfileInput struct {
	Username *string `validate:"omitempty,notblank,max=64"`
	AboutMe  *string `validate:"omitempty,max=140"`
	Major    *string `validate:"omitempty,max=64"`
}

type Profile struct {
	User     *models.User
	Tags     []string
	Listings PageResult[models.Listing]
}

type UserService struct {
	db      *database.Database
	perPage int
}

func NewUserService(db *database.Database, perPage int) *UserService {
	return &UserService{db: db, perPage: perPage}
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.db.GetUser(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (s *UserService) byUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.db.FindUserByUsername(ctx, username)
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// Profile возвращает пользователя и его объявления, новые первыми.
// rawTags сужает выборку фильтром по тегам.
func (s *UserService) Profile(ctx context.Context, username string, page int, rawTags string) (*Profile, error) {
	user, err := s.byUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	owned, err := s.db.ListOwnedListings(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list owned listings: %w", err)
	}

	required := tagfilter.Parse(rawTags)
	filtered := tagfilter.Filter(required, owned)

	return &Profile{
		User:     user,
		Tags:     required,
		Listings: paginate(filtered, pageOf(page, s.perPage)),
	}, nil
}

// Memberships - объявления, в которых пользователь участник
func (s *UserService) Memberships(ctx context.Context, username string) ([]models.Listing, error) {
	user, err := s.byUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	listings, err := s.db.ListMemberListings(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	if listings == nil {
		listings = []models.Listing{}
	}
	return listings, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, actorID uuid.UUID, in UpdateProfileInput) (*models.User, error) {
	if in.Username != nil {
		trimmed := strings.TrimSpace(*in.Username)
		in.Username = &trimmed
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}

	user, err := s.Get(ctx, actorID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if in.Username != nil && *in.Username != user.Username {
		taken, err := s.db.UsernameExists(ctx, *in.Username)
		if err != nil {
			return nil, fmt.Errorf("check username: %w", err)
		}
		if taken {
			return nil, apperrors.ErrUsernameTaken
		}
		fields["username"] = *in.Username
	}
	if in.AboutMe != nil {
		fields["about_me"] = *in.AboutMe
	}
	if in.Major != nil {
		fields["major"] = strings.TrimSpace(*in.Major)
	}

	if err := s.db.UpdateUserFields(ctx, actorID, fields); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrUsernameTaken
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return s.Get(ctx, actorID)
}

// Touch отмечает активность пользователя
func (s *UserService) Touch(ctx context.Context, actorID uuid.UUID) error {
	return s.db.UpdateLastSeen(ctx, actorID)
}
