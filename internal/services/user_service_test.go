package services

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thereayou/colabnow/internal/apperrors"
)

func strPtr(s string) *string { return &s }

func TestProfileFiltersOwnListingsByTags(t *testing.T) {
	f := newFixture(t)
	alice, bob := f.user(t, "alice"), f.user(t, "bob")
	f.listing(t, alice, "Web scraper", "#python #web")
	f.listing(t, alice, "Classifier", "#python #ml")
	f.listing(t, bob, "Not mine", "#python")

	profile, err := f.users.Profile(f.ctx, "alice", 1, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Classifier", "Web scraper"}, titles(profile.Listings.Items))

	profile, err = f.users.Profile(f.ctx, "alice", 1, "#ML")
	require.NoError(t, err)
	assert.Equal(t, []string{"ml"}, profile.Tags)
	assert.Equal(t, []string{"Classifier"}, titles(profile.Listings.Items))

	_, err = f.users.Profile(f.ctx, "nobody", 1, "")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestProfilePagination(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")
	for _, title := range []string{"one", "two", "three", "four"} {
		f.listing(t, alice, title, "")
	}

	profile, err := f.users.Profile(f.ctx, "alice", 2, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"one"}, titles(profile.Listings.Items))
	assert.EqualValues(t, 4, profile.Listings.Total)

	profile, err = f.users.Profile(f.ctx, "alice", 9, "")
	require.NoError(t, err)
	assert.Empty(t, profile.Listings.Items)
}

func TestProfileHugePageNumber(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")
	f.listing(t, alice, "one", "")

	var profile *Profile
	require.NotPanics(t, func() {
		var err error
		profile, err = f.users.Profile(f.ctx, "alice", math.MaxInt/testPerPage+2, "")
		require.NoError(t, err)
	})
	assert.Empty(t, profile.Listings.Items)
	assert.EqualValues(t, 1, profile.Listings.Total)
	assert.False(t, profile.Listings.HasNext())
}

func TestMemberships(t *testing.T) {
	f := newFixture(t)
	alice, bob := f.user(t, "alice"), f.user(t, "bob")
	l := f.listing(t, alice, "Robot", "")
	f.listing(t, alice, "Drone", "")

	_, err := f.listings.Join(f.ctx, bob.ID, l.ID)
	require.NoError(t, err)

	listings, err := f.users.Memberships(f.ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, []string{"Robot"}, titles(listings))

	listings, err = f.users.Memberships(f.ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, listings, 2)
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")
	f.user(t, "bob")

	user, err := f.users.UpdateProfile(f.ctx, alice.ID, UpdateProfileInput{
		AboutMe: strPtr("Sophomore, likes robots"),
		Major:   strPtr("EE"),
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "Sophomore, likes robots", user.AboutMe)
	assert.Equal(t, "EE", user.Major)

	_, err = f.users.UpdateProfile(f.ctx, alice.ID, UpdateProfileInput{Username: strPtr("bob")})
	assert.ErrorIs(t, err, apperrors.ErrUsernameTaken)

	_, err = f.users.UpdateProfile(f.ctx, alice.ID, UpdateProfileInput{AboutMe: strPtr(strings.Repeat("a", 141))})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	user, err = f.users.UpdateProfile(f.ctx, alice.ID, UpdateProfileInput{Username: strPtr(" alicia ")})
	require.NoError(t, err)
	assert.Equal(t, "alicia", user.Username)

	_, err = f.users.Profile(f.ctx, "alice", 1, "")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestUpdateProfileKeepsReadMarker(t *testing.T) {
	f := newFixture(t)
	alice, bob := f.user(t, "alice"), f.user(t, "bob")

	_, err := f.messages.Send(f.ctx, alice.ID, "bob", SendMessageInput{Body: "hi"})
	require.NoError(t, err)
	_, err = f.messages.Inbox(f.ctx, bob.ID, 1)
	require.NoError(t, err)
	require.NoError(t, f.users.Touch(f.ctx, bob.ID))

	before, err := f.users.Get(f.ctx, bob.ID)
	require.NoError(t, err)
	require.NotNil(t, before.LastMessageReadAt)

	user, err := f.users.UpdateProfile(f.ctx, bob.ID, UpdateProfileInput{AboutMe: strPtr("busy")})
	require.NoError(t, err)
	assert.Equal(t, "busy", user.AboutMe)
	require.NotNil(t, user.LastMessageReadAt)
	assert.True(t, before.LastMessageReadAt.Equal(*user.LastMessageReadAt))
	assert.True(t, before.LastSeenAt.Equal(user.LastSeenAt))

	count, err := f.messages.UnreadCount(f.ctx, bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

func TestTouchUpdatesLastSeen(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")

	require.NoError(t, f.users.Touch(f.ctx, alice.ID))

	user, err := f.users.Get(f.ctx, alice.ID)
	require.NoError(t, err)
	assert.False(t, user.LastSeenAt.IsZero())
}
