package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thereayou/colabnow/internal/apperrors"
)

func validRegistration(username, email string) RegisterInput {
	return RegisterInput{
		Username:  username,
		Email:     email,
		Major:     "CS",
		Password:  "password123",
		Password2: "password123",
	}
}

func TestRegisterIssuesWorkingToken(t *testing.T) {
	f := newFixture(t)

	res, err := f.auth.Register(f.ctx, validRegistration("alice", "alice@example.edu"))
	require.NoError(t, err)
	assert.Equal(t, "alice", res.User.Username)
	assert.NotEqual(t, "password123", res.User.PasswordHash)
	assert.NotEmpty(t, res.Token)

	userID, err := f.auth.Authenticate(f.ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, userID)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	f := newFixture(t)

	_, err := f.auth.Register(f.ctx, validRegistration("alice", "alice@example.edu"))
	require.NoError(t, err)

	_, err = f.auth.Register(f.ctx, validRegistration("alice", "other@example.edu"))
	assert.ErrorIs(t, err, apperrors.ErrUsernameTaken)

	exists, err := f.db.EmailExists(f.ctx, "other@example.edu")
	require.NoError(t, err)
	assert.False(t, exists, "rejected registration must not write")

	_, err = f.auth.Register(f.ctx, validRegistration("bob", "alice@example.edu"))
	assert.ErrorIs(t, err, apperrors.ErrEmailTaken)

	exists, err = f.db.UsernameExists(f.ctx, "bob")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t)

	in := validRegistration("alice", "not-an-email")
	in.Password2 = "different1"

	_, err := f.auth.Register(f.ctx, in)
	require.ErrorIs(t, err, apperrors.ErrValidation)

	details, ok := apperrors.From(err).Details.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "email", details["email"])
	assert.Equal(t, "eqfield=Password", details["password2"])

	exists, err := f.db.UsernameExists(f.ctx, "alice")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	_, err := f.auth.Register(f.ctx, validRegistration("alice", "alice@example.edu"))
	require.NoError(t, err)

	res, err := f.auth.Login(f.ctx, LoginInput{Email: "alice@example.edu", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "alice", res.User.Username)
	assert.True(t, res.ExpiresAt.After(res.User.CreatedAt))

	_, err = f.auth.Login(f.ctx, LoginInput{Email: "alice@example.edu", Password: "wrong-password"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = f.auth.Login(f.ctx, LoginInput{Email: "nobody@example.edu", Password: "password123"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogoutRevokesToken(t *testing.T) {
	f := newFixture(t)
	res, err := f.auth.Register(f.ctx, validRegistration("alice", "alice@example.edu"))
	require.NoError(t, err)

	require.NoError(t, f.auth.Logout(f.ctx, res.Token))

	_, err = f.auth.Authenticate(f.ctx, res.Token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	// новый вход выдаёт другой, рабочий токен
	again, err := f.auth.Login(f.ctx, LoginInput{Email: "alice@example.edu", Password: "password123"})
	require.NoError(t, err)
	assert.NotEqual(t, res.Token, again.Token)
	_, err = f.auth.Authenticate(f.ctx, again.Token)
	assert.NoError(t, err)
}

func TestAuthenticateRejectsGarbage(t *testing.T) {
	f := newFixture(t)
	_, err := f.auth.Authenticate(f.ctx, "not.a.token")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
