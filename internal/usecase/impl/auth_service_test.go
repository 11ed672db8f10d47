package impl

import (
	"context"
	"testing"

	"afisha/internal/domain/entity"
	domainerrors "afisha/internal/domain/errors"
	"afisha/internal/errors"
	"afisha/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loginInput(email, password string) *usecase.LoginInput {
	return &usecase.LoginInput{Email: email, Password: password}
}

func TestAuthService_LoginEstablishesSessionAndSeedsCache(t *testing.T) {
	sess := newTestSession(t)
	store := newTestCache()
	user := regularUser()
	auth := &fakeAuthAccessor{session: &entity.Session{Token: "opaque-token", User: user}}

	srv := NewAuthService(auth, store, sess, testLogger())

	got, err := srv.Login(context.Background(), loginInput("aida@example.kz", "secret123"))
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	assert.True(t, sess.Authenticated())
	assert.Equal(t, "opaque-token", sess.Token())

	cached, ok, fresh := store.Peek(currentUserKey(user.ID), testConfig().Cache.VolatileTTL)
	require.True(t, ok)
	assert.True(t, fresh)
	assert.Equal(t, user, cached)
}

func TestAuthService_RejectedLoginLeavesSessionUntouched(t *testing.T) {
	sess := newTestSession(t)
	store := newTestCache()
	auth := &fakeAuthAccessor{err: domainerrors.ErrInvalidCredentials}

	srv := NewAuthService(auth, store, sess, testLogger())

	_, err := srv.Login(context.Background(), loginInput("aida@example.kz", "wrongpass"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))

	assert.False(t, sess.Authenticated())
	assert.Empty(t, sess.Token())
}

func TestAuthService_InvalidPayloadNeverReachesBackend(t *testing.T) {
	sess := newTestSession(t)
	auth := &fakeAuthAccessor{}

	srv := NewAuthService(auth, newTestCache(), sess, testLogger())

	_, err := srv.Login(context.Background(), loginInput("not-an-email", "secret123"))
	require.Error(t, err)
	assert.True(t, domainerrors.IsValidation(err))
	assert.Zero(t, auth.calls)
}

func TestAuthService_LogoutClearsSessionAndCache(t *testing.T) {
	sess := newTestSession(t)
	store := newTestCache()
	user := regularUser()
	signIn(t, sess, user)
	store.Put(currentUserKey(user.ID), user)
	store.Put(favoriteKey(user.ID, "e-1"), true)

	srv := NewAuthService(&fakeAuthAccessor{}, store, sess, testLogger())

	require.NoError(t, srv.Logout(context.Background()))

	assert.False(t, sess.Authenticated())
	_, ok, _ := store.Peek(favoriteKey(user.ID, "e-1"), testConfig().Cache.VolatileTTL)
	assert.False(t, ok)
	_, ok, _ = store.Peek(currentUserKey(user.ID), testConfig().Cache.VolatileTTL)
	assert.False(t, ok)
}

func TestAuthService_HandleAuthFailureDropsRejectedSession(t *testing.T) {
	sess := newTestSession(t)
	store := newTestCache()
	user := regularUser()
	signIn(t, sess, user)
	store.Put(currentUserKey(user.ID), user)

	srv := NewAuthService(&fakeAuthAccessor{}, store, sess, testLogger())

	assert.False(t, srv.HandleAuthFailure(nil))
	assert.False(t, srv.HandleAuthFailure(domainerrors.ErrNotFound))
	assert.True(t, sess.Authenticated())

	assert.True(t, srv.HandleAuthFailure(domainerrors.ErrUnauthorized))
	assert.False(t, sess.Authenticated())

	_, ok, _ := store.Peek(currentUserKey(user.ID), testConfig().Cache.VolatileTTL)
	assert.False(t, ok)

	// Already anonymous: nothing left to drop.
	assert.False(t, srv.HandleAuthFailure(domainerrors.ErrUnauthorized))
}
