package impl

import (
	"context"
	"testing"

	domainerrors "afisha/internal/domain/errors"
	"afisha/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoriteService_AnonymousProbeMakesNoNetworkCall(t *testing.T) {
	sess := newTestSession(t)
	viewer := &fakeViewerAccessor{favorite: true}

	srv := NewFavoriteService(testConfig(), viewer, newTestCache(), sess, testLogger())

	favorite, err := srv.IsFavorite(context.Background(), "e-1")
	require.NoError(t, err)
	assert.False(t, favorite)
	assert.Zero(t, viewer.checkCalls)
}

func TestFavoriteService_AnonymousToggleRejectedWithoutNetwork(t *testing.T) {
	sess := newTestSession(t)
	viewer := &fakeViewerAccessor{}

	srv := NewFavoriteService(testConfig(), viewer, newTestCache(), sess, testLogger())

	_, err := srv.Toggle(context.Background(), "e-1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))
	assert.Zero(t, viewer.toggleCalls)
}

func TestFavoriteService_ProbeIsCachedPerViewer(t *testing.T) {
	sess := newTestSession(t)
	signIn(t, sess, regularUser())
	viewer := &fakeViewerAccessor{favorite: true}

	srv := NewFavoriteService(testConfig(), viewer, newTestCache(), sess, testLogger())

	for range 3 {
		favorite, err := srv.IsFavorite(context.Background(), "e-1")
		require.NoError(t, err)
		assert.True(t, favorite)
	}
	assert.Equal(t, 1, viewer.checkCalls)
}

func TestFavoriteService_DoubleToggleMakesExactlyTwoCalls(t *testing.T) {
	sess := newTestSession(t)
	signIn(t, sess, regularUser())
	viewer := &fakeViewerAccessor{favorite: false}

	srv := NewFavoriteService(testConfig(), viewer, newTestCache(), sess, testLogger())

	first, err := srv.Toggle(context.Background(), "e-1")
	require.NoError(t, err)
	assert.True(t, first)

	second, err := srv.Toggle(context.Background(), "e-1")
	require.NoError(t, err)
	assert.False(t, second)

	assert.Equal(t, 2, viewer.toggleCalls)
}

func TestFavoriteService_TogglePatchesProbeEntry(t *testing.T) {
	sess := newTestSession(t)
	signIn(t, sess, regularUser())
	viewer := &fakeViewerAccessor{favorite: false}

	srv := NewFavoriteService(testConfig(), viewer, newTestCache(), sess, testLogger())

	state, err := srv.Toggle(context.Background(), "e-1")
	require.NoError(t, err)
	require.True(t, state)

	// The probe after a toggle is served from the patched entry.
	favorite, err := srv.IsFavorite(context.Background(), "e-1")
	require.NoError(t, err)
	assert.True(t, favorite)
	assert.Zero(t, viewer.checkCalls)
}
