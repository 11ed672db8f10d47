package impl

import (
	"context"
	"testing"

	"afisha/internal/domain/entity"
	domainerrors "afisha/internal/domain/errors"
	"afisha/internal/domain/service"
	"afisha/internal/errors"
	"afisha/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommunityService_JoinPatchesCachedLists(t *testing.T) {
	sess := newTestSession(t)
	user := regularUser()
	signIn(t, sess, user)

	seed := []*entity.Community{
		{ID: "cm-1", Name: "Бегуны Алматы", CitySlug: "almaty", MembersCount: 120},
		{ID: "cm-2", Name: "Фотоклуб", CitySlug: "almaty", MembersCount: 45},
	}
	viewer := &fakeViewerAccessor{
		communities: seed,
		joined:      &entity.Community{ID: "cm-1", Name: "Бегуны Алматы", CitySlug: "almaty", MembersCount: 121, IsMember: true},
	}
	store := newTestCache()
	srv := NewCommunityService(testConfig(), viewer, store, sess, testLogger())

	filter := service.CommunityFilter{CitySlug: "almaty"}

	_, err := srv.Communities(context.Background(), filter)
	require.NoError(t, err)
	require.Equal(t, 1, viewer.communityCalls)

	joined, err := srv.Join(context.Background(), "cm-1")
	require.NoError(t, err)
	assert.True(t, joined.IsMember)

	// The cached list was patched in place, so the next read needs no
	// network call and shows the new membership.
	communities, err := srv.Communities(context.Background(), filter)
	require.NoError(t, err)
	require.Equal(t, 1, viewer.communityCalls)
	require.Len(t, communities, 2)
	assert.True(t, communities[0].IsMember)
	assert.Equal(t, 121, communities[0].MembersCount)
	assert.False(t, communities[1].IsMember)
}

func TestCommunityService_AnonymousJoinRejected(t *testing.T) {
	srv := NewCommunityService(testConfig(), &fakeViewerAccessor{}, newTestCache(), newTestSession(t), testLogger())

	_, err := srv.Join(context.Background(), "cm-1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))
}

func TestCollaborationService_RespondDropsCachedLists(t *testing.T) {
	sess := newTestSession(t)
	signIn(t, sess, businessUser())

	viewer := &fakeViewerAccessor{
		collabs: []*entity.Collaboration{{ID: "cl-1", Status: entity.CollabOpen, ResponseCount: 2}},
		responded: &entity.Collaboration{
			ID: "cl-1", Status: entity.CollabOpen, ResponseCount: 3, HasResponded: true,
		},
	}
	store := newTestCache()
	srv := NewCollaborationService(testConfig(), viewer, store, sess, testLogger())

	filter := service.CollaborationFilter{Status: entity.CollabOpen}

	_, err := srv.Collaborations(context.Background(), filter)
	require.NoError(t, err)

	updated, err := srv.Respond(context.Background(), &usecase.RespondInput{
		CollaborationID: "cl-1",
		Message:         "Готовы предоставить площадку и оборудование.",
	})
	require.NoError(t, err)
	assert.True(t, updated.HasResponded)
	assert.Equal(t, 3, updated.ResponseCount)

	_, ok, _ := store.Peek(collaborationsKey(viewerID(sess), filter), testConfig().Cache.VolatileTTL)
	assert.False(t, ok)
}

func TestCollaborationService_ShortMessageRejectedWithoutNetwork(t *testing.T) {
	sess := newTestSession(t)
	signIn(t, sess, businessUser())
	viewer := &fakeViewerAccessor{}

	srv := NewCollaborationService(testConfig(), viewer, newTestCache(), sess, testLogger())

	_, err := srv.Respond(context.Background(), &usecase.RespondInput{
		CollaborationID: "cl-1",
		Message:         "Ок",
	})
	require.Error(t, err)
	assert.True(t, domainerrors.IsValidation(err))
}
