package impl

import (
	"context"
	"log/slog"
	"time"

	"afisha/config"
	"afisha/internal/cache"
	"afisha/internal/domain/entity"
	domainerrors "afisha/internal/domain/errors"
	"afisha/internal/domain/service"
	"afisha/internal/session"
	"afisha/internal/usecase"

	"github.com/pkg/errors"
)

// communityService implements the CommunityUsecase interface.
type communityService struct {
	viewer      service.ViewerAccessor
	store       *cache.Store
	sess        *session.Store
	volatileTTL time.Duration
	logger      *slog.Logger
}

// NewCommunityService is the constructor for communityService.
func NewCommunityService(
	cfg *config.Config,
	viewer service.ViewerAccessor,
	store *cache.Store,
	sess *session.Store,
	logger *slog.Logger,
) usecase.CommunityUsecase {
	return &communityService{
		viewer:      viewer,
		store:       store,
		sess:        sess,
		volatileTTL: cfg.Cache.VolatileTTL,
		logger:      logger,
	}
}

func (srv *communityService) Communities(ctx context.Context, filter service.CommunityFilter) ([]*entity.Community, error) {
	key := communitiesKey(viewerID(srv.sess), filter)

	communities, err := cache.Query(ctx, srv.store, key, srv.volatileTTL, func(ctx context.Context) ([]*entity.Community, error) {
		return srv.viewer.Communities(ctx, filter)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list communities")
	}

	return communities, nil
}

// Join adds the viewer to a community, then patches every cached list that
// contains it so the membership flag and count update without a refetch.
func (srv *communityService) Join(ctx context.Context, communityID string) (*entity.Community, error) {
	return srv.mutateMembership(ctx, communityID, srv.viewer.JoinCommunity)
}

// Leave removes the viewer from a community.
func (srv *communityService) Leave(ctx context.Context, communityID string) (*entity.Community, error) {
	return srv.mutateMembership(ctx, communityID, srv.viewer.LeaveCommunity)
}

func (srv *communityService) mutateMembership(
	ctx context.Context,
	communityID string,
	call func(ctx context.Context, communityID string) (*entity.Community, error),
) (*entity.Community, error) {
	if !srv.sess.Authenticated() {
		return nil, errors.Wrap(domainerrors.ErrUnauthorized, "community membership requires a session")
	}

	updated, err := call(ctx, communityID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to change membership in community %s", communityID)
	}

	srv.patchLists(updated)
	srv.logger.Debug("community membership changed",
		"communityID", communityID, "isMember", updated.IsMember, "membersCount", updated.MembersCount)

	return updated, nil
}

// patchLists rewrites the mutated community inside the viewer's cached
// lists. Lists not containing it are left untouched.
func (srv *communityService) patchLists(updated *entity.Community) {
	viewer := viewerID(srv.sess)

	for _, filter := range []service.CommunityFilter{{}, {CitySlug: updated.CitySlug}} {
		key := communitiesKey(viewer, filter)

		cached, ok, _ := srv.store.Peek(key, srv.volatileTTL)
		if !ok {
			continue
		}
		communities, ok := cached.([]*entity.Community)
		if !ok {
			continue
		}

		patched := make([]*entity.Community, len(communities))
		found := false
		for i, community := range communities {
			if community.ID == updated.ID {
				patched[i] = updated
				found = true
			} else {
				patched[i] = community
			}
		}
		if found {
			srv.store.Put(key, patched)
		}
	}
}
