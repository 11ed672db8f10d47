package impl

import (
	"context"
	"log/slog"
	"time"

	"afisha/config"
	"afisha/internal/cache"
	domainerrors "afisha/internal/domain/errors"
	"afisha/internal/domain/service"
	"afisha/internal/session"
	"afisha/internal/usecase"

	"github.com/pkg/errors"
)

// favoriteService implements the FavoriteUsecase interface.
type favoriteService struct {
	viewer      service.ViewerAccessor
	store       *cache.Store
	sess        *session.Store
	volatileTTL time.Duration
	logger      *slog.Logger
}

// NewFavoriteService is the constructor for favoriteService.
func NewFavoriteService(
	cfg *config.Config,
	viewer service.ViewerAccessor,
	store *cache.Store,
	sess *session.Store,
	logger *slog.Logger,
) usecase.FavoriteUsecase {
	return &favoriteService{
		viewer:      viewer,
		store:       store,
		sess:        sess,
		volatileTTL: cfg.Cache.VolatileTTL,
		logger:      logger,
	}
}

// IsFavorite answers the favorite probe. Anonymous viewers have no
// favorites, so the probe short-circuits without touching the network.
func (srv *favoriteService) IsFavorite(ctx context.Context, eventID string) (bool, error) {
	if !srv.sess.Authenticated() {
		return false, nil
	}

	viewer := viewerID(srv.sess)

	favorite, err := cache.Query(ctx, srv.store, favoriteKey(viewer, eventID), srv.volatileTTL, func(ctx context.Context) (bool, error) {
		return srv.viewer.CheckFavorite(ctx, eventID)
	})
	if err != nil {
		return false, errors.Wrapf(err, "failed to check favorite %s", eventID)
	}

	return favorite, nil
}

// Toggle flips the favorite bit with exactly one backend call, patches the
// cached probe entry and drops the cached event detail so its save count
// refetches.
func (srv *favoriteService) Toggle(ctx context.Context, eventID string) (bool, error) {
	if !srv.sess.Authenticated() {
		return false, errors.Wrap(domainerrors.ErrUnauthorized, "favorites require a session")
	}

	state, err := srv.viewer.ToggleFavorite(ctx, eventID)
	if err != nil {
		return false, errors.Wrapf(err, "failed to toggle favorite %s", eventID)
	}

	viewer := viewerID(srv.sess)
	srv.store.Put(favoriteKey(viewer, eventID), state)
	srv.store.Invalidate(eventKey(viewer, eventID))
	srv.logger.Debug("favorite toggled", "eventID", eventID, "favorite", state)

	return state, nil
}
