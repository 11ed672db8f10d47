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
	"afisha/internal/validate"

	"github.com/pkg/errors"
)

// collaborationService implements the CollaborationUsecase interface.
type collaborationService struct {
	viewer      service.ViewerAccessor
	store       *cache.Store
	sess        *session.Store
	volatileTTL time.Duration
	logger      *slog.Logger
}

// NewCollaborationService is the constructor for collaborationService.
func NewCollaborationService(
	cfg *config.Config,
	viewer service.ViewerAccessor,
	store *cache.Store,
	sess *session.Store,
	logger *slog.Logger,
) usecase.CollaborationUsecase {
	return &collaborationService{
		viewer:      viewer,
		store:       store,
		sess:        sess,
		volatileTTL: cfg.Cache.VolatileTTL,
		logger:      logger,
	}
}

func (srv *collaborationService) Collaborations(ctx context.Context, filter service.CollaborationFilter) ([]*entity.Collaboration, error) {
	key := collaborationsKey(viewerID(srv.sess), filter)

	collaborations, err := cache.Query(ctx, srv.store, key, srv.volatileTTL, func(ctx context.Context) ([]*entity.Collaboration, error) {
		return srv.viewer.Collaborations(ctx, filter)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list collaborations")
	}

	return collaborations, nil
}

// Respond sends one response to a collaboration posting and drops the
// viewer's cached collaboration lists so the response flag and count
// refetch on next read.
func (srv *collaborationService) Respond(ctx context.Context, input *usecase.RespondInput) (*entity.Collaboration, error) {
	if !srv.sess.Authenticated() {
		return nil, errors.Wrap(domainerrors.ErrUnauthorized, "collaboration responses require a session")
	}
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	updated, err := srv.viewer.RespondToCollaboration(ctx, input.CollaborationID, input.Message)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to respond to collaboration %s", input.CollaborationID)
	}
	if !updated.HasResponded {
		srv.logger.Warn("backend did not record the response flag", "collaborationID", updated.ID)
	}

	srv.store.InvalidateResource(resourceCollabs)
	srv.logger.Debug("collaboration response sent",
		"collaborationID", updated.ID, "responseCount", updated.ResponseCount)

	return updated, nil
}
