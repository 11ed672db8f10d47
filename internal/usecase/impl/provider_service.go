package impl

import (
	"context"
	"log/slog"

	domainerrors "afisha/internal/domain/errors"
	"afisha/internal/domain/service"
	"afisha/internal/session"
	"afisha/internal/usecase"

	"github.com/pkg/errors"
)

// uploadService implements the UploadUsecase interface.
type uploadService struct {
	upload service.UploadAccessor
	sess   *session.Store
	logger *slog.Logger
}

// NewUploadService is the constructor for uploadService.
func NewUploadService(
	upload service.UploadAccessor,
	sess *session.Store,
	logger *slog.Logger,
) usecase.UploadUsecase {
	return &uploadService{
		upload: upload,
		sess:   sess,
		logger: logger,
	}
}

// UploadConfig fetches a folder-scoped signed upload configuration. A
// missing provider comes back as a configuration error; the caller shows
// the URL-entry fallback instead of a retry toast.
func (srv *uploadService) UploadConfig(ctx context.Context, folder string) (*service.UploadConfig, error) {
	if !srv.sess.Authenticated() {
		return nil, errors.Wrap(domainerrors.ErrUnauthorized, "uploads require a session")
	}

	cfg, err := srv.upload.Config(ctx, folder)
	if err != nil {
		if domainerrors.IsConfiguration(err) {
			srv.logger.Info("upload provider not configured, degraded path active")
		}

		return nil, errors.Wrap(err, "failed to get upload config")
	}

	return cfg, nil
}

// assistService implements the AssistUsecase interface.
type assistService struct {
	assist     service.AssistAccessor
	publishing usecase.PublishingUsecase
	sess       *session.Store
	logger     *slog.Logger
}

// NewAssistService is the constructor for assistService.
func NewAssistService(
	assist service.AssistAccessor,
	publishing usecase.PublishingUsecase,
	sess *session.Store,
	logger *slog.Logger,
) usecase.AssistUsecase {
	return &assistService{
		assist:     assist,
		publishing: publishing,
		sess:       sess,
		logger:     logger,
	}
}

// ImageIdeas generates image ideas for an event draft. The premium gate is
// enforced client-side first: a non-premium business is rejected before
// any generation request leaves the device.
func (srv *assistService) ImageIdeas(ctx context.Context, prompt string) ([]string, error) {
	business, err := srv.publishing.MyBusiness(ctx)
	if err != nil {
		return nil, err
	}
	if !business.Tier.AllowsAIAssist() {
		return nil, errors.Wrapf(domainerrors.ErrPremiumRequired, "tier %s", business.Tier)
	}

	ideas, err := srv.assist.ImageIdeas(ctx, prompt)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate image ideas")
	}

	return ideas, nil
}

// shareService implements the ShareUsecase interface.
type shareService struct {
	codes service.ShareCodeService
}

// NewShareService is the constructor for shareService.
func NewShareService(codes service.ShareCodeService) usecase.ShareUsecase {
	return &shareService{codes: codes}
}

func (srv *shareService) EventShareURL(eventID string) string {
	return srv.codes.EventShareURL(eventID)
}

func (srv *shareService) EventShareQR(eventID string) ([]byte, error) {
	png, err := srv.codes.EventShareQR(eventID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to render share code")
	}

	return png, nil
}
