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

// publishingService implements the PublishingUsecase interface.
type publishingService struct {
	publishing  service.PublishingAccessor
	store       *cache.Store
	sess        *session.Store
	volatileTTL time.Duration
	logger      *slog.Logger
}

// NewPublishingService is the constructor for publishingService.
func NewPublishingService(
	cfg *config.Config,
	publishing service.PublishingAccessor,
	store *cache.Store,
	sess *session.Store,
	logger *slog.Logger,
) usecase.PublishingUsecase {
	return &publishingService{
		publishing:  publishing,
		store:       store,
		sess:        sess,
		volatileTTL: cfg.Cache.VolatileTTL,
		logger:      logger,
	}
}

// MyBusiness serves the owner's business profile through the cache.
func (srv *publishingService) MyBusiness(ctx context.Context) (*entity.Business, error) {
	if err := srv.requireBusiness(); err != nil {
		return nil, err
	}

	key := myBusinessKey(viewerID(srv.sess))

	business, err := cache.Query(ctx, srv.store, key, srv.volatileTTL, srv.publishing.MyBusiness)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get business profile")
	}

	return business, nil
}

// CreateEvent publishes a new event. The payload is validated and the
// tier quota checked before any network call; the created event starts in
// pending moderation, so public lists are left alone until it is approved.
func (srv *publishingService) CreateEvent(ctx context.Context, input *usecase.PublishEventInput) (*entity.Event, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	business, err := srv.MyBusiness(ctx)
	if err != nil {
		return nil, err
	}
	if business.QuotaRemaining() <= 0 {
		return nil, errors.Wrapf(domainerrors.ErrQuotaExceeded,
			"tier %s allows %d posts per month", business.Tier, business.Tier.PostQuota())
	}

	event, err := srv.publishing.CreateEvent(ctx, eventDraft(input))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create event")
	}

	srv.store.Invalidate(myBusinessKey(viewerID(srv.sess)))
	srv.logger.Info("event created", "eventID", event.ID, "status", event.Status)

	return event, nil
}

// UpdateEvent edits an existing event and drops its cached copies.
func (srv *publishingService) UpdateEvent(ctx context.Context, eventID string, input *usecase.PublishEventInput) (*entity.Event, error) {
	if err := srv.requireBusiness(); err != nil {
		return nil, err
	}
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	event, err := srv.publishing.UpdateEvent(ctx, eventID, eventDraft(input))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update event %s", eventID)
	}

	srv.invalidateEventCaches()
	srv.logger.Info("event updated", "eventID", event.ID)

	return event, nil
}

// DeleteEvent removes an event and drops the cached catalog entries that
// may still list it.
func (srv *publishingService) DeleteEvent(ctx context.Context, eventID string) error {
	if err := srv.requireBusiness(); err != nil {
		return err
	}

	if err := srv.publishing.DeleteEvent(ctx, eventID); err != nil {
		return errors.Wrapf(err, "failed to delete event %s", eventID)
	}

	srv.invalidateEventCaches()
	srv.store.Invalidate(myBusinessKey(viewerID(srv.sess)))
	srv.logger.Info("event deleted", "eventID", eventID)

	return nil
}

// CreatePromotion publishes a promotion and drops the cached promotion
// lists so it appears on next read.
func (srv *publishingService) CreatePromotion(ctx context.Context, input *usecase.PublishPromotionInput) (*entity.Promotion, error) {
	if err := srv.requireBusiness(); err != nil {
		return nil, err
	}
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	promotion, err := srv.publishing.CreatePromotion(ctx, service.PromotionDraft{
		Title:      input.Title,
		Discount:   input.Discount,
		Conditions: input.Conditions,
		ValidUntil: input.ValidUntil,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create promotion")
	}

	srv.store.InvalidateResource(resourcePromotions)
	srv.logger.Info("promotion created", "promotionID", promotion.ID)

	return promotion, nil
}

func (srv *publishingService) requireBusiness() error {
	if !srv.sess.Authenticated() {
		return errors.Wrap(domainerrors.ErrUnauthorized, "publishing requires a session")
	}
	if !srv.sess.Role().CanPublish() {
		return errors.Wrap(domainerrors.ErrBusinessRequired, "publishing requires a business account")
	}

	return nil
}

func (srv *publishingService) invalidateEventCaches() {
	srv.store.InvalidateResource(resourceEvents)
	srv.store.InvalidateResource(resourceEvent)
}

func eventDraft(input *usecase.PublishEventInput) service.EventDraft {
	return service.EventDraft{
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Image:       input.Image,
		Date:        input.Date,
		Time:        input.Time,
		Location:    input.Location,
		Address:     input.Address,
		CitySlug:    input.CitySlug,
		Price:       input.Price,
		MaxPrice:    input.MaxPrice,
		Tags:        input.Tags,
	}
}
