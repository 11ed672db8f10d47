package impl

import (
	"context"
	"log/slog"
	"time"

	"afisha/config"
	"afisha/internal/cache"
	"afisha/internal/domain/entity"
	"afisha/internal/domain/service"
	"afisha/internal/session"
	"afisha/internal/usecase"

	"github.com/pkg/errors"
)

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	catalog      service.CatalogAccessor
	store        *cache.Store
	sess         *session.Store
	referenceTTL time.Duration
	volatileTTL  time.Duration
	logger       *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(
	cfg *config.Config,
	catalog service.CatalogAccessor,
	store *cache.Store,
	sess *session.Store,
	logger *slog.Logger,
) usecase.CatalogUsecase {
	return &catalogService{
		catalog:      catalog,
		store:        store,
		sess:         sess,
		referenceTTL: cfg.Cache.ReferenceTTL,
		volatileTTL:  cfg.Cache.VolatileTTL,
		logger:       logger,
	}
}

// Cities serves the city list. Cities change rarely, so they get the long
// reference freshness window.
func (srv *catalogService) Cities(ctx context.Context) ([]*entity.City, error) {
	cities, err := cache.Query(ctx, srv.store, citiesKey(), srv.referenceTTL, srv.catalog.Cities)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list cities")
	}

	return cities, nil
}

func (srv *catalogService) CityBySlug(ctx context.Context, slug string) (*entity.City, error) {
	city, err := cache.Query(ctx, srv.store, cityKey(slug), srv.referenceTTL, func(ctx context.Context) (*entity.City, error) {
		return srv.catalog.CityBySlug(ctx, slug)
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get city %s", slug)
	}

	return city, nil
}

// Events serves a filtered event list. The key embeds the viewer because
// each event carries a viewer-scoped favorite flag.
func (srv *catalogService) Events(ctx context.Context, filter service.EventFilter) ([]*entity.Event, error) {
	key := eventsKey(viewerID(srv.sess), filter)

	events, err := cache.Query(ctx, srv.store, key, srv.volatileTTL, func(ctx context.Context) ([]*entity.Event, error) {
		return srv.catalog.Events(ctx, filter)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list events")
	}

	return events, nil
}

// RefreshEvents serves pull-to-refresh: it always hits the backend and
// replaces the cached list.
func (srv *catalogService) RefreshEvents(ctx context.Context, filter service.EventFilter) ([]*entity.Event, error) {
	key := eventsKey(viewerID(srv.sess), filter)

	events, err := cache.QueryRefresh(ctx, srv.store, key, func(ctx context.Context) ([]*entity.Event, error) {
		return srv.catalog.Events(ctx, filter)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to refresh events")
	}

	return events, nil
}

func (srv *catalogService) EventByID(ctx context.Context, id string) (*entity.Event, error) {
	key := eventKey(viewerID(srv.sess), id)

	event, err := cache.Query(ctx, srv.store, key, srv.volatileTTL, func(ctx context.Context) (*entity.Event, error) {
		return srv.catalog.EventByID(ctx, id)
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get event %s", id)
	}

	return event, nil
}

func (srv *catalogService) Businesses(ctx context.Context, filter service.BusinessFilter) ([]*entity.Business, error) {
	businesses, err := cache.Query(ctx, srv.store, businessesKey(filter), srv.volatileTTL, func(ctx context.Context) ([]*entity.Business, error) {
		return srv.catalog.Businesses(ctx, filter)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list businesses")
	}

	return businesses, nil
}

func (srv *catalogService) Promotions(ctx context.Context, filter service.PromotionFilter) ([]*entity.Promotion, error) {
	promotions, err := cache.Query(ctx, srv.store, promotionsKey(filter), srv.volatileTTL, func(ctx context.Context) ([]*entity.Promotion, error) {
		return srv.catalog.Promotions(ctx, filter)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list promotions")
	}

	return promotions, nil
}

func (srv *catalogService) SubscribeEvents(filter service.EventFilter) (<-chan struct{}, func()) {
	return srv.store.Subscribe(eventsKey(viewerID(srv.sess), filter))
}
