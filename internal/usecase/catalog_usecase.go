// Package usecase contains the application-facing operations of the SDK.
// Query operations read through the cache; mutation operations call the
// backend once and patch or invalidate the affected cache entries.
package usecase

import (
	"context"

	"afisha/internal/domain/entity"
	"afisha/internal/domain/service"
)

// CatalogUsecase serves the catalog screens through the cached query layer.
// Reads inside the freshness window cost zero network calls; stale reads
// return instantly and revalidate in the background.
type CatalogUsecase interface {
	Cities(ctx context.Context) ([]*entity.City, error)
	CityBySlug(ctx context.Context, slug string) (*entity.City, error)
	Events(ctx context.Context, filter service.EventFilter) ([]*entity.Event, error)
	// RefreshEvents bypasses the freshness window for pull-to-refresh.
	RefreshEvents(ctx context.Context, filter service.EventFilter) ([]*entity.Event, error)
	EventByID(ctx context.Context, id string) (*entity.Event, error)
	Businesses(ctx context.Context, filter service.BusinessFilter) ([]*entity.Business, error)
	Promotions(ctx context.Context, filter service.PromotionFilter) ([]*entity.Promotion, error)
	// SubscribeEvents notifies when the cached event list for filter
	// changes (revalidation landed, mutation patched, invalidation).
	SubscribeEvents(filter service.EventFilter) (<-chan struct{}, func())
}
