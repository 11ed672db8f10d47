package api

import (
	"context"

	"afisha/internal/domain/entity"
	"afisha/internal/domain/service"
)

type catalogAccessor struct {
	client *Client
}

// NewCatalogAccessor creates the accessor for public catalog resources.
func NewCatalogAccessor(client *Client) service.CatalogAccessor {
	return &catalogAccessor{client: client}
}

func (a *catalogAccessor) Cities(ctx context.Context) ([]*entity.City, error) {
	var cities []*entity.City
	if err := a.client.get(ctx, "/cities", nil, nil, &cities); err != nil {
		return nil, err
	}

	return cities, nil
}

func (a *catalogAccessor) CityBySlug(ctx context.Context, slug string) (*entity.City, error) {
	var city entity.City
	if err := a.client.get(ctx, "/cities/{slug}", nil, map[string]string{"slug": slug}, &city); err != nil {
		return nil, err
	}

	return &city, nil
}

func (a *catalogAccessor) Events(ctx context.Context, filter service.EventFilter) ([]*entity.Event, error) {
	query := map[string]string{}
	if filter.CitySlug != "" {
		query["cityId"] = filter.CitySlug
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Featured {
		query["featured"] = "true"
	}

	var events []*entity.Event
	if err := a.client.get(ctx, "/events", query, nil, &events); err != nil {
		return nil, err
	}

	return events, nil
}

func (a *catalogAccessor) EventByID(ctx context.Context, id string) (*entity.Event, error) {
	var event entity.Event
	if err := a.client.get(ctx, "/events/{id}", nil, map[string]string{"id": id}, &event); err != nil {
		return nil, err
	}

	return &event, nil
}

func (a *catalogAccessor) Businesses(ctx context.Context, filter service.BusinessFilter) ([]*entity.Business, error) {
	query := map[string]string{}
	if filter.CitySlug != "" {
		query["cityId"] = filter.CitySlug
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}

	var businesses []*entity.Business
	if err := a.client.get(ctx, "/businesses", query, nil, &businesses); err != nil {
		return nil, err
	}

	return businesses, nil
}

func (a *catalogAccessor) Promotions(ctx context.Context, filter service.PromotionFilter) ([]*entity.Promotion, error) {
	query := map[string]string{}
	if filter.CitySlug != "" {
		query["cityId"] = filter.CitySlug
	}
	if filter.ActiveOnly {
		query["active"] = "true"
	}

	var promotions []*entity.Promotion
	if err := a.client.get(ctx, "/promotions", query, nil, &promotions); err != nil {
		return nil, err
	}

	return promotions, nil
}
