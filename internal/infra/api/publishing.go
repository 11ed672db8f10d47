package api

import (
	"context"

	"afisha/internal/domain/entity"
	"afisha/internal/domain/service"
)

type publishingAccessor struct {
	client *Client
}

// NewPublishingAccessor creates the accessor for the business dashboard.
func NewPublishingAccessor(client *Client) service.PublishingAccessor {
	return &publishingAccessor{client: client}
}

type eventDraftRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Image       string   `json:"image,omitempty"`
	Date        string   `json:"date"`
	Time        string   `json:"time"`
	Location    string   `json:"location"`
	Address     string   `json:"address,omitempty"`
	CitySlug    string   `json:"cityId"`
	Price       *float64 `json:"price,omitempty"`
	MaxPrice    *float64 `json:"maxPrice,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

func eventDraftBody(draft service.EventDraft) eventDraftRequest {
	return eventDraftRequest{
		Title:       draft.Title,
		Description: draft.Description,
		Category:    draft.Category,
		Image:       draft.Image,
		Date:        draft.Date,
		Time:        draft.Time,
		Location:    draft.Location,
		Address:     draft.Address,
		CitySlug:    draft.CitySlug,
		Price:       draft.Price,
		MaxPrice:    draft.MaxPrice,
		Tags:        draft.Tags,
	}
}

type promotionDraftRequest struct {
	Title      string `json:"title"`
	Discount   string `json:"discount"`
	Conditions string `json:"conditions,omitempty"`
	ValidUntil string `json:"validUntil"`
}

func (a *publishingAccessor) MyBusiness(ctx context.Context) (*entity.Business, error) {
	var business entity.Business
	if err := a.client.get(ctx, "/business/me", nil, nil, &business); err != nil {
		return nil, err
	}

	return &business, nil
}

func (a *publishingAccessor) CreateEvent(ctx context.Context, draft service.EventDraft) (*entity.Event, error) {
	var event entity.Event
	if err := a.client.post(ctx, "/business/events", eventDraftBody(draft), nil, &event); err != nil {
		return nil, err
	}

	return &event, nil
}

func (a *publishingAccessor) UpdateEvent(ctx context.Context, eventID string, draft service.EventDraft) (*entity.Event, error) {
	var event entity.Event
	params := map[string]string{"id": eventID}
	if err := a.client.put(ctx, "/business/events/{id}", eventDraftBody(draft), params, &event); err != nil {
		return nil, err
	}

	return &event, nil
}

func (a *publishingAccessor) DeleteEvent(ctx context.Context, eventID string) error {
	return a.client.delete(ctx, "/business/events/{id}", map[string]string{"id": eventID})
}

func (a *publishingAccessor) CreatePromotion(ctx context.Context, draft service.PromotionDraft) (*entity.Promotion, error) {
	body := promotionDraftRequest{
		Title:      draft.Title,
		Discount:   draft.Discount,
		Conditions: draft.Conditions,
		ValidUntil: draft.ValidUntil,
	}

	var promotion entity.Promotion
	if err := a.client.post(ctx, "/business/promotions", body, nil, &promotion); err != nil {
		return nil, err
	}

	return &promotion, nil
}
