package usecase

import (
	"context"

	"afisha/internal/domain/entity"
)

// PublishingUsecase covers the business-owner dashboard: quota-checked
// event and promotion publication plus edits and removal.
type PublishingUsecase interface {
	MyBusiness(ctx context.Context) (*entity.Business, error)
	CreateEvent(ctx context.Context, input *PublishEventInput) (*entity.Event, error)
	UpdateEvent(ctx context.Context, eventID string, input *PublishEventInput) (*entity.Event, error)
	DeleteEvent(ctx context.Context, eventID string) error
	CreatePromotion(ctx context.Context, input *PublishPromotionInput) (*entity.Promotion, error)
}

// --- Input DTOs ---

// PublishEventInput defines the payload of an event publication.
type PublishEventInput struct {
	Title       string   `json:"title" validate:"required,min=3,max=120"`
	Description string   `json:"description" validate:"required,min=10"`
	Category    string   `json:"category" validate:"required"`
	Image       string   `json:"image" validate:"omitempty,url"`
	Date        string   `json:"date" validate:"required,datetime=2006-01-02"`
	Time        string   `json:"time" validate:"required"`
	Location    string   `json:"location" validate:"required"`
	Address     string   `json:"address" validate:"omitempty"`
	CitySlug    string   `json:"cityId" validate:"required"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	MaxPrice    *float64 `json:"maxPrice" validate:"omitempty,gte=0"`
	Tags        []string `json:"tags" validate:"omitempty,dive,min=2"`
}

// PublishPromotionInput defines the payload of a promotion publication.
type PublishPromotionInput struct {
	Title      string `json:"title" validate:"required,min=3,max=120"`
	Discount   string `json:"discount" validate:"required"`
	Conditions string `json:"conditions" validate:"omitempty"`
	ValidUntil string `json:"validUntil" validate:"required,datetime=2006-01-02"`
}
