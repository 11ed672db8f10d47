// Package service defines the contracts the SDK core depends on. Accessor
// interfaces translate typed requests into single HTTP calls against the
// remote Afisha API; implementations live under internal/infra and never
// retry, cache, or touch session state.
package service

import (
	"context"

	"afisha/internal/domain/entity"
)

// EventFilter narrows an event list query. Zero values mean "no filter".
type EventFilter struct {
	CitySlug string
	Category string
	Featured bool
}

// BusinessFilter narrows a business list query.
type BusinessFilter struct {
	CitySlug string
	Category string
}

// PromotionFilter narrows a promotion list query.
type PromotionFilter struct {
	CitySlug   string
	ActiveOnly bool
}

// CommunityFilter narrows a community list query.
type CommunityFilter struct {
	CitySlug string
}

// CollaborationFilter narrows a collaboration list query.
type CollaborationFilter struct {
	Category string
	Status   entity.CollabStatus
}

// CatalogAccessor reads the public catalog resources.
type CatalogAccessor interface {
	Cities(ctx context.Context) ([]*entity.City, error)
	CityBySlug(ctx context.Context, slug string) (*entity.City, error)
	Events(ctx context.Context, filter EventFilter) ([]*entity.Event, error)
	EventByID(ctx context.Context, id string) (*entity.Event, error)
	Businesses(ctx context.Context, filter BusinessFilter) ([]*entity.Business, error)
	Promotions(ctx context.Context, filter PromotionFilter) ([]*entity.Promotion, error)
}

// ViewerAccessor reads and writes viewer-scoped state: favorites,
// community membership, collaboration responses.
type ViewerAccessor interface {
	CheckFavorite(ctx context.Context, eventID string) (bool, error)
	// ToggleFavorite flips the favorite bit and returns the new state.
	ToggleFavorite(ctx context.Context, eventID string) (bool, error)
	Communities(ctx context.Context, filter CommunityFilter) ([]*entity.Community, error)
	JoinCommunity(ctx context.Context, communityID string) (*entity.Community, error)
	LeaveCommunity(ctx context.Context, communityID string) (*entity.Community, error)
	Collaborations(ctx context.Context, filter CollaborationFilter) ([]*entity.Collaboration, error)
	RespondToCollaboration(ctx context.Context, collabID, message string) (*entity.Collaboration, error)
}

// RegisterRequest carries the fields of a new account.
type RegisterRequest struct {
	Email    string
	Password string
	Name     string
	Role     entity.Role
}

// AuthAccessor performs the credential exchange with the backend.
type AuthAccessor interface {
	Login(ctx context.Context, email, password string) (*entity.Session, error)
	Register(ctx context.Context, req RegisterRequest) (*entity.Session, error)
}

// EventDraft is the payload of a business event publication.
type EventDraft struct {
	Title       string
	Description string
	Category    string
	Image       string
	Date        string
	Time        string
	Location    string
	Address     string
	CitySlug    string
	Price       *float64
	MaxPrice    *float64
	Tags        []string
}

// PromotionDraft is the payload of a business promotion publication.
type PromotionDraft struct {
	Title      string
	Discount   string
	Conditions string
	ValidUntil string
}

// PublishingAccessor covers the business-owner dashboard operations.
type PublishingAccessor interface {
	MyBusiness(ctx context.Context) (*entity.Business, error)
	CreateEvent(ctx context.Context, draft EventDraft) (*entity.Event, error)
	UpdateEvent(ctx context.Context, eventID string, draft EventDraft) (*entity.Event, error)
	DeleteEvent(ctx context.Context, eventID string) error
	CreatePromotion(ctx context.Context, draft PromotionDraft) (*entity.Promotion, error)
}

// UploadConfig is the folder-scoped signed configuration the third-party
// image host hands out through the backend.
type UploadConfig struct {
	CloudName string `json:"cloudName"`
	APIKey    string `json:"apiKey"`
	Folder    string `json:"folder"`
	Signature string `json:"signature"`
	Timestamp int64  `json:"timestamp"`
}

// UploadAccessor fetches signed upload configurations.
type UploadAccessor interface {
	Config(ctx context.Context, folder string) (*UploadConfig, error)
}

// AssistAccessor requests AI image ideas from the backend, which delegates
// to the generation provider.
type AssistAccessor interface {
	ImageIdeas(ctx context.Context, prompt string) ([]string, error)
}
