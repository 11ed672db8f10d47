package usecase

import (
	"context"

	"afisha/internal/domain/entity"
	"afisha/internal/domain/service"
)

// CommunityUsecase serves community discovery and membership.
type CommunityUsecase interface {
	Communities(ctx context.Context, filter service.CommunityFilter) ([]*entity.Community, error)
	Join(ctx context.Context, communityID string) (*entity.Community, error)
	Leave(ctx context.Context, communityID string) (*entity.Community, error)
}

// CollaborationUsecase serves the business collaboration board.
type CollaborationUsecase interface {
	Collaborations(ctx context.Context, filter service.CollaborationFilter) ([]*entity.Collaboration, error)
	Respond(ctx context.Context, input *RespondInput) (*entity.Collaboration, error)
}

// RespondInput defines a response to a collaboration posting.
type RespondInput struct {
	CollaborationID string `json:"collaborationId" validate:"required"`
	Message         string `json:"message" validate:"required,min=10,max=1000"`
}
